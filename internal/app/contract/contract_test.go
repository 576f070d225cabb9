package contract_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/lockedin/taskplan-agent/internal/app/contract"
	"github.com/lockedin/taskplan-agent/internal/domain"
)

func mustParse(t *testing.T, raw string) *contract.TaskResponse {
	t.Helper()
	resp, err := contract.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", raw, err)
	}
	return resp
}

func expectMalformed(t *testing.T, raw string) {
	t.Helper()
	_, err := contract.Parse(raw)
	var malformed *domain.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse(%q): expected MalformedResponseError, got %v", raw, err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	want := &contract.TaskResponse{
		Status: contract.StatusPlanned,
		Steps: []contract.Step{
			{Number: 1, Title: "Setup project structure", Description: "Create folder hierarchy and initialize git repo"},
			{Number: 2, Title: "Design database schema", Description: "Plan tables for users, transactions, and categories"},
		},
	}

	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := mustParse(t, string(raw))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestParseExtractionRepair(t *testing.T) {
	inner := `{"status":"clarification_required","clarification_question":"Which platform do you target?"}`
	wrapped := "here you go:\n" + inner + "\nhope that helps"

	got := mustParse(t, wrapped)
	want := mustParse(t, inner)

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("repair mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestParseIrrecoverableText(t *testing.T) {
	for _, raw := range []string{
		"no json here at all",
		"unbalanced { brace",
		"backwards } then {",
		"{ still not json",
		"",
	} {
		expectMalformed(t, raw)
	}
}

func TestParseUnknownStatus(t *testing.T) {
	// No silent coercion to a default status.
	expectMalformed(t, `{"status":"done","steps":[]}`)
	expectMalformed(t, `{"steps":[{"step":1,"title":"a","description":"b"}]}`)
}

func TestParsePlannedShape(t *testing.T) {
	expectMalformed(t, `{"status":"planned"}`)
	expectMalformed(t, `{"status":"planned","steps":[]}`)
	// one bad step fails the whole response
	expectMalformed(t, `{"status":"planned","steps":[{"step":1,"title":"a","description":"b"},{"step":"two","title":"c","description":"d"}]}`)
	expectMalformed(t, `{"status":"planned","steps":[{"step":1,"title":"a"}]}`)
	expectMalformed(t, `{"status":"planned","steps":[{"step":1,"title":7,"description":"b"}]}`)

	got := mustParse(t, `{"status":"planned","steps":[{"step":1,"title":"a","description":"b"}]}`)
	if len(got.Steps) != 1 || got.Steps[0].Number != 1 {
		t.Fatalf("unexpected steps: %+v", got.Steps)
	}
}

func TestParseClarificationShape(t *testing.T) {
	expectMalformed(t, `{"status":"clarification_required"}`)
	expectMalformed(t, `{"status":"clarification_required","clarification_question":""}`)

	got := mustParse(t, `{"status":"clarification_required","clarification_question":"Android or iOS?"}`)
	if got.ClarificationQuestion != "Android or iOS?" {
		t.Fatalf("unexpected question: %q", got.ClarificationQuestion)
	}
}

func TestParseUnsupportedRequest(t *testing.T) {
	got := mustParse(t, `{"status":"unsupported_request"}`)
	if got.Status != contract.StatusUnsupportedRequest {
		t.Fatalf("unexpected status: %q", got.Status)
	}
	if len(got.Steps) != 0 || got.ClarificationQuestion != "" {
		t.Fatalf("unsupported_request must carry no further fields: %+v", got)
	}
}
