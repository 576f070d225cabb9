package gate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lockedin/taskplan-agent/internal/app/gate"
	"github.com/lockedin/taskplan-agent/internal/domain"
)

func TestValidate(t *testing.T) {
	g := gate.New(1000)

	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{"valid goal", "Build a personal finance tracker app", false},
		{"missing", "", true},
		{"whitespace only", "   \n\t  ", true},
		{"over limit", strings.Repeat("a", 1001), true},
		{"exactly at limit", strings.Repeat("a", 1000), false},
		{"limit applies after trim", "  " + strings.Repeat("a", 1000) + "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(tt.message)
			if tt.wantErr {
				var vErr *domain.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if vErr.Reason == "" {
					t.Fatal("expected a reason on the validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid message, got %v", err)
			}
		})
	}
}

func TestValidateDistinctReasons(t *testing.T) {
	g := gate.New(1000)

	reasons := map[string]string{}
	for name, msg := range map[string]string{
		"missing":  "",
		"empty":    "   ",
		"oversize": strings.Repeat("x", 1001),
	} {
		var vErr *domain.ValidationError
		if !errors.As(g.Validate(msg), &vErr) {
			t.Fatalf("%s: expected ValidationError", name)
		}
		reasons[name] = vErr.Reason
	}

	if reasons["missing"] == reasons["empty"] || reasons["empty"] == reasons["oversize"] {
		t.Fatalf("expected distinct reasons, got %v", reasons)
	}
}

func TestIsOffTopic(t *testing.T) {
	g := gate.New(1000)

	offTopic := []string{
		"What is the capital of Spain",
		"What's the capital of France?",
		"who was Napoleon",
		"How does a jet engine work",
		"explain me how computers work",
		"Describe what photosynthesis is",
		"hello there",
		"Hey!",
		"good morning",
		"thanks a lot",
		"how are you",
		"tell me a joke",
		"write a poem about spring",
		"what will the weather be",
		"I feel sad today",
		"I'm stressed about everything",
		"can you dance",
		"are you sentient",
	}
	for _, msg := range offTopic {
		if !g.IsOffTopic(msg) {
			t.Errorf("expected off-topic: %q", msg)
		}
	}

	onTopic := []string{
		"Build a personal finance tracker app",
		"Plan a product launch for Q3",
		"Migrate the billing service to Postgres",
		"Prepare for a half marathon in 12 weeks",
		"Make it for Android only",
	}
	for _, msg := range onTopic {
		if g.IsOffTopic(msg) {
			t.Errorf("expected on-topic: %q", msg)
		}
	}
}

// A legitimate goal opening with an interrogative still gets blocked; that
// false positive is the accepted cost of the fixed pattern set.
func TestIsOffTopicAcceptedFalsePositive(t *testing.T) {
	g := gate.New(1000)

	if !g.IsOffTopic("How should I structure my app launch plan") {
		t.Fatal("interrogative opener should match the blocked patterns")
	}
}
