// Package gate validates and classifies raw user input before it is allowed
// to consume a model call.
package gate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// blockedPatterns is a fixed ordered rule set evaluated against the trimmed
// message. Any match classifies the message as unrelated to task breakdown.
// False positives (a legitimate goal that opens with "How") are accepted as
// the cost of saving model calls on clearly unrelated input.
var blockedPatterns = []*regexp.Regexp{
	// general-knowledge openers: "who is", "what are", "how does", ...
	regexp.MustCompile(`(?i)^(who|what|where|when|why|how)\s+(is|are|was|were|do|does|did|can|could|would|should)\b`),
	// contracted openers: "what's the capital of", "who's", ...
	regexp.MustCompile(`(?i)^(who|what|where|when|why|how)'s\b`),
	// "explain to me how", "describe what", "define why", ...
	regexp.MustCompile(`(?i)^(tell|explain|describe|define)\s+(me|us)?\s*(about|what|how|why)`),
	// greetings
	regexp.MustCompile(`(?i)^(hi|hello|hey|sup|yo|good\s*(morning|afternoon|evening))`),
	// thanks
	regexp.MustCompile(`(?i)^(thank|thanks|thx)`),
	// small talk
	regexp.MustCompile(`(?i)^(how are you|what's up|how's it going)`),
	// entertainment requests
	regexp.MustCompile(`(?i)\b(joke|story|poem|song|recipe|weather|news)\b`),
	// emotional-support language
	regexp.MustCompile(`(?i)\b(feel|feeling|emotion|sad|happy|depressed|anxious|stressed)\b`),
	// yes/no questions addressed to the assistant
	regexp.MustCompile(`(?i)^(can you|do you|are you)\b`),
}

// Gate screens user messages. MaxMessageLen is the input length ceiling in
// characters, applied after trimming.
type Gate struct {
	maxMessageLen int
}

func New(maxMessageLen int) *Gate {
	return &Gate{maxMessageLen: maxMessageLen}
}

// Validate checks basic message validity. It returns a *domain.ValidationError
// with a distinct reason per rejection, or nil when the message is acceptable.
func (g *Gate) Validate(message string) error {
	if message == "" {
		return &domain.ValidationError{Reason: "message is required"}
	}

	trimmed := strings.TrimSpace(message)

	if trimmed == "" {
		return &domain.ValidationError{Reason: "message cannot be empty"}
	}

	if utf8.RuneCountInString(trimmed) > g.maxMessageLen {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("message exceeds %d character limit", g.maxMessageLen),
		}
	}

	return nil
}

// IsOffTopic reports whether the message matches any blocked pattern. It runs
// strictly after Validate and before any model call or persistence.
func (g *Gate) IsOffTopic(message string) bool {
	trimmed := strings.TrimSpace(message)

	for _, pattern := range blockedPatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}

	return false
}
