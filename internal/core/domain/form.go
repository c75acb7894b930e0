package domain

import "fmt"

// AssistState tracks the AI helper call currently running for a form.
type AssistState int

const (
	AssistIdle AssistState = iota
	AssistPolishing
	AssistSuggesting
)

var assistStateNames = map[AssistState]string{
	AssistIdle:       "IDLE",
	AssistPolishing:  "POLISHING",
	AssistSuggesting: "SUGGESTING",
}

func (s AssistState) String() string {
	if name, ok := assistStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AssistState(%d)", int(s))
}

// MarshalText encodes the state name for JSON responses.
func (s AssistState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *AssistState) UnmarshalText(text []byte) error {
	for state, name := range assistStateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown assist state %q", string(text))
}

// FormState is a point-in-time copy of an editing session.
type FormState struct {
	FormID string            `json:"formID"`
	Fields Draft             `json:"fields"` // Fields.ID is the record being edited, empty when creating
	Errors map[string]string `json:"errors"` // Field name -> message from the last validation
	Assist AssistState       `json:"assist"`
}
