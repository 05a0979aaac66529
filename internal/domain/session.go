// Package domain contains core domain types for the onboarding assistant.
package domain

// Step is a position in the onboarding script.
type Step string

const (
	StepInit            Step = "init"
	StepCollectingName  Step = "collecting_name"
	StepCollectingEmail Step = "collecting_email"
	StepCollectingPhone Step = "collecting_phone"
	StepCompleted       Step = "completed"
)

// Onboarding field keys stored in Session.Data.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// Next returns the step that follows s. Completed is terminal.
func (s Step) Next() Step {
	switch s {
	case StepInit:
		return StepCollectingName
	case StepCollectingName:
		return StepCollectingEmail
	case StepCollectingEmail:
		return StepCollectingPhone
	default:
		return StepCompleted
	}
}

// MissingField returns the field the user still owes at step s.
// Returns empty string once onboarding is completed.
func (s Step) MissingField() string {
	switch s {
	case StepCompleted:
		return ""
	case StepCollectingName:
		return FieldName
	case StepCollectingEmail:
		return FieldEmail
	default:
		return FieldPhone
	}
}

// IsCompleted returns true once all onboarding fields are collected.
func (s Step) IsCompleted() bool {
	return s == StepCompleted
}

// Session holds onboarding state for one chat session.
type Session struct {
	ID      string            `json:"-"`
	Step    Step              `json:"step"`
	Data    map[string]string `json:"data"`
	History []string          `json:"history"`
}

// NewSession returns a session at the start of the onboarding script.
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		Step:    StepInit,
		Data:    make(map[string]string),
		History: []string{},
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := &Session{
		ID:      s.ID,
		Step:    s.Step,
		Data:    make(map[string]string, len(s.Data)),
		History: make([]string, len(s.History)),
	}
	for k, v := range s.Data {
		c.Data[k] = v
	}
	copy(c.History, s.History)
	return c
}
