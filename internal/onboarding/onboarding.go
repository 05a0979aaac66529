// Package onboarding walks a session through collecting name, email and phone.
package onboarding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ashureev/onboard-assistant/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`[^@]+@[^@]+\.[^@]+`)
	phonePattern = regexp.MustCompile(`\d{10,}`)
)

// ValidationError reports an onboarding answer that was rejected.
// The machine turns it into a re-prompt; it never reaches the caller.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// ValidateEmail accepts any text containing something@something.something.
func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return &ValidationError{Field: domain.FieldEmail, Value: s}
	}
	return nil
}

// ValidatePhone accepts any text containing a run of at least ten digits.
func ValidatePhone(s string) error {
	if !phonePattern.MatchString(s) {
		return &ValidationError{Field: domain.FieldPhone, Value: s}
	}
	return nil
}

// Machine advances sessions through the onboarding script.
type Machine struct {
	brand string
}

const genericGreeting = "Welcome! To get started, may I have your name?"

// NewMachine creates a Machine whose greeting names brand. An empty brand
// gets a greeting without one.
func NewMachine(brand string) *Machine {
	return &Machine{brand: strings.TrimSpace(brand)}
}

func (m *Machine) greeting() string {
	if m.brand == "" {
		return genericGreeting
	}
	return fmt.Sprintf("Welcome to %s! To get started, may I have your name?", m.brand)
}

// Advance applies msg to the session's current step and mutates s in place.
// It returns false once onboarding is completed, leaving s untouched.
func (m *Machine) Advance(s *domain.Session, msg string) (string, bool) {
	switch s.Step {
	case domain.StepInit:
		s.Step = domain.StepCollectingName
		return m.greeting(), true

	case domain.StepCollectingName:
		// Any text is taken as the name.
		s.Data[domain.FieldName] = msg
		s.Step = domain.StepCollectingEmail
		return fmt.Sprintf("Nice to meet you, %s. What is your email address?", msg), true

	case domain.StepCollectingEmail:
		if err := ValidateEmail(msg); err != nil {
			return "That doesn't look like a valid email. Could you please try again?", true
		}
		s.Data[domain.FieldEmail] = msg
		s.Step = domain.StepCollectingPhone
		return "Got it. Finally, what is a good phone number to reach you?", true

	case domain.StepCollectingPhone:
		if err := ValidatePhone(msg); err != nil {
			return "Please enter a valid phone number (digits only).", true
		}
		s.Data[domain.FieldPhone] = msg
		s.Step = domain.StepCompleted
		return "All set! You're fully onboarded. Feel free to ask me anything about our services.", true
	}

	return "", false
}
