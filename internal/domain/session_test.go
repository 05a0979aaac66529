package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepNext(t *testing.T) {
	t.Parallel()

	steps := []Step{StepInit, StepCollectingName, StepCollectingEmail, StepCollectingPhone, StepCompleted}
	for i := 0; i < len(steps)-1; i++ {
		assert.Equal(t, steps[i+1], steps[i].Next(), "after %s", steps[i])
	}
	assert.Equal(t, StepCompleted, StepCompleted.Next())
}

func TestStepMissingField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FieldName, StepCollectingName.MissingField())
	assert.Equal(t, FieldEmail, StepCollectingEmail.MissingField())
	assert.Equal(t, FieldPhone, StepCollectingPhone.MissingField())
	assert.Empty(t, StepCompleted.MissingField())
}

func TestSessionCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := NewSession("abc")
	s.Data[FieldName] = "Ada"

	c := s.Clone()
	c.Data[FieldName] = "Grace"
	c.Step = StepCompleted

	assert.Equal(t, "Ada", s.Data[FieldName])
	assert.Equal(t, StepInit, s.Step)
	assert.Equal(t, "abc", c.ID)
}
