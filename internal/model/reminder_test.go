package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependReminderCapsHistory(t *testing.T) {
	var history []Reminder
	for i := 1; i <= MaxHistory+1; i++ {
		history = PrependReminder(history, Reminder{ID: fmt.Sprintf("r%d", i)})
	}

	require.Len(t, history, MaxHistory)
	assert.Equal(t, "r21", history[0].ID)
	assert.Equal(t, "r2", history[MaxHistory-1].ID)
	for _, r := range history {
		assert.NotEqual(t, "r1", r.ID)
	}
}

func TestPrependReminderDoesNotMutateInput(t *testing.T) {
	history := []Reminder{{ID: "a"}, {ID: "b"}}
	out := PrependReminder(history, Reminder{ID: "c"})

	assert.Equal(t, []Reminder{{ID: "a"}, {ID: "b"}}, history)
	assert.Equal(t, []Reminder{{ID: "c"}, {ID: "a"}, {ID: "b"}}, out)
}

func TestSettingsValidate(t *testing.T) {
	for _, f := range Frequencies {
		assert.NoError(t, Settings{Frequency: f}.Validate())
	}
	for _, f := range []int{0, -10, 5, 20, 60} {
		err := Settings{Frequency: f}.Validate()
		assert.ErrorIs(t, err, ErrInvalidFrequency, "frequency %d", f)
	}
}

func TestNextFrequency(t *testing.T) {
	assert.Equal(t, 15, NextFrequency(10))
	assert.Equal(t, 30, NextFrequency(15))
	assert.Equal(t, 10, NextFrequency(30))
	assert.Equal(t, 10, NextFrequency(42))
}
