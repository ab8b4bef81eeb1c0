package model

// ReminderType tags where the text of a reminder came from.
type ReminderType string

const (
	// ReminderTypeSystem marks reminders rendered from the built-in template.
	ReminderTypeSystem ReminderType = "system"
	// ReminderTypeAI marks reminders for which text generation was attempted.
	ReminderTypeAI ReminderType = "ai"
)

// Reminder is one fired reminder as kept in the history log.
type Reminder struct {
	ID      string       `json:"id"`
	Time    string       `json:"time"`
	Message string       `json:"message"`
	Type    ReminderType `json:"type"`
}

// MaxHistory is the number of reminders kept in the history log.
const MaxHistory = 20

// PrependReminder returns a new history with r at the front, truncated to MaxHistory.
// The input slice is never modified.
func PrependReminder(history []Reminder, r Reminder) []Reminder {
	size := len(history) + 1
	if size > MaxHistory {
		size = MaxHistory
	}
	out := make([]Reminder, 0, size)
	out = append(out, r)
	for _, h := range history {
		if len(out) == MaxHistory {
			break
		}
		out = append(out, h)
	}
	return out
}
