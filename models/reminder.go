package models

// ReminderPayload is the asynq task payload for a deferred reminder. The
// worker re-reads the workflow and only fires when it still sits in State.
type ReminderPayload struct {
	ReminderID  string        `json:"reminderId"`
	WorkflowID  string        `json:"workflowId"`
	State       WorkflowState `json:"state"`
	Target      string        `json:"target"` // "customer" or "vendor"
	RecipientID string        `json:"recipientId"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	FireDate    string        `json:"fireDate"`
}
