package request

// SchedulerRequest represents the JSON body for scheduler control.
type SchedulerRequest struct {
	// Action controls the scheduler. Allowed values:
	// - "start": start processing batches
	// - "stop":  stop processing batches
	Action string `json:"action"`
}

// NotificationRequest is the body of POST /notifications.
type NotificationRequest struct {
	// To is a phone number or a full chat ID ("905551234567@c.us").
	To      string `json:"to"`
	Content string `json:"content"`
	// Token overrides the configured API token for this message only.
	Token string `json:"token,omitempty"`
	// Sync sends immediately instead of waiting for the scheduler.
	Sync bool `json:"sync,omitempty"`
}
