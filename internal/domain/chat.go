package domain

// ChatRequest is an inbound chat message.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the assistant reply plus the session's onboarding step.
type ChatResponse struct {
	Response string `json:"response"`
	State    Step   `json:"state"`
}
