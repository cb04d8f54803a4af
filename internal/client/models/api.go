package models

// Request and response bodies of the game server API.

type VerifyUsernameRequest struct {
	Username string `json:"username"`
}

type LoginResult struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    *Session `json:"user"`
	Message string   `json:"message"`
}

type AttestationRequest struct {
	AttestationData string `json:"attestationData"`
}

type AttestationResult struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Honk     string    `json:"honk"`
	NewStats GameStats `json:"newStats"`
}

type ProposalRequest struct {
	ProposalContent string `json:"proposalContent"`
}

type ProposalResult struct {
	Message  string    `json:"message"`
	Honk     string    `json:"honk"`
	NewStats GameStats `json:"newStats"`
}

// ErrorBody is what the server sends with a non-2xx status.
type ErrorBody struct {
	Error string `json:"error"`
}
