package participants

// RegisterParticipantRequest represents a request to register a participant
type RegisterParticipantRequest struct {
	DisplayName      string `json:"display_name"`
	ExternalIdentity string `json:"external_identity"`
}
