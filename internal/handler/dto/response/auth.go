package response

import (
	"github.com/google/uuid"
)

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type MeResponse struct {
	PrincipalID uuid.UUID `json:"principalId"`
	Role        string    `json:"role"`
}
