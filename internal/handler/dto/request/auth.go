package request

import (
	"github.com/google/uuid"
)

type IssueTokenRequest struct {
	PrincipalID uuid.UUID `json:"principalId" binding:"required"`
	Role        string    `json:"role" binding:"required"`
}
