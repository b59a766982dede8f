package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is what the identity gate resolved from the bearer credential.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// RoleRecord mirrors an identity's role and partner verification status so
// other services can read it without joining partner data.
type RoleRecord struct {
	UID                string              `json:"uid"`
	Email              string              `json:"email"`
	Role               Role                `json:"role"`
	PartnerID          *uuid.UUID          `json:"partnerId,omitempty"`
	VerificationStatus *VerificationStatus `json:"verificationStatus,omitempty"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}
