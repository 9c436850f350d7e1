package domain

import (
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User is the account record as stored by the identity provider.
type User struct {
	ID           *surrealmodels.RecordID `json:"id,omitempty"`
	Email        string                  `json:"email"`
	OAuthSubject *string                 `json:"oauth_subject,omitempty"`
	Provider     *string                 `json:"provider,omitempty"`
}

// Identity converts the stored record into the session-scoped Identity.
// It returns nil when the record carries no id.
func (u *User) Identity() *Identity {
	if u == nil || u.ID == nil {
		return nil
	}
	provider := ProviderPassword
	if u.Provider != nil && *u.Provider != "" {
		provider = *u.Provider
	}
	return &Identity{
		ID:       u.ID.String(),
		Email:    u.Email,
		Provider: provider,
	}
}
