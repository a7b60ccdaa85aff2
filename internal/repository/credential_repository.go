package repository

import (
	"context"
	"slices"

	"github.com/svuportal/portal-backend/internal/model"
)

// CredentialRepository holds the static table of known portal accounts.
// The table is fixed at construction and never mutated at runtime; there
// is no real user store behind the portal.
type CredentialRepository struct {
	entries []model.Credential
}

// NewCredentialRepository creates the repository with the demo accounts.
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{entries: demoAccounts()}
}

// All returns a copy of the credential table.
func (r *CredentialRepository) All(ctx context.Context) []model.Credential {
	return slices.Clone(r.entries)
}

func demoAccounts() []model.Credential {
	return []model.Credential{
		{
			Identity: model.Identity{
				ID:         "1",
				Name:       "John Student",
				Email:      "student@svu.ac.in",
				Role:       model.RoleStudent,
				StudentID:  "SVU2023001",
				Department: "Computer Science",
				Photo:      "https://i.pravatar.cc/150?img=11",
			},
			Password: "password",
		},
		{
			Identity: model.Identity{
				ID:         "2",
				Name:       "Jane Teacher",
				Email:      "teacher@svu.ac.in",
				Role:       model.RoleTeacher,
				Department: "Computer Science",
				Photo:      "https://i.pravatar.cc/150?img=5",
			},
			Password: "password",
		},
	}
}
