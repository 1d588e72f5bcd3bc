package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context, state listing.FilterState) ([]User, int, error)
}

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns the page of admins described by state. A role filter must
// name a known role.
func (s *Service) ListUsers(ctx context.Context, state listing.FilterState) ([]User, int, error) {
	if role := strings.TrimSpace(state.Extra["role"]); role != "" && !rbac.ValidRole(role) {
		return nil, 0, fmt.Errorf("%w: unknown role %q", shared.ErrInvalidFilter, role)
	}
	return s.repo.ListUsers(ctx, state)
}
