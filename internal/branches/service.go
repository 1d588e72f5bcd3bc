package branches

import (
	"context"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
)

// RepositoryPort defines data access methods for branches.
type RepositoryPort interface {
	List(ctx context.Context, state listing.FilterState) ([]Branch, int, error)
}

// Service handles branch listing.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the page of branches described by state.
func (s *Service) List(ctx context.Context, state listing.FilterState) ([]Branch, int, error) {
	return s.repo.List(ctx, state)
}
