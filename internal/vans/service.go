package vans

import (
	"context"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
)

// RepositoryPort defines data access methods for vans.
type RepositoryPort interface {
	List(ctx context.Context, state listing.FilterState) ([]Van, int, error)
	BranchOptions(ctx context.Context) ([]BranchOption, error)
}

// Service handles van listing.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the page of vans described by state.
func (s *Service) List(ctx context.Context, state listing.FilterState) ([]Van, int, error) {
	return s.repo.List(ctx, state)
}

// BranchOptions returns the branches a van list can be narrowed to.
func (s *Service) BranchOptions(ctx context.Context) ([]BranchOption, error) {
	return s.repo.BranchOptions(ctx)
}
