package family

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides read access to the reference records the report
// pipeline consumes. The pipeline never mutates them.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=family
type Repository interface {
	ListChildren(ctx context.Context, userID uuid.UUID) ([]*Child, error)
	GetChild(ctx context.Context, userID, id uuid.UUID) (*Child, error)
	ListParents(ctx context.Context, userID uuid.UUID) ([]*Parent, error)
	GetParent(ctx context.Context, userID, id uuid.UUID) (*Parent, error)
	ListLawyers(ctx context.Context, userID uuid.UUID) ([]*Lawyer, error)
	GetLawyer(ctx context.Context, userID, id uuid.UUID) (*Lawyer, error)
	ListLegalCases(ctx context.Context, userID uuid.UUID) ([]*LegalCase, error)
	GetLegalCase(ctx context.Context, userID, id uuid.UUID) (*LegalCase, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Children(ctx context.Context, userID uuid.UUID) ([]*Child, error) {
	return s.repo.ListChildren(ctx, userID)
}

func (s *Service) Child(ctx context.Context, userID, id uuid.UUID) (*Child, error) {
	return s.repo.GetChild(ctx, userID, id)
}

func (s *Service) Parents(ctx context.Context, userID uuid.UUID) ([]*Parent, error) {
	return s.repo.ListParents(ctx, userID)
}

func (s *Service) Parent(ctx context.Context, userID, id uuid.UUID) (*Parent, error) {
	return s.repo.GetParent(ctx, userID, id)
}

func (s *Service) Lawyers(ctx context.Context, userID uuid.UUID) ([]*Lawyer, error) {
	return s.repo.ListLawyers(ctx, userID)
}

func (s *Service) Lawyer(ctx context.Context, userID, id uuid.UUID) (*Lawyer, error) {
	return s.repo.GetLawyer(ctx, userID, id)
}

func (s *Service) LegalCases(ctx context.Context, userID uuid.UUID) ([]*LegalCase, error) {
	return s.repo.ListLegalCases(ctx, userID)
}

func (s *Service) LegalCase(ctx context.Context, userID, id uuid.UUID) (*LegalCase, error) {
	return s.repo.GetLegalCase(ctx, userID, id)
}
