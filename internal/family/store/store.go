package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"custodia/internal/family"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListChildren(ctx context.Context, userID uuid.UUID) ([]*family.Child, error) {
	query := `
		SELECT id, user_id, name, birth_date, school_year, created_at
		FROM children
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing children: %w", err)
	}
	defer rows.Close()

	var children []*family.Child

	for rows.Next() {
		var c family.Child
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.SchoolYear, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning child: %w", err)
		}

		children = append(children, &c)
	}

	return children, rows.Err()
}

func (s *Store) GetChild(ctx context.Context, userID, id uuid.UUID) (*family.Child, error) {
	query := `
		SELECT id, user_id, name, birth_date, school_year, created_at
		FROM children
		WHERE id = $1 AND user_id = $2
	`

	var c family.Child

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.BirthDate, &c.SchoolYear, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting child: %w", err)
	}

	return &c, nil
}

func (s *Store) ListParents(ctx context.Context, userID uuid.UUID) ([]*family.Parent, error) {
	query := `
		SELECT id, user_id, name, role, document, email, phone, created_at
		FROM parents
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing parents: %w", err)
	}
	defer rows.Close()

	var parents []*family.Parent

	for rows.Next() {
		var p family.Parent
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Role, &p.Document, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning parent: %w", err)
		}

		parents = append(parents, &p)
	}

	return parents, rows.Err()
}

func (s *Store) GetParent(ctx context.Context, userID, id uuid.UUID) (*family.Parent, error) {
	query := `
		SELECT id, user_id, name, role, document, email, phone, created_at
		FROM parents
		WHERE id = $1 AND user_id = $2
	`

	var p family.Parent

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Role, &p.Document, &p.Email, &p.Phone, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting parent: %w", err)
	}

	return &p, nil
}

func (s *Store) ListLawyers(ctx context.Context, userID uuid.UUID) ([]*family.Lawyer, error) {
	query := `
		SELECT id, user_id, name, oab_number, email, phone, created_at
		FROM lawyers
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing lawyers: %w", err)
	}
	defer rows.Close()

	var lawyers []*family.Lawyer

	for rows.Next() {
		var l family.Lawyer
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.OABNumber, &l.Email, &l.Phone, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lawyer: %w", err)
		}

		lawyers = append(lawyers, &l)
	}

	return lawyers, rows.Err()
}

func (s *Store) GetLawyer(ctx context.Context, userID, id uuid.UUID) (*family.Lawyer, error) {
	query := `
		SELECT id, user_id, name, oab_number, email, phone, created_at
		FROM lawyers
		WHERE id = $1 AND user_id = $2
	`

	var l family.Lawyer

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&l.ID, &l.UserID, &l.Name, &l.OABNumber, &l.Email, &l.Phone, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting lawyer: %w", err)
	}

	return &l, nil
}

func (s *Store) ListLegalCases(ctx context.Context, userID uuid.UUID) ([]*family.LegalCase, error) {
	query := `
		SELECT id, user_id, case_number, court, judge, status, lawyer_id, notes, created_at
		FROM legal_cases
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing legal cases: %w", err)
	}
	defer rows.Close()

	var cases []*family.LegalCase

	for rows.Next() {
		var lc family.LegalCase
		if err := rows.Scan(&lc.ID, &lc.UserID, &lc.CaseNumber, &lc.Court, &lc.Judge, &lc.Status, &lc.LawyerID, &lc.Notes, &lc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning legal case: %w", err)
		}

		cases = append(cases, &lc)
	}

	return cases, rows.Err()
}

func (s *Store) GetLegalCase(ctx context.Context, userID, id uuid.UUID) (*family.LegalCase, error) {
	query := `
		SELECT id, user_id, case_number, court, judge, status, lawyer_id, notes, created_at
		FROM legal_cases
		WHERE id = $1 AND user_id = $2
	`

	var lc family.LegalCase

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&lc.ID, &lc.UserID, &lc.CaseNumber, &lc.Court, &lc.Judge, &lc.Status, &lc.LawyerID, &lc.Notes, &lc.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting legal case: %w", err)
	}

	return &lc, nil
}
