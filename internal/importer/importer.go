// Package importer parses expense CSV exports into create params.
// Layouts are auto-detected by matching column headers against known
// profiles, so a file from either supported source can be uploaded
// without the user naming it.
package importer

import (
	"io"

	"custodia/internal/expense"
)

type Parser interface {
	Parse(r io.Reader) ([]expense.CreateParams, error)
}

type Service struct {
	parser Parser
}

func NewService() *Service {
	return &Service{parser: NewCSVParser()}
}

func (s *Service) Import(r io.Reader) ([]expense.CreateParams, error) {
	return s.parser.Parse(r)
}
