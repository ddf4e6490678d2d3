package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "custodia/internal/encoding"
	"custodia/internal/expense"
)

// profile describes one CSV layout by the headers it requires and how
// its columns map onto expense fields.
type profile struct {
	name     string
	required []string
	optional []string
}

var profiles = []profile{
	{
		// Layout produced by the app's own export.
		name:     "custodia",
		required: []string{"data", "descrição", "valor", "categoria"},
		optional: []string{"situação"},
	},
	{
		// Generic spreadsheet layout with English headers.
		name:     "generic",
		required: []string{"date", "description", "amount", "category"},
		optional: []string{"status"},
	},
}

// CSVParser reads semicolon- or comma-separated expense exports.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	rows, err := readRows(string(data))
	if err != nil {
		return nil, err
	}

	prof, cols, headerIdx := detectProfile(rows)
	if prof == nil {
		return nil, fmt.Errorf("no matching CSV layout: expected headers data/descrição/valor/categoria or date/description/amount/category")
	}

	return parseRows(prof, cols, rows[headerIdx+1:])
}

// readRows parses with ';' first and falls back to ',' when the file
// has single-column rows only.
func readRows(data string) ([][]string, error) {
	for _, comma := range []rune{';', ','} {
		reader := csv.NewReader(strings.NewReader(data))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		for _, row := range rows {
			if len(row) > 1 {
				return rows, nil
			}
		}
	}

	return nil, fmt.Errorf("read csv: no delimited columns found")
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *profile, cols colIndex) bool {
	for _, h := range p.required {
		if _, ok := cols[h]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *profile, cols colIndex, rows [][]string) ([]expense.CreateParams, error) {
	dateCol, descCol, amountCol, categoryCol, statusCol := columnsFor(p, cols)

	var params []expense.CreateParams

	for _, row := range rows {
		if emptyRow(row) {
			continue
		}

		date, err := expense.ParseDate(cell(row, dateCol))
		if err != nil {
			// Brazilian exports often use dd/mm/yyyy.
			date, err = parseBrazilianDate(cell(row, dateCol))
			if err != nil {
				continue
			}
		}

		amount, err := parseAmount(cell(row, amountCol))
		if err != nil {
			continue
		}

		status := statusFromCell(cell(row, statusCol))

		params = append(params, expense.CreateParams{
			Description: cell(row, descCol),
			Amount:      amount,
			Date:        date,
			Category:    strings.ToLower(cell(row, categoryCol)),
			Status:      status,
		})
	}

	return params, nil
}

func columnsFor(p *profile, cols colIndex) (date, desc, amount, category, status int) {
	status = -1

	if p.name == "custodia" {
		date, desc, amount, category = cols["data"], cols["descrição"], cols["valor"], cols["categoria"]
		if i, ok := cols["situação"]; ok {
			status = i
		}

		return
	}

	date, desc, amount, category = cols["date"], cols["description"], cols["amount"], cols["category"]
	if i, ok := cols["status"]; ok {
		status = i
	}

	return
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func parseBrazilianDate(s string) (expense.Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return expense.Date{}, fmt.Errorf("invalid date %q", s)
	}

	return expense.ParseDate(parts[2] + "-" + parts[1] + "-" + parts[0])
}

// parseAmount accepts both "1.234,56" and "1234.56".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	clean = strings.TrimSpace(clean)

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}

func statusFromCell(s string) expense.Status {
	switch strings.ToLower(s) {
	case "pago", "paid":
		return expense.StatusPaid
	case "reembolsado", "reimbursed":
		return expense.StatusReimbursed
	default:
		return expense.StatusPending
	}
}
