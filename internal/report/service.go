package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"custodia/internal/attachment"
	"custodia/internal/expense"
	"custodia/internal/family"
	"custodia/internal/report/chart"
	"custodia/internal/report/doc"
	"custodia/internal/report/pdf"
)

// ExpenseSource provides the raw expense records for a user.
type ExpenseSource interface {
	List(ctx context.Context, userID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error)
}

// FamilySource provides the read-only reference records.
type FamilySource interface {
	Children(ctx context.Context, userID uuid.UUID) ([]*family.Child, error)
	Parents(ctx context.Context, userID uuid.UUID) ([]*family.Parent, error)
	Lawyers(ctx context.Context, userID uuid.UUID) ([]*family.Lawyer, error)
	LegalCases(ctx context.Context, userID uuid.UUID) ([]*family.LegalCase, error)
}

// AttachmentLoader resolves a receipt's storage path into a Result.
type AttachmentLoader interface {
	Load(ctx context.Context, path, declaredType string) attachment.Result
}

// ObjectWriter persists the finished document.
type ObjectWriter interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
}

// DocumentBackend measures text during composition and renders the
// final document. One instance per generation.
type DocumentBackend interface {
	doc.TextMeasurer
	Render(*doc.Document) ([]byte, error)
}

// ProgressFunc reports generation progress to the caller. It replaces
// any global progress channel: callers that do not care pass nil.
type ProgressFunc func(percent int, message string)

// Summary is the companion object returned alongside the document so
// the caller can display totals without re-parsing the PDF.
type Summary struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ExpenseCount   int             `json:"expense_count"`
	ReceiptCount   int             `json:"receipt_count"`
	Period         Period          `json:"period"`
	SkippedRecords int             `json:"skipped_records"`
}

// Output is the result of one report generation.
type Output struct {
	Path    string
	Bytes   []byte
	Summary Summary
}

type Generator struct {
	expenses ExpenseSource
	family   FamilySource
	loader   AttachmentLoader
	store    ObjectWriter
	log      *slog.Logger

	// newBackend is swappable for tests; defaults to the gofpdf backend.
	newBackend func() DocumentBackend

	now func() time.Time
}

func NewGenerator(expenses ExpenseSource, fam FamilySource, loader AttachmentLoader, store ObjectWriter, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}

	return &Generator{
		expenses:   expenses,
		family:     fam,
		loader:     loader,
		store:      store,
		log:        log,
		newBackend: func() DocumentBackend { return pdf.New() },
		now:        time.Now,
	}
}

// Generate runs the whole pipeline for one user: fetch, aggregate,
// pre-fetch charts and attachments concurrently, compose sequentially,
// resolve the TOC, render and persist. Cancelling ctx abandons in-flight
// work; no partial document is ever delivered.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, filter Filter, onProgress ProgressFunc) (*Output, error) {
	progress := func(percent int, message string) {
		if onProgress != nil {
			onProgress(percent, message)
		}
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	progress(5, "Carregando despesas")

	// The database narrows by date range; the aggregator applies the
	// full predicate exactly once.
	raw, err := g.expenses.List(ctx, userID, expense.ListFilter{
		StartDate: &filter.Start,
		EndDate:   &filter.End,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching expenses: %w", err)
	}

	children, parents, lawyers, cases, err := g.fetchFamily(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress(15, "Agregando valores")

	rep, skipped, err := Aggregate(raw, filter)
	if err != nil {
		return nil, err
	}

	progress(25, "Gerando gráficos e carregando comprovantes")

	charts, receipts, err := g.prefetch(ctx, rep)
	if err != nil {
		return nil, err
	}

	progress(55, "Montando documento")

	backend := g.newBackend()

	document, err := Compose(ComposeInput{
		Report:      rep,
		Skipped:     skipped,
		Children:    children,
		Parents:     parents,
		Lawyers:     lawyers,
		Cases:       cases,
		Charts:      charts,
		Receipts:    receipts,
		GeneratedAt: g.now(),
	}, backend, g.log)
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	if err := ResolveTOC(document, backend); err != nil {
		return nil, err
	}

	progress(80, "Gerando PDF")

	data, err := backend.Render(document)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("users/%s/reports/relatorio_%s_%s.pdf", userID, filter.Start, filter.End)

	progress(92, "Salvando relatório")

	if err := g.store.Put(ctx, path, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}

	progress(100, "Concluído")

	return &Output{
		Path:  path,
		Bytes: data,
		Summary: Summary{
			TotalAmount:    rep.TotalAmount,
			ExpenseCount:   rep.ExpenseCount,
			ReceiptCount:   rep.ReceiptCount,
			Period:         rep.Period,
			SkippedRecords: skipped,
		},
	}, nil
}

func (g *Generator) fetchFamily(ctx context.Context, userID uuid.UUID) ([]*family.Child, []*family.Parent, []*family.Lawyer, []*family.LegalCase, error) {
	children, err := g.family.Children(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("fetching children: %w", err)
	}

	parents, err := g.family.Parents(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("fetching parents: %w", err)
	}

	lawyers, err := g.family.Lawyers(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("fetching lawyers: %w", err)
	}

	cases, err := g.family.LegalCases(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("fetching legal cases: %w", err)
	}

	return children, parents, lawyers, cases, nil
}

// prefetch renders charts and loads attachments in parallel; they are
// independent of each other and of the cursor. Placement later happens
// in a fixed order, so results land in pre-allocated slots and output
// stays reproducible.
func (g *Generator) prefetch(ctx context.Context, rep *Report) (map[chart.Kind]ChartResult, []ReceiptItem, error) {
	receipts := receiptOrder(rep)
	charts := make(map[chart.Kind]ChartResult, 4)
	results := make([]chartEntry, 4)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		png, err := chart.Pie("Distribuição por categoria", pieSlices(rep))
		results[0] = chartEntry{chart.KindPie, ChartResult{PNG: png, Err: err}}
		return ctx.Err()
	})

	eg.Go(func() error {
		labels, values := cumulativeSeries(rep)
		png, err := chart.CumulativeLine("Evolução acumulada", labels, values)
		results[1] = chartEntry{chart.KindLine, ChartResult{PNG: png, Err: err}}
		return ctx.Err()
	})

	eg.Go(func() error {
		labels, values := monthlySeries(rep)
		png, err := chart.MonthlyBar("Totais mensais", labels, values)
		results[2] = chartEntry{chart.KindBar, ChartResult{PNG: png, Err: err}}
		return ctx.Err()
	})

	eg.Go(func() error {
		labels, raw, avg := trendSeries(rep)
		png, err := chart.Trend("Tendência", labels, raw, avg)
		results[3] = chartEntry{chart.KindTrend, ChartResult{PNG: png, Err: err}}
		return ctx.Err()
	})

	for i := range receipts {
		i := i
		eg.Go(func() error {
			item := &receipts[i]
			item.Result = g.loader.Load(ctx, item.Receipt.StoragePath, item.Receipt.MIMEType)
			return ctx.Err()
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	for _, entry := range results {
		charts[entry.kind] = entry.result
	}

	return charts, receipts, nil
}

type chartEntry struct {
	kind   chart.Kind
	result ChartResult
}

// receiptOrder lists receipts in placement order: expenses sorted
// descending by date, each expense's receipts in upload order.
func receiptOrder(rep *Report) []ReceiptItem {
	expenses := make([]*expense.Expense, len(rep.Expenses))
	copy(expenses, rep.Expenses)

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[j].Date.Before(expenses[i].Date)
	})

	var items []ReceiptItem

	for _, e := range expenses {
		for _, r := range e.Receipts {
			items = append(items, ReceiptItem{Expense: e, Receipt: r})
		}
	}

	return items
}

func pieSlices(rep *Report) []chart.Slice {
	categories := rep.Categories()
	slices := make([]chart.Slice, len(categories))

	for i, name := range categories {
		total := rep.CategoryTotals[name]
		slices[i] = chart.Slice{
			Value: total.InexactFloat64(),
			Legend: fmt.Sprintf("%s: %s (%s)",
				name, FormatAmount(total), FormatPercent(rep.CategoryShares[name])),
		}
	}

	return slices
}

func cumulativeSeries(rep *Report) ([]string, []float64) {
	points := rep.Cumulative()
	labels := make([]string, len(points))
	values := make([]float64, len(points))

	for i, p := range points {
		labels[i] = monthLabel(p.Date.MonthKey())
		values[i] = p.Total.InexactFloat64()
	}

	return labels, values
}

func monthlySeries(rep *Report) ([]string, []float64) {
	points := rep.MonthlyTotals()
	labels := make([]string, len(points))
	values := make([]float64, len(points))

	for i, p := range points {
		labels[i] = p.Label
		values[i] = p.Total.InexactFloat64()
	}

	return labels, values
}

func trendSeries(rep *Report) ([]string, []float64, []float64) {
	points := rep.MonthlyTotals()
	labels := make([]string, len(points))
	raw := make([]float64, len(points))
	totals := make([]decimal.Decimal, len(points))

	for i, p := range points {
		labels[i] = p.Label
		raw[i] = p.Total.InexactFloat64()
		totals[i] = p.Total
	}

	avgDecimals := MovingAverage(totals)
	avg := make([]float64, len(avgDecimals))

	for i, d := range avgDecimals {
		avg[i] = d.InexactFloat64()
	}

	return labels, raw, avg
}
