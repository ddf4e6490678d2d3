package report

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/attachment"
	"custodia/internal/expense"
	"custodia/internal/family"
	"custodia/internal/report/chart"
	"custodia/internal/report/doc"
)

var (
	fontTitle       = doc.Font{Family: "Times", Style: "B", Size: 24}
	fontHeading     = doc.Font{Family: "Times", Style: "B", Size: 16}
	fontSubheading  = doc.Font{Family: "Times", Style: "B", Size: 12}
	fontBody        = doc.Font{Family: "Times", Size: 11}
	fontTableHeader = doc.Font{Family: "Times", Style: "B", Size: 10}
	fontTableCell   = doc.Font{Family: "Times", Size: 10}
	fontSmall       = doc.Font{Family: "Times", Style: "I", Size: 9}
)

var (
	colorText  = doc.RGB{R: 20, G: 20, B: 20}
	colorMuted = doc.RGB{R: 90, G: 90, B: 90}
	colorRule  = doc.RGB{R: 200, G: 200, B: 200}
)

var bodyMargins = doc.Margins{Top: 20, Bottom: 20, Left: 18, Right: 18}

// receiptMargin is the near-full-bleed margin of receipt pages. Receipt
// legibility dominates the layout there, so the standard body margins
// do not apply.
const receiptMargin = 8.0

const notRecorded = "[não informado]"

// ChartResult is the outcome of pre-rendering one chart slot.
type ChartResult struct {
	PNG []byte
	Err error
}

// ReceiptItem pairs a receipt with its owning expense and the outcome
// of loading its file. Items are placed in the order given.
type ReceiptItem struct {
	Expense *expense.Expense
	Receipt expense.Receipt
	Result  attachment.Result
}

// ComposeInput carries everything the composer places into the
// document. All fields are read-only during composition.
type ComposeInput struct {
	Report      *Report
	Skipped     int
	Children    []*family.Child
	Parents     []*family.Parent
	Lawyers     []*family.Lawyer
	Cases       []*family.LegalCase
	Charts      map[chart.Kind]ChartResult
	Receipts    []ReceiptItem
	GeneratedAt time.Time
}

type composer struct {
	doc *doc.Document
	m   doc.TextMeasurer
	cur doc.Cursor
	log *slog.Logger

	childNames map[uuid.UUID]string
	lawyers    map[uuid.UUID]*family.Lawyer
}

// Compose walks the fixed section order and lays the report out onto
// pages. Composition is strictly sequential: every section depends on
// the cursor state the previous one left behind.
func Compose(in ComposeInput, m doc.TextMeasurer, log *slog.Logger) (*doc.Document, error) {
	if in.Report == nil {
		return nil, fmt.Errorf("compose: nil aggregated report")
	}

	if log == nil {
		log = slog.Default()
	}

	c := &composer{
		doc:        doc.NewA4(bodyMargins),
		m:          m,
		log:        log,
		childNames: make(map[uuid.UUID]string, len(in.Children)),
		lawyers:    make(map[uuid.UUID]*family.Lawyer, len(in.Lawyers)),
	}

	for _, child := range in.Children {
		c.childNames[child.ID] = child.Name
	}

	for _, l := range in.Lawyers {
		c.lawyers[l.ID] = l
	}

	for _, section := range doc.Order {
		c.beginSection(section)

		switch section {
		case doc.SectionCover:
			c.cover(in)
		case doc.SectionChildren:
			c.children(in)
		case doc.SectionLegal:
			c.legal(in)
		case doc.SectionSummary:
			c.summary(in)
		case doc.SectionFinancial:
			c.financial(in)
		case doc.SectionCharts:
			c.charts(in)
		case doc.SectionExpenses:
			c.expenseTable(in)
		case doc.SectionReceipts:
			c.receipts(in)
		case doc.SectionConclusions:
			c.conclusions(in)
		case doc.SectionReferences:
			c.references(in)
		}
	}

	return c.doc, nil
}

// --- cursor and layout helpers ---

func (c *composer) page() *doc.Page {
	return c.doc.Pages[c.cur.Page]
}

func (c *composer) contentWidth() float64 {
	return c.doc.Width - c.doc.Margins.Left - c.doc.Margins.Right
}

func (c *composer) newPage() {
	c.cur.Page = c.doc.AddPage()
	c.cur.Y = c.doc.Margins.Top
}

// ensure starts a new page when h would overflow the bottom margin.
func (c *composer) ensure(h float64) {
	if c.cur.Y+h > c.doc.Height-c.doc.Margins.Bottom {
		c.newPage()
	}
}

// beginSection opens a fresh page and records the section start.
// Sections with no applicable data still render with placeholders, so
// every section is marked unconditionally.
func (c *composer) beginSection(s doc.Section) {
	c.newPage()
	c.doc.MarkSection(s, c.cur.Page)

	if s == doc.SectionCover {
		return
	}

	c.writeAligned(s.Title(), fontHeading, doc.AlignLeft, colorText)
	c.rule()
	c.space(4)
}

func (c *composer) space(h float64) {
	c.cur.Y += h
}

func (c *composer) rule() {
	c.page().Add(doc.Line{
		X1: c.doc.Margins.Left,
		Y1: c.cur.Y + 1,
		X2: c.doc.Width - c.doc.Margins.Right,
		Y2: c.cur.Y + 1,
	})
	c.space(2)
}

// write wraps the text to the content width and writes it line by line,
// breaking pages as needed.
func (c *composer) write(text string, f doc.Font) {
	c.writeAligned(text, f, doc.AlignLeft, colorText)
}

func (c *composer) writeAligned(text string, f doc.Font, align doc.Align, color doc.RGB) {
	lh := c.m.LineHeight(f)

	for _, line := range doc.Wrap(c.m, text, f, c.contentWidth()) {
		c.ensure(lh)
		c.page().Add(doc.Text{
			X:       c.doc.Margins.Left,
			Y:       c.cur.Y,
			W:       c.contentWidth(),
			Content: line,
			Font:    f,
			Align:   align,
			Color:   color,
		})
		c.cur.Y += lh
	}
}

func (c *composer) labelValue(label, value string) {
	if value == "" {
		value = notRecorded
	}

	c.write(label+": "+value, fontBody)
}

// --- tables ---

type table struct {
	headers []string
	widths  []float64 // fractions of the content width, summing to 1
}

// row writes one table row, breaking the page and re-emitting the
// header when the row would overflow. Row height is the tallest wrapped
// cell; every cell shares it.
func (c *composer) tableRows(t table, rows [][]string) {
	c.tableHeader(t)

	const cellPad = 1.2

	lh := c.m.LineHeight(fontTableCell)

	for _, cells := range rows {
		wrapped := make([][]string, len(cells))
		maxLines := 1

		for i, cell := range cells {
			w := t.widths[i]*c.contentWidth() - 2*cellPad
			wrapped[i] = doc.Wrap(c.m, cell, fontTableCell, w)

			if len(wrapped[i]) > maxLines {
				maxLines = len(wrapped[i])
			}
		}

		rowH := float64(maxLines)*lh + 2*cellPad

		if c.cur.Y+rowH > c.doc.Height-c.doc.Margins.Bottom {
			c.newPage()
			c.tableHeader(t)
		}

		x := c.doc.Margins.Left

		for i, lines := range wrapped {
			cellW := t.widths[i] * c.contentWidth()
			y := c.cur.Y + cellPad

			for _, line := range lines {
				c.page().Add(doc.Text{
					X:       x + cellPad,
					Y:       y,
					W:       cellW - 2*cellPad,
					Content: line,
					Font:    fontTableCell,
					Color:   colorText,
				})
				y += lh
			}

			x += cellW
		}

		c.cur.Y += rowH
		c.page().Add(doc.Line{
			X1: c.doc.Margins.Left,
			Y1: c.cur.Y,
			X2: c.doc.Width - c.doc.Margins.Right,
			Y2: c.cur.Y,
		})
	}

	c.space(3)
}

func (c *composer) tableHeader(t table) {
	lh := c.m.LineHeight(fontTableHeader)
	headH := lh + 2.4

	c.ensure(headH + lh) // header plus at least one row

	c.page().Add(doc.Rect{
		X:    c.doc.Margins.Left,
		Y:    c.cur.Y,
		W:    c.contentWidth(),
		H:    headH,
		Fill: doc.RGB{R: 230, G: 230, B: 230},
	})

	x := c.doc.Margins.Left

	for i, h := range t.headers {
		cellW := t.widths[i] * c.contentWidth()
		c.page().Add(doc.Text{
			X:       x + 1.2,
			Y:       c.cur.Y + 1.2,
			W:       cellW - 2.4,
			Content: h,
			Font:    fontTableHeader,
			Color:   colorText,
		})
		x += cellW
	}

	c.cur.Y += headH
}

// --- sections ---

func (c *composer) cover(in ComposeInput) {
	c.space(60)
	c.writeAligned(doc.SectionCover.Title(), fontTitle, doc.AlignCenter, colorText)
	c.space(6)
	c.writeAligned("Despesas com filhos para fins judiciais", fontSubheading, doc.AlignCenter, colorMuted)
	c.space(30)

	period := fmt.Sprintf("Período: %s a %s", in.Report.Period.Start, in.Report.Period.End)
	c.writeAligned(period, fontBody, doc.AlignCenter, colorText)
	c.space(4)
	c.writeAligned("Total do período: "+FormatAmount(in.Report.TotalAmount), fontSubheading, doc.AlignCenter, colorText)
	c.space(60)
	c.writeAligned("Gerado em "+in.GeneratedAt.Format("02/01/2006 15:04"), fontSmall, doc.AlignCenter, colorMuted)
}

func (c *composer) children(in ComposeInput) {
	if len(in.Children) == 0 {
		c.write(notRecorded, fontBody)
	}

	for _, child := range in.Children {
		c.write(child.Name, fontSubheading)

		birth := ""
		if !child.BirthDate.IsZero() {
			birth = child.BirthDate.Time().Format("02/01/2006")
		}

		c.labelValue("Data de nascimento", birth)
		c.labelValue("Ano escolar", child.SchoolYear)
		c.space(4)
	}

	c.space(4)
	c.write("Responsáveis", fontSubheading)
	c.space(2)

	if len(in.Parents) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	rows := make([][]string, len(in.Parents))
	for i, p := range in.Parents {
		rows[i] = []string{p.Name, p.Role, p.Document, p.Email, p.Phone}
	}

	c.tableRows(table{
		headers: []string{"Nome", "Vínculo", "CPF", "E-mail", "Telefone"},
		widths:  []float64{0.28, 0.14, 0.18, 0.24, 0.16},
	}, rows)
}

func (c *composer) legal(in ComposeInput) {
	if len(in.Cases) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	for _, lc := range in.Cases {
		c.write("Processo "+lc.CaseNumber, fontSubheading)
		c.labelValue("Vara", lc.Court)
		c.labelValue("Juiz(a)", lc.Judge)
		c.labelValue("Situação", lc.Status)

		lawyerName := ""
		if lc.LawyerID != nil {
			if l, ok := c.lawyers[*lc.LawyerID]; ok {
				lawyerName = fmt.Sprintf("%s (OAB %s)", l.Name, l.OABNumber)
			}
		}

		c.labelValue("Advogado(a)", lawyerName)

		if lc.Notes != "" {
			c.labelValue("Observações", lc.Notes)
		}

		c.space(5)
	}
}

func (c *composer) summary(in ComposeInput) {
	r := in.Report

	c.write(fmt.Sprintf(
		"No período de %s a %s foram registradas %d despesas, totalizando %s. "+
			"As despesas contam com %d comprovantes anexados, o que corresponde a uma taxa de documentação de %s.",
		r.Period.Start, r.Period.End, r.ExpenseCount, FormatAmount(r.TotalAmount),
		r.ReceiptCount, FormatPercent(r.DocumentationRate),
	), fontBody)
	c.space(4)

	if in.Skipped > 0 {
		c.writeAligned(fmt.Sprintf(
			"Atenção: %d registro(s) com valores inválidos foram desconsiderados na agregação.", in.Skipped,
		), fontSmall, doc.AlignLeft, colorMuted)
		c.space(4)
	}

	c.write("Situação de pagamento", fontSubheading)
	c.space(2)

	if len(r.StatusTotals) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	for _, status := range []expense.Status{expense.StatusPaid, expense.StatusPending, expense.StatusReimbursed} {
		total, ok := r.StatusTotals[status]
		if !ok {
			continue
		}

		c.write(fmt.Sprintf("%s: %s", statusLabel(status), FormatAmount(total)), fontBody)
	}
}

func (c *composer) financial(in ComposeInput) {
	r := in.Report

	c.write("Despesas por categoria", fontSubheading)
	c.space(2)

	if len(r.CategoryTotals) == 0 {
		c.write(notRecorded, fontBody)
	} else {
		rows := make([][]string, 0, len(r.CategoryTotals))
		for _, category := range r.Categories() {
			rows = append(rows, []string{
				category,
				FormatAmount(r.CategoryTotals[category]),
				FormatPercent(r.CategoryShares[category]),
			})
		}

		c.tableRows(table{
			headers: []string{"Categoria", "Total", "Participação"},
			widths:  []float64{0.5, 0.3, 0.2},
		}, rows)
	}

	c.space(4)
	c.write("Despesas por criança", fontSubheading)
	c.space(2)

	if len(r.ChildTotals) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	rows := make([][]string, 0, len(r.ChildTotals))
	for _, childID := range sortedChildIDs(r.ChildTotals, c.childNames) {
		name := c.childNames[childID]
		if name == "" {
			name = notRecorded
		}

		rows = append(rows, []string{name, FormatAmount(r.ChildTotals[childID])})
	}

	c.tableRows(table{
		headers: []string{"Criança", "Total"},
		widths:  []float64{0.6, 0.4},
	}, rows)
}

var chartSlots = []struct {
	kind  chart.Kind
	title string
}{
	{chart.KindPie, "Distribuição por categoria"},
	{chart.KindLine, "Evolução acumulada"},
	{chart.KindBar, "Totais mensais"},
	{chart.KindTrend, "Tendência (média móvel de 3 meses)"},
}

func (c *composer) charts(in ComposeInput) {
	for _, slot := range chartSlots {
		c.write(slot.title, fontSubheading)
		c.space(2)

		result := in.Charts[slot.kind]
		if result.Err != nil || len(result.PNG) == 0 {
			// One failed chart degrades to a placeholder; it never
			// aborts the report.
			c.log.Warn("chart unavailable, placeholder substituted",
				"chart", string(slot.kind), "error", result.Err)
			c.writeAligned("[gráfico indisponível]", fontSmall, doc.AlignLeft, colorMuted)
			c.space(6)

			continue
		}

		w := c.contentWidth()
		h := w * chart.Aspect()

		c.ensure(h)
		c.page().Add(doc.Image{
			X:      c.doc.Margins.Left,
			Y:      c.cur.Y,
			W:      w,
			H:      h,
			Format: "PNG",
			Data:   result.PNG,
		})
		c.cur.Y += h
		c.space(6)
	}
}

func (c *composer) expenseTable(in ComposeInput) {
	if len(in.Report.Expenses) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	rows := make([][]string, len(in.Report.Expenses))

	for i, e := range in.Report.Expenses {
		childName := c.childNames[e.ChildID]
		if childName == "" {
			childName = notRecorded
		}

		rows[i] = []string{
			e.Date.Time().Format("02/01/2006"),
			e.Description,
			e.Category,
			childName,
			statusLabel(e.Status),
			FormatAmount(e.Amount),
		}
	}

	c.tableRows(table{
		headers: []string{"Data", "Descrição", "Categoria", "Criança", "Situação", "Valor"},
		widths:  []float64{0.12, 0.3, 0.15, 0.15, 0.12, 0.16},
	}, rows)

	c.write("Total: "+FormatAmount(in.Report.TotalAmount), fontSubheading)
}

func (c *composer) receipts(in ComposeInput) {
	if len(in.Receipts) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	c.write(fmt.Sprintf("%d comprovante(s) reproduzidos nas páginas seguintes, um por página.", len(in.Receipts)), fontBody)

	for _, item := range in.Receipts {
		c.receiptPage(item)
	}
}

// receiptPage places one receipt on its own page. Images fill the page
// up to a near-full-bleed margin, centered and aspect-preserved; every
// failure mode degrades to a placeholder so one broken file never
// aborts the report.
func (c *composer) receiptPage(item ReceiptItem) {
	c.newPage()

	caption := fmt.Sprintf("%s - %s (%s)",
		item.Receipt.FileName,
		item.Expense.Description,
		item.Expense.Date.Time().Format("02/01/2006"),
	)
	c.page().Add(doc.Text{
		X:       receiptMargin,
		Y:       3,
		W:       c.doc.Width - 2*receiptMargin,
		Content: caption,
		Font:    fontSmall,
		Align:   doc.AlignCenter,
		Color:   colorMuted,
	})

	const captionH = 8.0

	boxX := receiptMargin
	boxY := receiptMargin + captionH
	boxW := c.doc.Width - 2*receiptMargin
	boxH := c.doc.Height - boxY - receiptMargin

	switch item.Result.Kind {
	case attachment.KindImage:
		w, h := fitBox(float64(item.Result.Width), float64(item.Result.Height), boxW, boxH)
		c.page().Add(doc.Image{
			X:      boxX + (boxW-w)/2,
			Y:      boxY + (boxH-h)/2,
			W:      w,
			H:      h,
			Format: imageFormat(item.Result.ContentType),
			Data:   item.Result.Bytes,
		})

	case attachment.KindOpaque:
		c.placeholderBox(boxX, boxY, boxW, boxH,
			fmt.Sprintf("Documento anexado não reproduzível em linha (%s).", item.Result.ContentType),
			item.Receipt.FileName)

	case attachment.KindMissing:
		c.log.Warn("receipt file missing, placeholder substituted",
			"path", item.Receipt.StoragePath)
		c.placeholderBox(boxX, boxY, boxW, boxH,
			"Arquivo não encontrado no armazenamento.", item.Receipt.FileName)

	default:
		c.log.Warn("receipt could not be loaded, placeholder substituted",
			"path", item.Receipt.StoragePath, "reason", item.Result.Reason)
		c.placeholderBox(boxX, boxY, boxW, boxH,
			"[falha ao carregar o comprovante]", item.Receipt.FileName)
	}
}

func (c *composer) placeholderBox(x, y, w, h float64, message, fileName string) {
	c.page().Add(doc.Rect{X: x, Y: y, W: w, H: h, Fill: doc.RGB{R: 244, G: 244, B: 244}})

	lh := c.m.LineHeight(fontBody)
	mid := y + h/2 - lh

	c.page().Add(doc.Text{
		X: x, Y: mid, W: w,
		Content: fileName,
		Font:    fontSubheading,
		Align:   doc.AlignCenter,
		Color:   colorText,
	})
	c.page().Add(doc.Text{
		X: x, Y: mid + c.m.LineHeight(fontSubheading) + 2, W: w,
		Content: message,
		Font:    fontBody,
		Align:   doc.AlignCenter,
		Color:   colorMuted,
	})
}

func (c *composer) conclusions(in ComposeInput) {
	r := in.Report

	c.write(fmt.Sprintf(
		"As despesas relacionadas neste relatório somam %s no período de %s a %s, distribuídas em %d categoria(s).",
		FormatAmount(r.TotalAmount), r.Period.Start, r.Period.End, len(r.CategoryTotals),
	), fontBody)
	c.space(3)

	c.write(fmt.Sprintf(
		"Do total de %d despesas, %s encontram-se documentadas por comprovante anexado a este relatório.",
		r.ExpenseCount, FormatPercent(r.DocumentationRate),
	), fontBody)
	c.space(3)

	c.write(
		"Os valores apresentados refletem fielmente os lançamentos registrados pelo responsável, "+
			"e os comprovantes reproduzidos integram este documento para fins de instrução processual.",
		fontBody)
}

func (c *composer) references(in ComposeInput) {
	if len(in.Receipts) == 0 {
		c.write(notRecorded, fontBody)
		return
	}

	rows := make([][]string, len(in.Receipts))
	for i, item := range in.Receipts {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			item.Receipt.FileName,
			item.Expense.Description,
			item.Expense.Date.Time().Format("02/01/2006"),
		}
	}

	c.tableRows(table{
		headers: []string{"Nº", "Arquivo", "Despesa", "Data"},
		widths:  []float64{0.08, 0.34, 0.42, 0.16},
	}, rows)
}

// --- small helpers ---

func statusLabel(s expense.Status) string {
	switch s {
	case expense.StatusPending:
		return "Pendente"
	case expense.StatusPaid:
		return "Pago"
	case expense.StatusReimbursed:
		return "Reembolsado"
	}

	return string(s)
}

// fitBox scales (w, h) to the largest size fitting in (boxW, boxH)
// preserving the aspect ratio exactly.
func fitBox(w, h, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return boxW, boxH
	}

	scale := boxW / w
	if s := boxH / h; s < scale {
		scale = s
	}

	return w * scale, h * scale
}

func imageFormat(contentType string) string {
	if contentType == "image/png" {
		return "PNG"
	}

	return "JPG"
}

// sortedChildIDs orders children by descending total, name as tie-breaker.
func sortedChildIDs(totals map[uuid.UUID]decimal.Decimal, names map[uuid.UUID]string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		cmp := totals[ids[i]].Cmp(totals[ids[j]])
		if cmp != 0 {
			return cmp > 0
		}

		return names[ids[i]] < names[ids[j]]
	})

	return ids
}
