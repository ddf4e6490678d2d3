package doc

// Section names the ordered blocks of the report. The composer visits
// them in exactly this order; a section with no applicable data still
// renders with placeholder text so the numbering the reader sees never
// shifts silently.
type Section string

const (
	SectionCover       Section = "cover"
	SectionChildren    Section = "children"
	SectionLegal       Section = "legal"
	SectionSummary     Section = "summary"
	SectionFinancial   Section = "financial"
	SectionCharts      Section = "charts"
	SectionExpenses    Section = "expenses"
	SectionReceipts    Section = "receipts"
	SectionConclusions Section = "conclusions"
	SectionReferences  Section = "references"
)

// Order is the fixed composition order.
var Order = []Section{
	SectionCover,
	SectionChildren,
	SectionLegal,
	SectionSummary,
	SectionFinancial,
	SectionCharts,
	SectionExpenses,
	SectionReceipts,
	SectionConclusions,
	SectionReferences,
}

// Numbered reports whether the section belongs to the numbered body.
// Cover and front matter carry no printed page number and no TOC entry.
func (s Section) Numbered() bool {
	switch s {
	case SectionCover, SectionChildren, SectionLegal:
		return false
	}

	return true
}

// Title is the heading printed in the document and in the TOC.
func (s Section) Title() string {
	switch s {
	case SectionCover:
		return "Relatório de Despesas"
	case SectionChildren:
		return "Informações das Crianças"
	case SectionLegal:
		return "Contexto Jurídico"
	case SectionSummary:
		return "Sumário Executivo"
	case SectionFinancial:
		return "Análise Financeira"
	case SectionCharts:
		return "Gráficos"
	case SectionExpenses:
		return "Detalhamento de Despesas"
	case SectionReceipts:
		return "Comprovantes Anexados"
	case SectionConclusions:
		return "Conclusões"
	case SectionReferences:
		return "Referências"
	}

	return string(s)
}
