package report

import (
	"fmt"
	"strings"

	"custodia/internal/report/doc"
)

// The TOC page numbers cannot be known until the whole document exists,
// and inserting the TOC page shifts every later absolute page index by
// one. ResolveTOC therefore runs as a second pass over the composed
// document:
//
//  1. find the first numbered content section (its page is the
//     insertion point; earlier pages are unnumbered front matter),
//  2. splice a blank page there and shift SectionPages accordingly,
//  3. compute display numbers relative to the first content page,
//  4. write the TOC entries with dot leaders and the corrected numbers,
//  5. stamp every numbered page, overdrawing any stale stamp with an
//     opaque patch first so re-resolving never leaves ghosting.
//
// After resolution the number printed on a page, the number next to its
// section in the TOC and the physical page of the section heading all
// agree.
func ResolveTOC(d *doc.Document, m doc.TextMeasurer) error {
	insertAt, ok := firstNumberedPage(d)
	if !ok {
		return fmt.Errorf("resolve toc: no numbered section composed")
	}

	tocPage := d.InsertPage(insertAt)

	for s, p := range d.SectionPages {
		if p >= insertAt {
			d.SectionPages[s] = p + 1
		}
	}

	// displayNumber maps a post-insertion absolute index to the number
	// printed on the page. The first content page (right after the TOC)
	// is display page 1; the TOC page itself stays unnumbered.
	displayNumber := func(abs int) int {
		return abs - insertAt
	}

	writeTOC(d, m, tocPage, displayNumber)

	for abs := insertAt + 1; abs < d.PageCount(); abs++ {
		stampPage(d, d.Pages[abs], displayNumber(abs))
	}

	return nil
}

func firstNumberedPage(d *doc.Document) (int, bool) {
	first := -1

	for s, p := range d.SectionPages {
		if !s.Numbered() {
			continue
		}

		if first == -1 || p < first {
			first = p
		}
	}

	return first, first != -1
}

func writeTOC(d *doc.Document, m doc.TextMeasurer, page *doc.Page, displayNumber func(int) int) {
	left := d.Margins.Left
	right := d.Width - d.Margins.Right
	y := d.Margins.Top

	page.Add(doc.Text{
		X: left, Y: y, W: right - left,
		Content: "Sumário",
		Font:    fontHeading,
		Color:   colorText,
	})
	y += m.LineHeight(fontHeading) + 6

	entryH := m.LineHeight(fontBody) + 3

	for _, section := range doc.Order {
		if !section.Numbered() {
			continue
		}

		abs, ok := d.SectionPages[section]
		if !ok {
			continue
		}

		title := section.Title()
		number := fmt.Sprintf("%d", displayNumber(abs))
		numberW := m.TextWidth(number, fontBody)

		page.Add(doc.Text{
			X: left, Y: y, W: right - left,
			Content: title,
			Font:    fontBody,
			Color:   colorText,
		})

		// Dot leader fills the gap between title and the right-aligned
		// page number.
		leaderStart := left + m.TextWidth(title, fontBody) + 2
		leaderEnd := right - numberW - 2
		leader := dotLeader(m, leaderEnd-leaderStart)

		if leader != "" {
			page.Add(doc.Text{
				X: leaderStart, Y: y, W: leaderEnd - leaderStart,
				Content: leader,
				Font:    fontBody,
				Color:   colorMuted,
			})
		}

		page.Add(doc.Text{
			X: left, Y: y, W: right - left,
			Content: number,
			Font:    fontBody,
			Align:   doc.AlignRight,
			Color:   colorText,
		})

		y += entryH
	}
}

func dotLeader(m doc.TextMeasurer, width float64) string {
	dotW := m.TextWidth(".", fontBody)
	if dotW <= 0 || width < dotW {
		return ""
	}

	return strings.Repeat(".", int(width/dotW))
}

// Stamp geometry: a patch wide enough to cover any previous stamp.
const (
	stampPatchW = 30.0
	stampPatchH = 7.0
)

func stampPage(d *doc.Document, page *doc.Page, number int) {
	y := d.Height - d.Margins.Bottom + 4
	centerX := d.Width / 2

	// Opaque patch first: a second resolution pass must overdraw the
	// stale number instead of printing on top of it.
	page.Add(doc.Rect{
		X:    centerX - stampPatchW/2,
		Y:    y - 1,
		W:    stampPatchW,
		H:    stampPatchH,
		Fill: doc.RGB{R: 255, G: 255, B: 255},
	})

	page.Add(doc.Text{
		X: centerX - stampPatchW/2, Y: y, W: stampPatchW,
		Content: fmt.Sprintf("%d", number),
		Font:    fontSmall,
		Align:   doc.AlignCenter,
		Color:   colorMuted,
	})
}
