// Package doc models a paginated document as an editable list of pages
// of drawing operations. PDF writers are append-only, so the table of
// contents could not be spliced in after composition if pages were
// emitted directly; the model keeps pages mutable until the final
// render pass.
//
// All coordinates are millimeters on an A4 portrait page, origin at the
// top-left corner.
package doc

// A4 portrait, in millimeters.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Font selects a face the way PDF backends do: family, style flags
// ("B", "I", "BI" or ""), size in points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

type RGB struct {
	R, G, B uint8
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is a single drawing operation on a page.
type Op interface {
	op()
}

// Text draws one line of text inside a box of width W starting at X,
// with Y as the top of the line.
type Text struct {
	X, Y, W float64
	Content string
	Font    Font
	Align   Align
	Color   RGB
}

// Image places raster bytes at a fixed position and size.
type Image struct {
	X, Y, W, H float64
	Format     string // "PNG" or "JPG"
	Data       []byte
}

// Rect draws a filled rectangle.
type Rect struct {
	X, Y, W, H float64
	Fill       RGB
}

// Line draws a straight line.
type Line struct {
	X1, Y1, X2, Y2 float64
}

func (Text) op()  {}
func (Image) op() {}
func (Rect) op()  {}
func (Line) op()  {}

type Page struct {
	Ops []Op
}

func (p *Page) Add(op Op) {
	p.Ops = append(p.Ops, op)
}

// Document is the composed report before rendering.
type Document struct {
	Width   float64
	Height  float64
	Margins Margins
	Pages   []*Page

	// SectionPages maps each section to the absolute index of the page
	// it starts on. Recorded once per section during composition.
	SectionPages map[Section]int
}

func NewA4(margins Margins) *Document {
	return &Document{
		Width:        PageWidth,
		Height:       PageHeight,
		Margins:      margins,
		SectionPages: make(map[Section]int),
	}
}

// AddPage appends a page and returns its absolute index.
func (d *Document) AddPage() int {
	d.Pages = append(d.Pages, &Page{})
	return len(d.Pages) - 1
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}

// InsertPage splices a blank page at the given absolute index and
// returns it. Existing pages from idx onward shift by one; callers own
// the renumbering of SectionPages.
func (d *Document) InsertPage(idx int) *Page {
	page := &Page{}
	d.Pages = append(d.Pages, nil)
	copy(d.Pages[idx+1:], d.Pages[idx:])
	d.Pages[idx] = page

	return page
}

// MarkSection records the start page of a section. Only the first call
// per section takes effect.
func (d *Document) MarkSection(s Section, pageIdx int) {
	if _, seen := d.SectionPages[s]; !seen {
		d.SectionPages[s] = pageIdx
	}
}

// Cursor tracks the composer's position: the page being written and the
// vertical offset on it. It is owned exclusively by the composer and is
// never shared across goroutines.
type Cursor struct {
	Page int
	Y    float64
}
