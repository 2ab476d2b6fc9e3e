// Package deck holds the in-memory slide-deck document model and the Bridge
// that resolves and mutates named targets inside it. The document itself is a
// plain object graph: ordered slides, each with ordered named shapes, where a
// shape carries a text frame, a table, or neither.
package deck

// Shape kinds. Kind is informational (diagnostics, rendering); target
// resolution goes by name and by the presence of a frame or table.
const (
	KindTextBox = "textbox"
	KindTable   = "table"
	KindRect    = "rect"
)

// Style is the run-level appearance snapshot: font name, size, weight, slant
// and color. Zero/nil fields mean "not set" and are left untouched when the
// style is reapplied.
type Style struct {
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"` // points
	Bold   *bool   `json:"bold,omitempty"`
	Italic *bool   `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"` // RRGGBB hex
}

// Run is a span of uniformly styled text.
type Run struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// Paragraph is an ordered list of runs.
type Paragraph struct {
	Runs  []Run  `json:"runs,omitempty"`
	Align string `json:"align,omitempty"` // "", "center", "right"
}

// TextFrame is an ordered list of paragraphs.
type TextFrame struct {
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

// PlainText joins all run text, paragraphs separated by newlines.
func (f *TextFrame) PlainText() string {
	var out string
	for i, p := range f.Paragraphs {
		if i > 0 {
			out += "\n"
		}
		for _, r := range p.Runs {
			out += r.Text
		}
	}
	return out
}

// SetPlainText replaces the frame's whole content with a single unstyled run.
func (f *TextFrame) SetPlainText(text string) {
	f.Paragraphs = []Paragraph{{Runs: []Run{{Text: text}}}}
}

// TableCell wraps the cell's text frame.
type TableCell struct {
	Frame TextFrame `json:"frame"`
}

// TableRow is an ordered list of cells.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// Table is an ordered grid of rows by columns.
type Table struct {
	Rows []TableRow `json:"rows"`
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the column count of the first row; tables are rectangular
// by construction.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// Box is a shape's position and size in inches, used only for rendering.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Shape is a named drawable on a slide. At most one of Frame and Table is
// set; a shape with neither carries no updatable content.
type Shape struct {
	Name  string     `json:"name"`
	Kind  string     `json:"kind,omitempty"`
	Fill  string     `json:"fill,omitempty"` // RRGGBB hex background
	Box   *Box       `json:"box,omitempty"`
	Frame *TextFrame `json:"frame,omitempty"`
	Table *Table     `json:"table,omitempty"`
}

// HasText reports whether the shape carries a text frame.
func (s *Shape) HasText() bool { return s.Frame != nil }

// HasTable reports whether the shape carries a table.
func (s *Shape) HasTable() bool { return s.Table != nil }

// Slide is an ordered list of shapes.
type Slide struct {
	Shapes []*Shape `json:"shapes"`
}

// Document is the deck: title plus ordered slides.
type Document struct {
	Title  string   `json:"title,omitempty"`
	Slides []*Slide `json:"slides"`
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int { return len(d.Slides) }

// NewTable builds an empty rows-by-cols table.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([]TableRow, rows)}
	for i := range t.Rows {
		t.Rows[i].Cells = make([]TableCell, cols)
	}
	return t
}
