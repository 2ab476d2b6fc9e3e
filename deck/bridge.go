package deck

import (
	"fmt"
	"unicode/utf8"
)

type cacheKey struct {
	slide int
	name  string
}

// Bridge opens a deck document and applies named-target text updates to it.
// Shape and table lookups are cached per open session; Open resets the
// caches along with the document.
type Bridge struct {
	path string
	doc  *Document

	shapeCache map[cacheKey]*Shape
	tableCache map[cacheKey]*Table
}

// NewBridge returns a bridge for the deck file at path. Nothing is read
// until Open.
func NewBridge(path string) *Bridge {
	return &Bridge{path: path}
}

// Open loads the document and resets the session caches.
func (b *Bridge) Open() error {
	doc, err := Load(b.path)
	if err != nil {
		return err
	}
	b.doc = doc
	b.shapeCache = make(map[cacheKey]*Shape)
	b.tableCache = make(map[cacheKey]*Table)
	return nil
}

// Document exposes the open document; nil before Open.
func (b *Bridge) Document() *Document { return b.doc }

// SlideCount returns the slide count of the open document.
func (b *Bridge) SlideCount() int {
	if b.doc == nil {
		return 0
	}
	return b.doc.SlideCount()
}

// Save persists the document. An empty outputPath overwrites the file the
// bridge was opened from.
func (b *Bridge) Save(outputPath string) error {
	if b.doc == nil {
		return fmt.Errorf("no deck open")
	}
	if outputPath == "" {
		outputPath = b.path
	}
	return Save(b.doc, outputPath)
}

// slide returns the 1-based slide, or nil when the index is out of range.
func (b *Bridge) slide(index int) *Slide {
	if b.doc == nil || index < 1 || index > len(b.doc.Slides) {
		return nil
	}
	return b.doc.Slides[index-1]
}

// findShape resolves a shape by exact name on a slide, first match wins.
func (b *Bridge) findShape(slideIndex int, name string) *Shape {
	key := cacheKey{slideIndex, name}
	if s, ok := b.shapeCache[key]; ok {
		return s
	}
	slide := b.slide(slideIndex)
	if slide == nil {
		return nil
	}
	for _, s := range slide.Shapes {
		if s.Name == name {
			b.shapeCache[key] = s
			return s
		}
	}
	return nil
}

// findTable resolves a table-bearing shape by name.
func (b *Bridge) findTable(slideIndex int, name string) *Table {
	key := cacheKey{slideIndex, name}
	if t, ok := b.tableCache[key]; ok {
		return t
	}
	slide := b.slide(slideIndex)
	if slide == nil {
		return nil
	}
	for _, s := range slide.Shapes {
		if s.Name == name && s.HasTable() {
			b.tableCache[key] = s.Table
			return s.Table
		}
	}
	return nil
}

// captureStyle snapshots the style of the first run of the first paragraph,
// or nil when the frame has no run to copy from.
func captureStyle(f *TextFrame) *Style {
	if len(f.Paragraphs) == 0 || len(f.Paragraphs[0].Runs) == 0 {
		return nil
	}
	style := f.Paragraphs[0].Runs[0].Style
	return &style
}

// replaceText reduces the frame to a single paragraph with a single run
// holding newText, reapplying the captured first-run style when one exists.
func replaceText(f *TextFrame, newText string) {
	if len(f.Paragraphs) == 0 {
		f.SetPlainText(newText)
		return
	}
	run := Run{Text: newText}
	if snap := captureStyle(f); snap != nil {
		run.Style = *snap
	}
	align := f.Paragraphs[0].Align
	f.Paragraphs = []Paragraph{{Runs: []Run{run}, Align: align}}
}

// UpdateShapeText replaces the text of a named shape, preserving the style of
// the first run. It reports a message describing the outcome and never
// panics past its own boundary.
func (b *Bridge) UpdateShapeText(slideIndex int, shapeName, newText string) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, err = "", fmt.Errorf("update shape %q: %v", shapeName, r)
		}
	}()

	shape := b.findShape(slideIndex, shapeName)
	if shape == nil {
		return "", fmt.Errorf("shape %q not found on slide %d", shapeName, slideIndex)
	}
	if !shape.HasText() {
		return "", fmt.Errorf("shape %q does not contain text", shapeName)
	}
	replaceText(shape.Frame, newText)
	return fmt.Sprintf("updated shape %q on slide %d", shapeName, slideIndex), nil
}

// UpdateTableCell replaces the text of one cell in a named table. Row and
// col are 1-based; indices outside the table's current bounds fail, the
// table never grows.
func (b *Bridge) UpdateTableCell(slideIndex int, tableName string, row, col int, newText string) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, err = "", fmt.Errorf("update table %q: %v", tableName, r)
		}
	}()

	table := b.findTable(slideIndex, tableName)
	if table == nil {
		return "", fmt.Errorf("table %q not found on slide %d", tableName, slideIndex)
	}
	rowIdx, colIdx := row-1, col-1
	if rowIdx < 0 || rowIdx >= len(table.Rows) {
		return "", fmt.Errorf("row %d out of range in table %q (%d rows)", row, tableName, len(table.Rows))
	}
	cells := table.Rows[rowIdx].Cells
	if colIdx < 0 || colIdx >= len(cells) {
		return "", fmt.Errorf("column %d out of range in table %q (%d columns)", col, tableName, len(cells))
	}
	replaceText(&cells[colIdx].Frame, newText)
	return fmt.Sprintf("updated cell (%d,%d) in table %q", row, col, tableName), nil
}

// ShapeInfo describes one shape for operator tooling.
type ShapeInfo struct {
	Name        string
	Kind        string
	HasText     bool
	HasTable    bool
	TextPreview string
	TableSize   string
}

// TableInfo describes one table for operator tooling.
type TableInfo struct {
	Name string
	Rows int
	Cols int
}

// ListShapes enumerates the shapes on a slide. An out-of-range slide index
// yields an empty list, not a failure.
func (b *Bridge) ListShapes(slideIndex int) []ShapeInfo {
	slide := b.slide(slideIndex)
	if slide == nil {
		return nil
	}
	infos := make([]ShapeInfo, 0, len(slide.Shapes))
	for _, s := range slide.Shapes {
		info := ShapeInfo{
			Name:     s.Name,
			Kind:     s.Kind,
			HasText:  s.HasText(),
			HasTable: s.HasTable(),
		}
		if s.HasText() {
			info.TextPreview = truncate(s.Frame.PlainText(), 50)
		}
		if s.HasTable() {
			info.TableSize = fmt.Sprintf("%dx%d", s.Table.RowCount(), s.Table.ColCount())
		}
		infos = append(infos, info)
	}
	return infos
}

// truncate cuts s to at most n runes, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// ListTables enumerates the table-bearing shapes on a slide.
func (b *Bridge) ListTables(slideIndex int) []TableInfo {
	slide := b.slide(slideIndex)
	if slide == nil {
		return nil
	}
	var infos []TableInfo
	for _, s := range slide.Shapes {
		if s.HasTable() {
			infos = append(infos, TableInfo{Name: s.Name, Rows: s.Table.RowCount(), Cols: s.Table.ColCount()})
		}
	}
	return infos
}
