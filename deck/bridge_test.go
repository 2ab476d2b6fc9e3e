package deck

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func boolp(b bool) *bool { return &b }

// testDoc is a two-slide deck with one styled shape and one table.
func testDoc() *Document {
	return &Document{
		Title: "Test Deck",
		Slides: []*Slide{
			{Shapes: []*Shape{
				{
					Name: "Title",
					Kind: KindTextBox,
					Frame: &TextFrame{Paragraphs: []Paragraph{
						{
							Runs: []Run{
								{Text: "Quarterly ", Style: Style{Font: "Arial", Size: 40, Bold: boolp(true), Color: "003366"}},
								{Text: "Report", Style: Style{Font: "Arial", Size: 40}},
							},
							Align: "center",
						},
						{Runs: []Run{{Text: "second paragraph"}}},
					}},
				},
				{Name: "Decor", Kind: KindRect, Fill: "006699"},
			}},
			{Shapes: []*Shape{
				{Name: "Metrics", Kind: KindTable, Table: NewTable(3, 2)},
			}},
		},
	}
}

func writeTestDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	if err := Save(testDoc(), path); err != nil {
		t.Fatalf("save deck: %v", err)
	}
	return path
}

func openTestBridge(t *testing.T) *Bridge {
	t.Helper()
	b := NewBridge(writeTestDeck(t))
	if err := b.Open(); err != nil {
		t.Fatalf("open deck: %v", err)
	}
	return b
}

func TestStoreRoundTrip(t *testing.T) {
	path := writeTestDeck(t)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load deck: %v", err)
	}
	if doc.SlideCount() != 2 {
		t.Fatalf("got %d slides, want 2", doc.SlideCount())
	}
	title := doc.Slides[0].Shapes[0]
	if got := title.Frame.PlainText(); got != "Quarterly Report\nsecond paragraph" {
		t.Errorf("PlainText = %q", got)
	}
	style := title.Frame.Paragraphs[0].Runs[0].Style
	if style.Font != "Arial" || style.Size != 40 || style.Bold == nil || !*style.Bold || style.Color != "003366" {
		t.Errorf("style did not round-trip: %+v", style)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error loading a missing deck")
	}
}

func TestUpdateShapeText(t *testing.T) {
	b := openTestBridge(t)

	msg, err := b.UpdateShapeText(1, "Title", "$7,500,000")
	if err != nil {
		t.Fatalf("UpdateShapeText: %v", err)
	}
	if !strings.Contains(msg, "Title") {
		t.Errorf("message should name the shape, got %q", msg)
	}

	frame := b.Document().Slides[0].Shapes[0].Frame
	if len(frame.Paragraphs) != 1 || len(frame.Paragraphs[0].Runs) != 1 {
		t.Fatalf("frame should collapse to one paragraph with one run, got %+v", frame)
	}
	run := frame.Paragraphs[0].Runs[0]
	if run.Text != "$7,500,000" {
		t.Errorf("run text = %q", run.Text)
	}
	// First-run style and paragraph alignment survive the replacement.
	if run.Style.Font != "Arial" || run.Style.Size != 40 || run.Style.Bold == nil || !*run.Style.Bold {
		t.Errorf("first-run style not preserved: %+v", run.Style)
	}
	if frame.Paragraphs[0].Align != "center" {
		t.Errorf("alignment not preserved: %q", frame.Paragraphs[0].Align)
	}
}

func TestUpdateShapeText_Errors(t *testing.T) {
	b := openTestBridge(t)

	if _, err := b.UpdateShapeText(1, "NoSuchShape", "x"); err == nil {
		t.Error("expected error for unknown shape")
	}
	if _, err := b.UpdateShapeText(9, "Title", "x"); err == nil {
		t.Error("expected error for out-of-range slide")
	}
	if _, err := b.UpdateShapeText(1, "Decor", "x"); err == nil {
		t.Error("expected error for shape without a text frame")
	}
}

func TestUpdateShapeText_Idempotent(t *testing.T) {
	b := openTestBridge(t)
	for i := 0; i < 3; i++ {
		if _, err := b.UpdateShapeText(1, "Title", "same text"); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	frame := b.Document().Slides[0].Shapes[0].Frame
	if got := frame.PlainText(); got != "same text" {
		t.Errorf("PlainText = %q", got)
	}
	if len(frame.Paragraphs) != 1 {
		t.Errorf("repeated updates should keep a single paragraph, got %d", len(frame.Paragraphs))
	}
}

func TestUpdateTableCell(t *testing.T) {
	b := openTestBridge(t)

	if _, err := b.UpdateTableCell(2, "Metrics", 2, 1, "$5.2M"); err != nil {
		t.Fatalf("UpdateTableCell: %v", err)
	}
	table := b.Document().Slides[1].Shapes[0].Table
	if got := table.Rows[1].Cells[0].Frame.PlainText(); got != "$5.2M" {
		t.Errorf("cell text = %q", got)
	}

	// Out-of-range coordinates fail without growing the table.
	if _, err := b.UpdateTableCell(2, "Metrics", 4, 1, "x"); err == nil {
		t.Error("expected error for row out of range")
	}
	if _, err := b.UpdateTableCell(2, "Metrics", 1, 3, "x"); err == nil {
		t.Error("expected error for column out of range")
	}
	if _, err := b.UpdateTableCell(2, "Metrics", 0, 1, "x"); err == nil {
		t.Error("expected error for zero row")
	}
	if table.RowCount() != 3 || table.ColCount() != 2 {
		t.Errorf("table grew to %dx%d", table.RowCount(), table.ColCount())
	}

	if _, err := b.UpdateTableCell(2, "NoSuchTable", 1, 1, "x"); err == nil {
		t.Error("expected error for unknown table")
	}
	// A text shape is not a valid table target.
	if _, err := b.UpdateTableCell(1, "Title", 1, 1, "x"); err == nil {
		t.Error("expected error addressing a text shape as a table")
	}
}

func TestBridgeSaveToOutput(t *testing.T) {
	b := openTestBridge(t)
	if _, err := b.UpdateShapeText(1, "Title", "updated"); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.json")
	if err := b.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := doc.Slides[0].Shapes[0].Frame.PlainText(); got != "updated" {
		t.Errorf("saved deck text = %q", got)
	}
}

func TestListShapesAndTables(t *testing.T) {
	b := openTestBridge(t)

	shapes := b.ListShapes(1)
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}
	if shapes[0].Name != "Title" || !shapes[0].HasText || shapes[0].TextPreview == "" {
		t.Errorf("title info wrong: %+v", shapes[0])
	}
	if shapes[1].HasText || shapes[1].HasTable {
		t.Errorf("decor shape should have no content: %+v", shapes[1])
	}

	tables := b.ListTables(2)
	if len(tables) != 1 || tables[0].Name != "Metrics" || tables[0].Rows != 3 || tables[0].Cols != 2 {
		t.Errorf("table listing wrong: %+v", tables)
	}

	if got := b.ListShapes(99); len(got) != 0 {
		t.Errorf("out-of-range slide should list nothing, got %+v", got)
	}
	if got := b.ListTables(0); len(got) != 0 {
		t.Errorf("slide 0 should list nothing, got %+v", got)
	}
}

func TestListShapes_PreviewRuneSafe(t *testing.T) {
	b := openTestBridge(t)
	// 60 multi-byte runes; a byte-level cut at 50 would land mid-rune.
	long := strings.Repeat("é", 60)
	if _, err := b.UpdateShapeText(1, "Title", long); err != nil {
		t.Fatalf("update: %v", err)
	}

	shapes := b.ListShapes(1)
	preview := shapes[0].TextPreview
	if !utf8.ValidString(preview) {
		t.Errorf("preview is not valid UTF-8: %q", preview)
	}
	if got := utf8.RuneCountInString(preview); got != 50 {
		t.Errorf("preview has %d runes, want 50", got)
	}
	if !strings.HasPrefix(long, preview) {
		t.Errorf("preview is not a prefix of the text: %q", preview)
	}
}

func TestOpenResetsCaches(t *testing.T) {
	b := openTestBridge(t)
	if _, err := b.UpdateShapeText(1, "Title", "first"); err != nil {
		t.Fatalf("update: %v", err)
	}
	// Reopen discards the unsaved change and any cached pointers.
	if err := b.Open(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := b.Document().Slides[0].Shapes[0].Frame.PlainText(); got == "first" {
		t.Error("reopen should discard unsaved changes")
	}
	if _, err := b.UpdateShapeText(1, "Title", "second"); err != nil {
		t.Fatalf("update after reopen: %v", err)
	}
}
