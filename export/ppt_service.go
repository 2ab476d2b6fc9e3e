// Package export renders deck documents to PowerPoint files. Rendering is
// one-way: the .pptx output is a presentation snapshot of the deck, the deck
// JSON stays the document of record.
package export

import (
	"bytes"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"decksync/deck"
)

const (
	emuPerInch = 914400

	// Output slides are 16:9, 10in wide. Deck geometry is authored in the
	// sample's 13.333in space and scaled down at render time.
	deckSlideWidth = 13.333
	renderScale    = 10.0 / deckSlideWidth

	defaultFontSize = 14
	tableFontSize   = 10
)

// PPTService renders deck documents with GoPPT.
type PPTService struct{}

// NewPPTService creates a new renderer.
func NewPPTService() *PPTService {
	return &PPTService{}
}

func solidFill(rgb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor("FF" + rgb))
}

func emu(inches float64) int64 {
	return int64(inches * renderScale * emuPerInch)
}

// RenderDeck produces a .pptx rendering of the document.
func (s *PPTService) RenderDeck(doc *deck.Document) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = doc.Title
	p.GetDocumentProperties().Creator = "decksync"

	for i, slide := range doc.Slides {
		var target *ppt.Slide
		if i == 0 {
			target = p.GetActiveSlide()
		} else {
			target = p.CreateSlide()
		}
		s.renderSlide(target, slide)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PPTService) renderSlide(target *ppt.Slide, slide *deck.Slide) {
	// Shapes without geometry stack below the last placed shape.
	flowY := 0.3
	for _, shape := range slide.Shapes {
		box := shape.Box
		if box == nil {
			box = &deck.Box{X: 0.5, Y: flowY, W: deckSlideWidth - 1.0, H: 0.6}
		}
		flowY = box.Y + box.H + 0.1

		switch {
		case shape.HasTable():
			s.renderTable(target, shape, box)
		case shape.HasText():
			s.renderTextShape(target, shape, box)
		default:
			if shape.Fill != "" {
				rect := target.CreateRichTextShape()
				rect.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y))
				rect.SetWidth(emu(box.W)).SetHeight(emu(box.H))
				rect.SetFill(solidFill(shape.Fill))
			}
		}
	}
}

func (s *PPTService) renderTextShape(target *ppt.Slide, shape *deck.Shape, box *deck.Box) {
	rts := target.CreateRichTextShape()
	rts.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y))
	rts.SetWidth(emu(box.W)).SetHeight(emu(box.H))
	if shape.Fill != "" {
		rts.SetFill(solidFill(shape.Fill))
	}

	for pi, para := range shape.Frame.Paragraphs {
		if pi > 0 {
			rts.CreateParagraph()
		}
		for _, run := range para.Runs {
			tr := rts.CreateTextRun(run.Text)
			font := tr.GetFont()
			size := defaultFontSize
			if run.Style.Size > 0 {
				size = int(run.Style.Size)
			}
			font.SetSize(size)
			if run.Style.Bold != nil && *run.Style.Bold {
				font.SetBold(true)
			}
			if run.Style.Color != "" {
				font.SetColor(ppt.NewColor("FF" + run.Style.Color))
			}
		}
		switch para.Align {
		case "center":
			rts.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		case "right":
			rts.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
		}
	}
}

// renderTable draws a table as a stack of row shapes with column separators,
// first row styled as a header band.
func (s *PPTService) renderTable(target *ppt.Slide, shape *deck.Shape, box *deck.Box) {
	rows := shape.Table.Rows
	if len(rows) == 0 {
		return
	}
	rowHeight := box.H / float64(len(rows))
	y := box.Y
	for rowIdx, row := range rows {
		rowShape := target.CreateRichTextShape()
		rowShape.SetOffsetX(emu(box.X)).SetOffsetY(emu(y))
		rowShape.SetWidth(emu(box.W)).SetHeight(emu(rowHeight))

		header := rowIdx == 0
		if header {
			rowShape.SetFill(solidFill("003366"))
		} else if rowIdx%2 == 0 {
			rowShape.SetFill(solidFill("F1F5F9"))
		} else {
			rowShape.SetFill(solidFill("F8FAFC"))
		}

		text := ""
		for ci := range row.Cells {
			if ci > 0 {
				text += "    │    "
			}
			text += row.Cells[ci].Frame.PlainText()
		}
		tr := rowShape.CreateTextRun(text)
		font := tr.GetFont()
		font.SetSize(tableFontSize)
		if header {
			font.SetBold(true).SetColor(ppt.ColorWhite)
		} else {
			font.SetColor(ppt.NewColor("FF334155"))
		}
		rowShape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))

		y += rowHeight
	}
}
