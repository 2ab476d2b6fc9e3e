package export

import "decksync/deck"

// Palette of the sample investor deck.
const (
	navy  = "003366"
	gray  = "666666"
	teal  = "006699"
	green = "009933"
	white = "FFFFFF"
	ink   = "333333"
)

func boolp(b bool) *bool { return &b }

func styled(text string, size float64, bold bool, color string) deck.Run {
	return deck.Run{Text: text, Style: deck.Style{Font: "Arial", Size: size, Bold: boolp(bold), Color: color}}
}

func textShape(name string, box deck.Box, align string, runs ...deck.Run) *deck.Shape {
	return &deck.Shape{
		Name: name,
		Kind: deck.KindTextBox,
		Box:  &box,
		Frame: &deck.TextFrame{
			Paragraphs: []deck.Paragraph{{Runs: runs, Align: align}},
		},
	}
}

func tableCell(text string, size float64, bold bool, color string) deck.TableCell {
	return deck.TableCell{Frame: deck.TextFrame{
		Paragraphs: []deck.Paragraph{{Runs: []deck.Run{styled(text, size, bold, color)}}},
	}}
}

func tableFromRows(header []string, data [][]string) *deck.Table {
	t := &deck.Table{}
	headerRow := deck.TableRow{}
	for _, h := range header {
		headerRow.Cells = append(headerRow.Cells, tableCell(h, 14, true, white))
	}
	t.Rows = append(t.Rows, headerRow)
	for _, rowData := range data {
		row := deck.TableRow{}
		for ci, v := range rowData {
			color := "000000"
			bold := false
			if ci == 0 {
				color = ink
				bold = true
			}
			row.Cells = append(row.Cells, tableCell(v, 12, bold, color))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// BuildSampleDeck builds the five-slide sample investor deck with named
// shapes and tables sized for end-to-end testing: a title slide, a metrics
// slide, financial and KPI tables, and a summary slide.
func BuildSampleDeck() *deck.Document {
	doc := &deck.Document{Title: "Investor Report"}

	// Slide 1: title
	slide1 := &deck.Slide{Shapes: []*deck.Shape{
		textShape("Title", deck.Box{X: 0.5, Y: 2.5, W: 12.333, H: 1}, "center",
			styled("Investor Report", 44, true, navy)),
		textShape("ReportDate", deck.Box{X: 0.5, Y: 3.8, W: 12.333, H: 0.5}, "center",
			styled("Q4 2024", 24, false, gray)),
	}}

	// Slide 2: key metrics
	slide2 := &deck.Slide{Shapes: []*deck.Shape{
		textShape("SectionTitle", deck.Box{X: 0.5, Y: 0.3, W: 12.333, H: 0.6}, "",
			styled("Key Performance Metrics", 28, true, navy)),
		textShape("RevenueBox", deck.Box{X: 0.5, Y: 1.2, W: 3, H: 0.6}, "",
			styled("Revenue", 14, false, white)),
		textShape("RevenueValue", deck.Box{X: 0.5, Y: 2.0, W: 3, H: 0.6}, "center",
			styled("$5,000,000", 24, true, teal)),
		textShape("GrowthRate", deck.Box{X: 4, Y: 1.2, W: 3, H: 0.6}, "center",
			styled("Growth Rate", 14, false, gray)),
		textShape("GrowthValue", deck.Box{X: 4, Y: 2.0, W: 3, H: 0.6}, "center",
			styled("25.5%", 24, true, green)),
		textShape("CustomerCount", deck.Box{X: 7.5, Y: 1.2, W: 3, H: 0.6}, "center",
			styled("Active Customers", 14, false, gray)),
		textShape("CustomerValue", deck.Box{X: 7.5, Y: 2.0, W: 3, H: 0.6}, "center",
			styled("1,250", 24, true, navy)),
	}}
	slide2.Shapes[1].Fill = teal

	// Slide 3: financial table
	slide3 := &deck.Slide{Shapes: []*deck.Shape{
		textShape("FinancialTitle", deck.Box{X: 0.5, Y: 0.3, W: 12.333, H: 0.6}, "",
			styled("Financial Summary", 28, true, navy)),
		{
			Name: "FinancialTable",
			Kind: deck.KindTable,
			Box:  &deck.Box{X: 0.5, Y: 1.2, W: 10, H: 3},
			Table: tableFromRows(
				[]string{"Metric", "Q2 2024", "Q3 2024", "Q4 2024"},
				[][]string{
					{"Revenue", "$4,200,000", "$4,600,000", "$5,000,000"},
					{"Expenses", "$2,800,000", "$3,000,000", "$3,200,000"},
					{"Net Income", "$1,400,000", "$1,600,000", "$1,800,000"},
					{"EBITDA", "$1,800,000", "$2,000,000", "$2,200,000"},
				}),
		},
	}}

	// Slide 4: KPI table
	slide4 := &deck.Slide{Shapes: []*deck.Shape{
		textShape("KPITitle", deck.Box{X: 0.5, Y: 0.3, W: 12.333, H: 0.6}, "",
			styled("Key Performance Indicators", 28, true, navy)),
		{
			Name: "KPITable",
			Kind: deck.KindTable,
			Box:  &deck.Box{X: 0.5, Y: 1.2, W: 8, H: 3.5},
			Table: tableFromRows(
				[]string{"KPI", "Current", "Target"},
				[][]string{
					{"Customer Acquisition Cost", "$150", "$125"},
					{"Customer Lifetime Value", "$2,500", "$3,000"},
					{"Churn Rate", "5.2%", "4.0%"},
					{"Net Promoter Score", "72", "80"},
					{"Monthly Active Users", "45,000", "50,000"},
				}),
		},
	}}

	// Slide 5: executive summary
	slide5 := &deck.Slide{Shapes: []*deck.Shape{
		textShape("SummaryTitle", deck.Box{X: 0.5, Y: 0.3, W: 12.333, H: 0.6}, "",
			styled("Executive Summary", 28, true, navy)),
		textShape("ReportPeriod", deck.Box{X: 0.5, Y: 1.2, W: 6, H: 0.5}, "",
			styled("Reporting Period: Q4 2024", 16, false, gray)),
		textShape("TotalRevenue", deck.Box{X: 0.5, Y: 2.0, W: 4, H: 0.8}, "",
			styled("Total Revenue: $5,000,000", 18, true, navy)),
		textShape("YoYGrowth", deck.Box{X: 0.5, Y: 2.8, W: 4, H: 0.8}, "",
			styled("Year-over-Year Growth: 25.5%", 18, true, green)),
		textShape("CustomerSummary", deck.Box{X: 0.5, Y: 3.6, W: 4, H: 0.8}, "",
			styled("Total Customers: 1,250", 18, true, navy)),
		textShape("InceptionDate", deck.Box{X: 7, Y: 2.0, W: 5, H: 0.5}, "",
			styled("Fund Inception: April 1, 2021", 14, false, gray)),
	}}

	doc.Slides = []*deck.Slide{slide1, slide2, slide3, slide4, slide5}
	return doc
}
