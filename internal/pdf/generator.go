package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders tenant-facing documents. Kept as an interface so
// services can be tested with a stub.
type Generator interface {
	GenerateDunningNotice(data NoticeData) ([]byte, error)
	GenerateRentInvoice(data InvoiceData) ([]byte, error)
}

type DocumentGenerator struct {
	companyName string
}

func NewDocumentGenerator(companyName string) *DocumentGenerator {
	if companyName == "" {
		companyName = "RentFlow"
	}
	return &DocumentGenerator{companyName: companyName}
}

type NoticeData struct {
	TenantName  string
	UnitLabel   string
	Stage       int
	AmountCents int64
	DueDate     time.Time
	IssuedAt    time.Time
}

type InvoiceData struct {
	InvoiceID   string
	TenantName  string
	UnitLabel   string
	AmountCents int64
	Description string
	DueDate     time.Time
	IssuedAt    time.Time
}

var stageTitles = map[int]string{
	1: "PAYMENT REMINDER",
	2: "SECOND NOTICE",
	3: "THIRD NOTICE",
	4: "FINAL NOTICE",
}

func (g *DocumentGenerator) GenerateDunningNotice(data NoticeData) ([]byte, error) {
	title, ok := stageTitles[data.Stage]
	if !ok {
		title = stageTitles[1]
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("%s - %s", title, data.TenantName), false)
	doc.SetAuthor(g.companyName, false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, "Issued "+data.IssuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	g.sectionTitle(doc, "Account")
	g.kvLine(doc, "Resident", data.TenantName)
	if data.UnitLabel != "" {
		g.kvLine(doc, "Unit", data.UnitLabel)
	}
	g.kvLine(doc, "Amount due", fmt.Sprintf("$%.2f", float64(data.AmountCents)/100))
	g.kvLine(doc, "Original due date", data.DueDate.Format("January 2, 2006"))
	doc.Ln(2)
	g.hr(doc)

	g.sectionTitle(doc, "Notice")
	doc.SetFont("Helvetica", "", 11)
	body := "Our records indicate the rent payment above has not been received. " +
		"Please arrange payment promptly. If payment has already been made, " +
		"no further action is required."
	if data.Stage >= 4 {
		body = "This is a final notice. The rent payment above remains outstanding. " +
			"Failure to pay may result in late fees and further action as permitted " +
			"by your lease agreement and applicable law."
	}
	doc.MultiCell(0, 6, body, "", "L", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, g.companyName, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render dunning notice: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *DocumentGenerator) GenerateRentInvoice(data InvoiceData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+data.InvoiceID, false)
	doc.SetAuthor(g.companyName, false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "RENT INVOICE", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, data.InvoiceID, "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	g.sectionTitle(doc, "Details")
	g.kvLine(doc, "Resident", data.TenantName)
	if data.UnitLabel != "" {
		g.kvLine(doc, "Unit", data.UnitLabel)
	}
	if data.Description != "" {
		g.kvLine(doc, "Description", data.Description)
	}
	g.kvLine(doc, "Amount", fmt.Sprintf("$%.2f", float64(data.AmountCents)/100))
	g.kvLine(doc, "Due date", data.DueDate.Format("January 2, 2006"))
	g.kvLine(doc, "Issued", data.IssuedAt.Format("January 2, 2006"))
	doc.Ln(2)
	g.hr(doc)

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, "Please remit payment by the due date above. Thank you.", "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render rent invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *DocumentGenerator) sectionTitle(doc *gofpdf.Fpdf, s string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
}

func (g *DocumentGenerator) kvLine(doc *gofpdf.Fpdf, key, val string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(doc *gofpdf.Fpdf) {
	y := doc.GetY() + 1.5
	doc.SetLineWidth(0.2)
	doc.Line(20, y, 190, y)
	doc.SetY(y + 2)
}
