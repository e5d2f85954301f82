// Package receipt renders half-letter delivery receipts as PDF files.
//
// Receipts are filed under {base}/{route}/{YYYY-MM-DD}/ so a day's
// printing for one route sits in a single folder.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/JDODER260/pickupform/internal/delivery"
)

const (
	pageWidth  = 5.5
	pageHeight = 8.5
	margin     = 0.25

	businessName = "DOUBLE R SHARPENING"
	contactLine  = "Phone: 814-333-1181 | Email: office@doublersharpening.com"
	websiteLine  = "Website: https://doublersharpening.com"
)

// Receipt is one printable delivery receipt.
type Receipt struct {
	Company  string
	Route    string
	DriverID string
	Items    []delivery.Item
	Now      time.Time
}

// Path returns where the receipt will be written under base.
func (r Receipt) Path(base string) string {
	day := r.Now.Format("2006-01-02")
	stamp := r.Now.Format("20060102_150405")
	name := fmt.Sprintf("receipt_%s_%s.pdf", SafeName(r.Company), stamp)
	return filepath.Join(base, r.Route, day, name)
}

// Generate renders the receipt and writes it under base, creating the
// route and date folders as needed. Returns the written path.
func Generate(base string, r Receipt) (string, error) {
	if r.Now.IsZero() {
		r.Now = time.Now()
	}
	path := r.Path(base)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create receipt folder: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	writeHeader(pdf)
	writeInfoTable(pdf, r)
	writeItemTable(pdf, r.Items)
	writeSignature(pdf)
	writeFooter(pdf, r)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

func writeHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 0.25, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 0.13, contactLine, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 0.13, websiteLine, "", 1, "C", false, 0, "")
	pdf.Ln(0.1)
}

func writeInfoTable(pdf *fpdf.Fpdf, r Receipt) {
	today := r.Now.Format("2006-01-02")
	pickup := today
	if len(r.Items) > 0 && r.Items[0].PickupDate != "" {
		pickup = truncate(r.Items[0].PickupDate, 10)
	}

	labelW, valueW := 0.8, 1.7
	rowH := 0.2
	pdf.SetFont("Helvetica", "", 8)

	row := func(l1, v1, l2, v2 string) {
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(labelW, rowH, l1, "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, rowH, v1, "1", 0, "L", false, 0, "")
		pdf.CellFormat(labelW, rowH, l2, "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, rowH, v2, "1", 1, "L", false, 0, "")
	}
	row("Company:", truncate(r.Company, 20), "Pickup:", pickup)
	row("Delivery:", today, "Custom:", "_________________")
	pdf.Ln(0.14)
}

type itemColumn struct {
	header string
	width  float64
	value  func(delivery.Item) string
}

var itemColumns = []itemColumn{
	{"Qty Rec", 0.4, func(i delivery.Item) string { return delivery.Count(i.BladeDetails.ReceivedQty) }},
	{"Qty Ship", 0.4, func(i delivery.Item) string { return delivery.Count(i.BladeDetails.ShippedQty) }},
	{"Back Order", 0.6, func(i delivery.Item) string { return delivery.Count(i.BladeDetails.BackOrder) }},
	{"Description", 1.8, func(i delivery.Item) string { return truncate(i.Description, 30) }},
	{"Hammer", 0.4, func(i delivery.Item) string { return truncate(delivery.Count(i.BladeDetails.Hammer), 3) }},
	{"Re-tip", 0.4, func(i delivery.Item) string { return truncate(delivery.Count(i.BladeDetails.ReTipped), 3) }},
	{"New Tip", 0.4, func(i delivery.Item) string { return truncate(delivery.Count(i.BladeDetails.NewTipNo), 3) }},
	{"No Service", 0.5, func(i delivery.Item) string { return truncate(delivery.Count(i.BladeDetails.NoService), 3) }},
}

func writeItemTable(pdf *fpdf.Fpdf, items []delivery.Item) {
	rowH := 0.18

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, rowH, col.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(rowH)

	pdf.SetTextColor(0, 0, 0)
	for _, item := range items {
		for i, col := range itemColumns {
			align := "C"
			size := 8.0
			if col.header == "Description" {
				align = "L"
				size = 6
			}
			pdf.SetFont("Helvetica", "", size)
			last := 0
			if i == len(itemColumns)-1 {
				last = 1
			}
			pdf.CellFormat(col.width, rowH, col.value(item), "1", last, align, false, 0, "")
		}
	}
	pdf.Ln(0.2)
}

func writeSignature(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 0.2, "Delivery Signature: _________________________", "", 1, "L", false, 0, "")
	pdf.Ln(0.15)
}

func writeFooter(pdf *fpdf.Fpdf, r Receipt) {
	pdf.SetFont("Helvetica", "I", 7)
	footer := fmt.Sprintf("Generated: %s | Route: %s | Driver: %s",
		r.Now.Format("2006-01-02"), r.Route, r.DriverID)
	pdf.CellFormat(0, 0.13, footer, "", 1, "C", false, 0, "")
}

// SafeName strips a company name down to characters safe in a
// filename: letters, digits, spaces, hyphens, and underscores.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
