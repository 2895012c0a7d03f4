// Package report renders pelada rankings as PDF documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/mateus/app-pelada/models"
)

const ContentType = "application/pdf"

var ErrNilReport = errors.New("report: nil ranking report")

type column struct {
	title string
	width float64
	align string
}

var rankingColumns = []column{
	{title: "Pos", width: 20, align: "C"},
	{title: "Nome", width: 100, align: "L"},
	{title: "Gols", width: 30, align: "C"},
	{title: "Assist.", width: 30, align: "C"},
}

const rowHeight = 8

// PDFRenderer draws the ranking table on an A4 page.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(rep *models.RankingReport) ([]byte, error) {
	if rep == nil || rep.Pelada == nil {
		return nil, ErrNilReport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; names like "João" need the translation.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(Title(rep.Pelada.Name), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, tr(Title(rep.Pelada.Name)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(220, 220, 220)
	for _, c := range rankingColumns {
		pdf.CellFormat(c.width, rowHeight, tr(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 12)
	for _, row := range Rows(rep.Entries) {
		for j, c := range rankingColumns {
			pdf.CellFormat(c.width, rowHeight, tr(row[j]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rep.Entries) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, rowHeight, tr("Nenhuma partida registrada."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ranking pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func Title(peladaName string) string {
	return "Ranking da Pelada: " + peladaName
}

// Rows formats entries as table cells, one position per entry in the given order.
func Rows(entries []models.RankingEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.TotalGoals),
			strconv.Itoa(e.TotalAssists),
		})
	}
	return rows
}

// FileName is the download name of the ranking PDF of a pelada.
func FileName(peladaID int) string {
	return fmt.Sprintf("ranking_%d.pdf", peladaID)
}
