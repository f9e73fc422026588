package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	dbmodels "mock-interview-backend/models/db"
)

// GenerateResume собирает pdf-версию резюме.
// Шрифты с кириллицей ожидаются в static/font/.
func GenerateResume(rec dbmodels.Resume) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateResume panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.AddUTF8Font("Arial", "I", "Arial Italic.ttf")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, rec.Personal.FullName, "", "L", false)

	pdf.SetFont("Arial", "", 11)
	contact := rec.Personal.City
	if rec.Personal.Email != "" {
		contact = appendPart(contact, rec.Personal.Email)
	}
	if rec.Personal.Phone != "" {
		contact = appendPart(contact, rec.Personal.Phone)
	}
	if contact != "" {
		pdf.MultiCell(0, 6, contact, "", "L", false)
	}
	if rec.Title != "" {
		pdf.SetFont("Arial", "I", 12)
		pdf.MultiCell(0, 6, rec.Title, "", "L", false)
	}
	if rec.Personal.Summary != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, rec.Personal.Summary, "", "L", false)
	}

	if len(rec.Experience) > 0 {
		writeSectionTitle(pdf, "Опыт работы")
		for _, item := range rec.Experience {
			period := item.DateFrom
			if item.DateTo != "" {
				period = fmt.Sprintf("%s - %s", item.DateFrom, item.DateTo)
			} else if item.DateFrom != "" {
				period = fmt.Sprintf("%s - по настоящее время", item.DateFrom)
			}
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 6, fmt.Sprintf("%s, %s", item.Position, item.Company), "", "L", false)
			if period != "" {
				pdf.SetFont("Arial", "I", 10)
				pdf.MultiCell(0, 5, period, "", "L", false)
			}
			if item.Description != "" {
				pdf.SetFont("Arial", "", 11)
				pdf.MultiCell(0, 6, item.Description, "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if len(rec.Education) > 0 {
		writeSectionTitle(pdf, "Образование")
		for _, item := range rec.Education {
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 6, item.Institution, "", "L", false)
			pdf.SetFont("Arial", "", 11)
			line := item.Degree
			if item.YearFrom > 0 || item.YearTo > 0 {
				line = appendPart(line, fmt.Sprintf("%d - %d", item.YearFrom, item.YearTo))
			}
			if line != "" {
				pdf.MultiCell(0, 6, line, "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if len(rec.Skills) > 0 {
		writeSectionTitle(pdf, "Навыки")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, joinParts(rec.Skills), "", "L", false)
	}

	if len(rec.Languages) > 0 {
		writeSectionTitle(pdf, "Языки")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, joinParts(rec.Languages), "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 7, title, "", "L", false)
	pdf.Ln(1)
}

func appendPart(base, part string) string {
	if base == "" {
		return part
	}
	return base + " | " + part
}

func joinParts(values []string) string {
	result := ""
	for idx, value := range values {
		if idx > 0 {
			result += ", "
		}
		result += value
	}
	return result
}
