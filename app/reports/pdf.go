package reports

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"campusdesk/app/models"
)

const schoolName = "Campus Desk School"

// SendPDF streams a generated document, inline or as a download.
func SendPDF(c *fiber.Ctx, filename string, doc []byte, download bool) error {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	return c.Send(doc)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAuthor(schoolName, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, schoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(225, 6, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(10, pdf.GetY()+2, 200, pdf.GetY()+2)
	pdf.Ln(8)
	return pdf
}

func labelValue(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func finish(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportCard lays out every exam the student sat with per-subject scores, grades and
// an overall percentage.
func ReportCard(student *models.Student, results []models.ExamResult) ([]byte, error) {
	pdf := newDocument("Report Card")

	labelValue(pdf, "Student:", student.FullName())
	labelValue(pdf, "Roll No:", student.RollNo)
	labelValue(pdf, "Class:", orDash(student.ClassName.String))
	labelValue(pdf, "Department:", orDash(student.DepartmentName.String))
	pdf.Ln(4)

	if len(results) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 8, "No marks recorded yet.", "", 1, "L", false, 0, "")
		return finish(pdf)
	}

	var obtained, possible float64
	for _, r := range results {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s (%s)", r.Exam.Name, r.Exam.Date.Format("02 Jan 2006")), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(225, 6, 0)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(80, 8, "Subject", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Score", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Max", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "%", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "Grade", "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Arial", "", 10)
		for i, m := range r.Marks {
			fill := i%2 == 1
			pdf.SetFillColor(245, 245, 245)
			pdf.CellFormat(80, 7, m.SubjectName, "1", 0, "L", fill, 0, "")
			pdf.CellFormat(30, 7, trimFloat(m.ScoreObtained), "1", 0, "C", fill, 0, "")
			pdf.CellFormat(30, 7, trimFloat(m.MaxScore), "1", 0, "C", fill, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%.1f", m.Percentage()), "1", 0, "C", fill, 0, "")
			pdf.CellFormat(25, 7, m.Grade(), "1", 1, "C", fill, 0, "")
		}
		o, mx := r.Totals()
		obtained += o
		possible += mx
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(80, 7, "Total", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, trimFloat(o), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, trimFloat(mx), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f", r.Percentage()), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, r.Grade(), "1", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	overall := models.Percentage(obtained, possible)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall: %.2f%%  Grade: %s", overall, models.GradeFor(overall)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "R", false, 0, "")

	return finish(pdf)
}

// FeeReceipt is only produced for paid fees.
func FeeReceipt(fee *models.Fee) ([]byte, error) {
	if !fee.IsPaid() {
		return nil, fmt.Errorf("fee %d is not paid", fee.ID)
	}
	pdf := newDocument("Fee Receipt")

	labelValue(pdf, "Receipt No:", fmt.Sprintf("RCPT-%06d", fee.ID))
	labelValue(pdf, "Student:", fee.StudentName)
	labelValue(pdf, "Roll No:", fee.RollNo)
	labelValue(pdf, "Description:", fee.Title)
	labelValue(pdf, "Amount:", money(fee.Amount))
	labelValue(pdf, "Due Date:", date(fee.DueDate))
	labelValue(pdf, "Date:", nullDate(fee.PaidDate))
	labelValue(pdf, "Status:", string(fee.Status))

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "This receipt was generated electronically and needs no signature.", "", 1, "C", false, 0, "")
	return finish(pdf)
}

// IDCard renders a credit-card sized card with the student photo and a QR code of the
// card number.
func IDCard(card *models.IDCard, photoPath string) ([]byte, error) {
	png, err := qrcode.Encode(card.CardNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 54, Ht: 86},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFillColor(225, 6, 0)
	pdf.Rect(0, 0, 86, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(4, 2)
	pdf.CellFormat(78, 6, schoolName, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if usablePhoto(photoPath) {
		pdf.ImageOptions(photoPath, 4, 13, 20, 24, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	} else {
		pdf.Rect(4, 13, 20, 24, "D")
	}

	pdf.SetXY(27, 13)
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(35, 5, card.StudentName, "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(35, 4, "Roll No: "+card.RollNo, "", 2, "L", false, 0, "")
	pdf.CellFormat(35, 4, "Class: "+orDash(card.ClassName), "", 2, "L", false, 0, "")
	pdf.CellFormat(35, 4, "Issued: "+date(card.IssueDate), "", 2, "L", false, 0, "")
	pdf.CellFormat(35, 4, "Expires: "+date(card.ExpiryDate), "", 2, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 62, 13, 20, 20, false, opts, 0, "")

	pdf.SetXY(4, 44)
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(78, 5, card.CardNumber, "", 0, "C", false, 0, "")

	return finish(pdf)
}

func usablePhoto(path string) bool {
	if path == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
