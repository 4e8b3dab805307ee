package period

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	perioderrors "github.com/itayalasas/hcm-pro-sub001/internal/period/errors"
)

// Payslip renders one employee's computed detail as a single-page PDF.
// Only available once the period has been calculated.
func (s *service) Payslip(ctx context.Context, companyID, periodID, employeeID string) ([]byte, error) {
	p, err := s.find(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusDraft {
		return nil, perioderrors.ErrNotCalculated
	}

	detail, err := s.repo.FindDetailByEmployee(ctx, companyID, periodID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perioderrors.ErrDetailNotFound
		}
		return nil, err
	}

	var snap employee.Snapshot
	snaps, err := s.employees.ListSnapshotsByIDs(ctx, companyID, []string{employeeID})
	if err != nil {
		return nil, err
	}
	if len(snaps) > 0 {
		snap = snaps[0]
	}

	return buildPayslipPDF(payslipLines(p, detail, snap)), nil
}

func payslipLines(p *Period, d *PeriodDetail, snap employee.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Payslip - %s", p.Name),
		fmt.Sprintf("Period: %s to %s (paid %s)",
			p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout), p.PaymentDate.Format(dateLayout)),
		fmt.Sprintf("Employee: %s", snap.FullName),
		fmt.Sprintf("Base salary: %s", d.BaseSalary.StringFixed(2)),
		fmt.Sprintf("Worked: %d days / %d hours", d.WorkedDays, d.WorkedHours),
		"",
	}
	for _, line := range d.Concepts {
		lines = append(lines, fmt.Sprintf("%-12s %s  %s",
			line.Category, line.ConceptName, line.TotalAmount.StringFixed(2)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total perceptions:   %s", d.TotalPerceptions.StringFixed(2)),
		fmt.Sprintf("Total deductions:    %s", d.TotalDeductions.StringFixed(2)),
		fmt.Sprintf("Total contributions: %s", d.TotalContributions.StringFixed(2)),
		fmt.Sprintf("Net salary:          %s", d.NetSalary.StringFixed(2)),
	)
	return lines
}

// buildPayslipPDF emits a minimal single-page PDF by hand. Good enough for a
// text payslip without pulling in a rendering library.
func buildPayslipPDF(lines []string) []byte {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes()
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
