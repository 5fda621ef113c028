package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// tanggal formats a YYYY-MM-DD date as "2 Januari 2025". Unparseable input is returned as is.
func tanggal(s string) string {
	t, ok := validator.IsValidDate(s)
	if !ok {
		return s
	}
	return strconv.Itoa(t.Day()) + " " + months[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

func tanggalWaktu(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return tanggal(t.Format(validator.DateLayout)) + " " + t.Format("15:04")
}

// rupiah formats an amount as "Rp 3.500.000".
func rupiah(d decimal.Decimal) string {
	digits := d.Round(0).Abs().StringFixed(0)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if d.Round(0).IsNegative() {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func leaveTypeName(code string) string {
	if t, ok := leave.FindLeaveType(code); ok {
		return t.Name
	}
	return code
}

func statusLabel(status string) string {
	return approval.Classify(status).Label
}

// timelineTable lists approval steps in sequence order.
func timelineTable(steps []approval.StepResponse) *document.Table {
	t := &document.Table{
		Title:   "Riwayat Persetujuan",
		Headers: []string{"Urutan", "Peran", "Penyetuju", "Status", "Tanggal", "Catatan"},
	}
	for _, step := range steps {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(step.Sequence),
			step.ApproverRole,
			optional(step.ApproverName),
			statusLabel(step.Status),
			tanggalWaktu(step.DecidedAt),
			optional(step.Note),
		})
	}
	return t
}

func leaveRequestDocument(r leave.LeaveRequestResponse) document.Document {
	return document.Document{
		Title: "Formulir Permohonan Cuti",
		Fields: []document.Field{
			{Label: "Nama", Value: r.EmployeeName},
			{Label: "NIP", Value: r.EmployeeNIP},
			{Label: "Jenis Cuti", Value: leaveTypeName(r.LeaveType)},
			{Label: "Tanggal Mulai", Value: tanggal(r.StartDate)},
			{Label: "Tanggal Selesai", Value: tanggal(r.EndDate)},
			{Label: "Lama Cuti", Value: strconv.Itoa(r.DayCount) + " hari"},
			{Label: "Alasan", Value: r.Reason},
			{Label: "Alamat Selama Cuti", Value: r.AddressDuringLeave},
			{Label: "Telepon Selama Cuti", Value: r.PhoneDuringLeave},
			{Label: "Status", Value: statusLabel(r.Status)},
		},
		Table:      timelineTable(r.Timeline),
		Signatures: []string{"Pemohon", "Atasan Langsung", "Pejabat Berwenang"},
	}
}

func leaveRequestListDocument(items []leave.LeaveRequestResponse) document.Document {
	t := &document.Table{
		Headers: []string{"No", "NIP", "Nama", "Jenis Cuti", "Mulai", "Selesai", "Hari", "Status"},
	}
	for i, r := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			r.EmployeeNIP,
			r.EmployeeName,
			leaveTypeName(r.LeaveType),
			r.StartDate,
			r.EndDate,
			strconv.Itoa(r.DayCount),
			statusLabel(r.Status),
		})
	}
	return document.Document{Title: "Daftar Permohonan Cuti", Table: t}
}

func studyPermitDocument(r studypermit.StudyPermitResponse) document.Document {
	return document.Document{
		Title: "Formulir Permohonan Izin Belajar",
		Fields: []document.Field{
			{Label: "Nama", Value: r.EmployeeName},
			{Label: "NIP", Value: r.EmployeeNIP},
			{Label: "Institusi", Value: r.Institution},
			{Label: "Program Studi", Value: r.Program},
			{Label: "Jenjang", Value: r.Degree},
			{Label: "Tanggal Mulai", Value: tanggal(r.StartDate)},
			{Label: "Tanggal Selesai", Value: tanggal(r.EndDate)},
			{Label: "Lama Studi", Value: strconv.Itoa(r.DurationMonths) + " bulan"},
			{Label: "Sumber Biaya", Value: r.FundingSource},
			{Label: "Alasan", Value: optional(r.Reason)},
			{Label: "Status", Value: statusLabel(r.Status)},
		},
		Table:      timelineTable(r.Timeline),
		Signatures: []string{"Pemohon", "Atasan Langsung", "Kepala Badan"},
	}
}

func studyPermitListDocument(items []studypermit.StudyPermitResponse) document.Document {
	t := &document.Table{
		Headers: []string{"No", "NIP", "Nama", "Institusi", "Jenjang", "Mulai", "Selesai", "Status"},
	}
	for i, r := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			r.EmployeeNIP,
			r.EmployeeName,
			r.Institution,
			r.Degree,
			r.StartDate,
			r.EndDate,
			statusLabel(r.Status),
		})
	}
	return document.Document{Title: "Daftar Izin Belajar", Table: t}
}

func salaryIncreaseDocument(r salary.SalaryIncreaseResponse) document.Document {
	return document.Document{
		Title: "Usulan Kenaikan Gaji Berkala",
		Fields: []document.Field{
			{Label: "Nama", Value: r.EmployeeName},
			{Label: "NIP", Value: r.EmployeeNIP},
			{Label: "Gaji Pokok Lama", Value: rupiah(r.OldBaseSalary)},
			{Label: "Gaji Pokok Baru", Value: rupiah(r.NewBaseSalary)},
			{Label: "Selisih", Value: rupiah(r.Difference)},
			{Label: "TMT Lama", Value: tanggal(r.OldEffectiveDate)},
			{Label: "TMT Baru", Value: tanggal(r.NewEffectiveDate)},
			{Label: "Keterangan", Value: optional(r.Note)},
			{Label: "Status", Value: statusLabel(r.Status)},
		},
		Table:      timelineTable(r.Timeline),
		Signatures: []string{"Kepala Bagian Kepegawaian", "Kepala Badan"},
	}
}

func salaryIncreaseListDocument(items []salary.SalaryIncreaseResponse) document.Document {
	t := &document.Table{
		Headers: []string{"No", "NIP", "Nama", "Gaji Lama", "Gaji Baru", "TMT Baru", "Status"},
	}
	for i, r := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			r.EmployeeNIP,
			r.EmployeeName,
			rupiah(r.OldBaseSalary),
			rupiah(r.NewBaseSalary),
			r.NewEffectiveDate,
			statusLabel(r.Status),
		})
	}
	return document.Document{Title: "Daftar Kenaikan Gaji Berkala", Table: t}
}

func pensionDocument(r pension.PensionResponse) document.Document {
	return document.Document{
		Title: "Formulir Usulan Pensiun",
		Fields: []document.Field{
			{Label: "Nama", Value: r.EmployeeName},
			{Label: "NIP", Value: r.EmployeeNIP},
			{Label: "Jenis Pensiun", Value: r.PensionType},
			{Label: "Tanggal Pengajuan", Value: tanggal(r.FilingDate)},
			{Label: "TMT Pensiun", Value: tanggal(r.EffectiveDate)},
			{Label: "Alasan", Value: r.Reason},
			{Label: "Status", Value: statusLabel(r.Status)},
		},
		Table:      timelineTable(r.Timeline),
		Signatures: []string{"Pemohon", "Kepala Bagian Kepegawaian", "Kepala Badan"},
	}
}

func pensionListDocument(items []pension.PensionResponse) document.Document {
	t := &document.Table{
		Headers: []string{"No", "NIP", "Nama", "Jenis Pensiun", "Tanggal Pengajuan", "TMT Pensiun", "Status"},
	}
	for i, r := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			r.EmployeeNIP,
			r.EmployeeName,
			r.PensionType,
			r.FilingDate,
			r.EffectiveDate,
			statusLabel(r.Status),
		})
	}
	return document.Document{Title: "Daftar Usulan Pensiun", Table: t}
}
