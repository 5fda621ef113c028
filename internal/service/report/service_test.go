package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type stubLeave struct {
	leave.LeaveService
	item   leave.LeaveRequestResponse
	items  []leave.LeaveRequestResponse
	getErr error
	filter leave.LeaveRequestFilter
}

func (s *stubLeave) GetLeaveRequest(_ context.Context, _ approval.Actor, _ string) (leave.LeaveRequestResponse, error) {
	return s.item, s.getErr
}

func (s *stubLeave) ExportLeaveRequests(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	s.filter = filter
	return s.items, nil
}

func sampleLeave() leave.LeaveRequestResponse {
	decided := time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
	name := "Andi Wijaya"
	return leave.LeaveRequestResponse{
		ID:           "lr-1",
		EmployeeName: "Budi Santoso",
		EmployeeNIP:  "198503302010011001",
		LeaveType:    leave.CodeAnnual,
		StartDate:    "2025-03-10",
		EndDate:      "2025-03-12",
		DayCount:     3,
		Reason:       "Keperluan keluarga",
		Status:       "DIAJUKAN",
		Timeline: []approval.StepResponse{
			{Sequence: 1, ApproverRole: "atasan", ApproverName: &name, Status: "DISETUJUI", DecidedAt: &decided},
			{Sequence: 2, ApproverRole: "pimpinan", Status: "DIAJUKAN"},
		},
	}
}

func newService(leaveStub *stubLeave) *ReportServiceImpl {
	svc := NewReportService(leaveStub, nil, nil, nil, "Badan Kepegawaian Daerah").(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestLeaveRequestDocumentFields(t *testing.T) {
	doc := leaveRequestDocument(sampleLeave())

	assert.Equal(t, "Formulir Permohonan Cuti", doc.Title)
	assert.Contains(t, doc.Fields, document.Field{Label: "Jenis Cuti", Value: "Cuti Tahunan"})
	assert.Contains(t, doc.Fields, document.Field{Label: "Tanggal Mulai", Value: "10 Maret 2025"})
	assert.Contains(t, doc.Fields, document.Field{Label: "Lama Cuti", Value: "3 hari"})
	assert.Contains(t, doc.Fields, document.Field{Label: "Status", Value: "Diajukan"})

	require.NotNil(t, doc.Table)
	require.Len(t, doc.Table.Rows, 2)
	assert.Equal(t, []string{"1", "atasan", "Andi Wijaya", "Disetujui", "3 Maret 2025 09:30", "-"}, doc.Table.Rows[0])
	assert.Equal(t, "-", doc.Table.Rows[1][2])
}

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 3.500.000", rupiah(decimal.RequireFromString("3500000")))
	assert.Equal(t, "Rp 950", rupiah(decimal.RequireFromString("950")))
	assert.Equal(t, "Rp 1.000", rupiah(decimal.RequireFromString("999.6")))
	assert.Equal(t, "-Rp 125.000", rupiah(decimal.RequireFromString("-125000")))
}

func TestTanggalKeepsUnparseableInput(t *testing.T) {
	assert.Equal(t, "1 Desember 2024", tanggal("2024-12-01"))
	assert.Equal(t, "bukan tanggal", tanggal("bukan tanggal"))
}

func TestOtherBuilders(t *testing.T) {
	note := "KGB periode 2025"
	sal := salaryIncreaseDocument(salary.SalaryIncreaseResponse{
		EmployeeName:     "Budi Santoso",
		OldBaseSalary:    decimal.RequireFromString("3500000"),
		NewBaseSalary:    decimal.RequireFromString("3650000"),
		Difference:       decimal.RequireFromString("150000"),
		OldEffectiveDate: "2023-04-01",
		NewEffectiveDate: "2025-04-01",
		Note:             &note,
		Status:           "DISETUJUI",
	})
	assert.Contains(t, sal.Fields, document.Field{Label: "Selisih", Value: "Rp 150.000"})
	assert.Contains(t, sal.Fields, document.Field{Label: "TMT Baru", Value: "1 April 2025"})
	assert.Contains(t, sal.Fields, document.Field{Label: "Keterangan", Value: note})

	sp := studyPermitDocument(studypermit.StudyPermitResponse{Institution: "Universitas Gadjah Mada", DurationMonths: 24, Status: "DIREVISI"})
	assert.Contains(t, sp.Fields, document.Field{Label: "Lama Studi", Value: "24 bulan"})
	assert.Contains(t, sp.Fields, document.Field{Label: "Alasan", Value: "-"})
	assert.Contains(t, sp.Fields, document.Field{Label: "Status", Value: "Direvisi"})

	pen := pensionListDocument([]pension.PensionResponse{
		{EmployeeNIP: "1", EmployeeName: "A", PensionType: "BUP", Status: "SELESAI"},
		{EmployeeNIP: "2", EmployeeName: "B", PensionType: "APS", Status: "status-aneh"},
	})
	require.Len(t, pen.Table.Rows, 2)
	assert.Equal(t, "Selesai", pen.Table.Rows[0][6])
	assert.Equal(t, "Tidak Diketahui", pen.Table.Rows[1][6])
}

func TestLeaveRequestRendersXLSX(t *testing.T) {
	svc := newService(&stubLeave{item: sampleLeave()})

	file, err := svc.LeaveRequest(context.Background(), approval.Actor{ViewAll: true}, "lr-1", document.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, document.FormatXLSX.ContentType(), file.ContentType)
	assert.Contains(t, file.Name, "formulir-permohonan-cuti-")

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	var text []string
	for _, row := range rows {
		text = append(text, row...)
	}
	assert.Contains(t, text, "Formulir Permohonan Cuti")
	assert.Contains(t, text, "Badan Kepegawaian Daerah")
	assert.Contains(t, text, "Budi Santoso")
}

func TestLeaveRequestPropagatesVisibilityError(t *testing.T) {
	svc := newService(&stubLeave{getErr: leave.ErrNotOwner})

	_, err := svc.LeaveRequest(context.Background(), approval.Actor{}, "lr-1", document.FormatPDF)
	assert.ErrorIs(t, err, leave.ErrNotOwner)
}

func TestLeaveRequestsRendersPDF(t *testing.T) {
	stub := &stubLeave{items: []leave.LeaveRequestResponse{sampleLeave(), sampleLeave()}}
	svc := newService(stub)
	status := "DIAJUKAN"

	file, err := svc.LeaveRequests(context.Background(), leave.LeaveRequestFilter{Status: &status}, document.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
	require.NotNil(t, stub.filter.Status)
	assert.Equal(t, "DIAJUKAN", *stub.filter.Status)
}
