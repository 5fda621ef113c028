package document

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() Document {
	return Document{
		Title:    "Surat Permohonan Cuti",
		Subtitle: "Badan Kepegawaian Daerah",
		Fields: []Field{
			{Label: "Nama", Value: "Budi Santoso"},
			{Label: "Jenis Cuti", Value: "Cuti Tahunan"},
			{Label: "Lama Cuti", Value: "3 hari"},
		},
		Table: &Table{
			Title:   "Riwayat Persetujuan",
			Headers: []string{"Urutan", "Peran", "Status"},
			Rows: [][]string{
				{"1", "atasan", "DISETUJUI"},
				{"2", "pimpinan", "DIAJUKAN"},
			},
		},
		Signatures:  []string{"Pemohon", "Atasan Langsung"},
		GeneratedAt: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderPDF(t *testing.T) {
	file, err := Render(FormatPDF, sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Name, "surat-permohonan-cuti-"))
	assert.True(t, strings.HasSuffix(file.Name, ".pdf"))
}

func TestRenderXLSXPlacesFieldsAndTable(t *testing.T) {
	file, err := Render(FormatXLSX, sampleDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Surat Permohonan Cuti", title)

	// title, subtitle, blank, then fields starting on row 4
	label, _ := f.GetCellValue(sheetName, "A4")
	value, _ := f.GetCellValue(sheetName, "B4")
	assert.Equal(t, "Nama", label)
	assert.Equal(t, "Budi Santoso", value)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) >= 3 && r[1] == "pimpinan" && r[2] == "DIAJUKAN" {
			found = true
		}
	}
	assert.True(t, found, "timeline row not found")
}

func TestFileNameFallsBackForEmptyTitle(t *testing.T) {
	name := FileName("  ", FormatXLSX)
	assert.True(t, strings.HasPrefix(name, "dokumen-"))
}
