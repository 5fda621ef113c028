package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts pdf or xlsx (any case). Empty input defaults to pdf.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

type Field struct {
	Label string
	Value string
}

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Document is a format-neutral description of an exported form or list.
type Document struct {
	Title       string
	Subtitle    string
	Fields      []Field
	Table       *Table
	Signatures  []string
	GeneratedAt time.Time
}

type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// File is a rendered document ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// FileName builds a unique download name from the document title.
func FileName(title string, format Format) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "dokumen"
	}
	return fmt.Sprintf("%s-%s.%s", slug, uuid.New().String()[:8], format)
}

// Render renders doc into an in-memory file of the requested format.
func Render(format Format, doc Document) (File, error) {
	var r Renderer
	switch format {
	case FormatPDF:
		r = PDFRenderer{}
	case FormatXLSX:
		r = XLSXRenderer{}
	default:
		return File{}, ErrUnsupportedFormat
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return File{}, fmt.Errorf("render %s: %w", format, err)
	}
	return File{
		Name:        FileName(doc.Title, format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
