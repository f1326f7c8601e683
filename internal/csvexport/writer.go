package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"partflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for the file-tracking export.
var columns = []string{
	"Filename",
	"Status",
	"File Type",
	"Size (bytes)",
	"MD5",
	"Part Number",
	"Mapping Method",
	"Confidence",
	"Needs Review",
	"Archive Location",
	"Discovered At",
	"Updated At",
}

// Writer wraps csv.Writer for exporting tracked files as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteFiles converts a batch of tracked files to CSV rows and writes them.
func (w *Writer) WriteFiles(files []domain.ImageFile) error {
	for i := range files {
		if err := w.csv.Write(fileToRow(&files[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func fileToRow(f *domain.ImageFile) []string {
	row := make([]string, len(columns))
	row[0] = f.Filename
	row[1] = string(f.Status)
	row[2] = string(f.FileType)
	row[3] = strconv.FormatInt(f.SizeBytes, 10)
	row[4] = f.ChecksumMD5
	row[5] = f.PartNumber
	row[6] = string(f.MappingMethod)
	row[7] = strconv.FormatFloat(f.MappingConfidence, 'f', 2, 64)
	row[8] = formatBool(f.RequiresReview)
	row[9] = f.ArchiveLocation
	row[10] = f.DiscoveredAt.Format(time.RFC3339)
	row[11] = f.UpdatedAt.Format(time.RFC3339)
	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// BuildFilename returns the filename used in the Content-Disposition header.
// Format: files_{YYYY-MM-DD}.csv
func BuildFilename() string {
	return fmt.Sprintf("files_%s.csv", time.Now().Format("2006-01-02"))
}
