package adapters

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"invconv/internal/ports"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// CSVOutputAdapter writes the Axelor import CSV to a file or stdout.
type CSVOutputAdapter struct {
	writer *csv.Writer
	closer io.Closer
}

func NewCSVOutputAdapter(path string) (*CSVOutputAdapter, error) {
	if path == "" || path == StdoutPath {
		return NewCSVWriterAdapter(os.Stdout), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output file").
			WithCause(err)
	}
	return &CSVOutputAdapter{writer: newExcelWriter(f), closer: f}, nil
}

// NewCSVWriterAdapter writes to w and leaves closing it to the caller.
func NewCSVWriterAdapter(w io.Writer) *CSVOutputAdapter {
	return &CSVOutputAdapter{writer: newExcelWriter(w)}
}

// newExcelWriter uses the spreadsheet dialect: comma separated, CRLF
// terminated.
func newExcelWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	return writer
}

func (a *CSVOutputAdapter) WriteHeader(columns []string) error {
	return a.WriteRecord(columns)
}

func (a *CSVOutputAdapter) WriteRecord(record []string) error {
	if err := a.writer.Write(record); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write csv record").
			WithCause(err)
	}
	return nil
}

func (a *CSVOutputAdapter) Close() error {
	a.writer.Flush()
	if err := a.writer.Error(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to flush csv output").
			WithCause(err)
	}
	if a.closer == nil {
		return nil
	}
	if err := a.closer.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close output file").
			WithCause(err)
	}
	return nil
}

var _ ports.RowWriterPort = (*CSVOutputAdapter)(nil)
