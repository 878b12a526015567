package ports

// RowWriterPort receives the Axelor CSV: the header once, then one record
// per converted row.
type RowWriterPort interface {
	WriteHeader(columns []string) error
	WriteRecord(record []string) error
	Close() error
}
