package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrSourceUnavailable is returned when an attachment cannot be opened or read.
var ErrSourceUnavailable = errors.New("source unavailable")

// Parse reads one attachment into rows keyed by its header line.
// The handle is closed on every path; on failure no rows are returned.
func Parse(att Attachment) ([]Row, error) {
	f, err := att.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, att.Filename(), err)
	}
	defer f.Close()

	rows, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, att.Filename(), err)
	}

	slog.Debug("parsed csv", "source", att.Filename(), "rows", len(rows))
	return rows, nil
}

// ParseReader decodes CSV data with a header row.
//
// Short lines leave their missing fields absent and long lines lose the
// fields that have no header; neither is an error. An empty input yields
// no rows.
func ParseReader(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(WrapForDecoding(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	rows := []Row{}
	short, long := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		switch {
		case len(record) < len(header):
			short++
		case len(record) > len(header):
			long++
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i >= len(record) {
				break
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	if short > 0 || long > 0 {
		slog.Debug("ragged csv rows recovered",
			"short_rows", short,
			"long_rows", long,
			"columns", len(header),
		)
	}

	return rows, nil
}
