// Package records reads timeline records from CSV exports.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"timelinegrid/internal/config"
	"timelinegrid/timeline"
)

// timestampFormats are tried in order for date columns.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Reader turns CSV rows into records. Header names are matched
// case-insensitively against Columns.
type Reader struct {
	Columns  config.ColumnsSection
	Location *time.Location // Zone for timestamps without offset, defaults to time.Local
	Logger   *slog.Logger   // Defaults to slog.Default()
}

// ReadFile reads records from the CSV file at path.
func (r Reader) ReadFile(path string) ([]timeline.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return r.Read(file)
}

// Read parses CSV data with a header row.
//
// Rows are never rejected for bad dates: an unparseable creation date leaves
// CreatedAt zero so the layout reports the record as skipped, and an
// unparseable deadline is dropped. Both are logged as warnings. Rows without
// an id get a name-based UUID derived from their position and content.
func (r Reader) Read(in io.Reader) ([]timeline.Record, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV data is empty: header row required")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	index := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := columnMap[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	createdCol := index(r.Columns.CreatedAt)
	if createdCol < 0 {
		return nil, fmt.Errorf("created column '%s' not found in CSV. Available columns: %v", r.Columns.CreatedAt, header)
	}
	cols := rowColumns{
		id:       index(r.Columns.ID),
		created:  createdCol,
		deadline: index(r.Columns.Deadline),
		status:   index(r.Columns.Status),
		category: index(r.Columns.Category),
		sortHint: index(r.Columns.SortHint),
	}
	logger.Debug("CSV columns mapped", "header", header, "created", cols.created, "deadline", cols.deadline)

	var records []timeline.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if isBlank(row) {
			continue
		}
		line, _ := reader.FieldPos(0)

		rec := parseRow(row, line, cols, loc, logger)
		logger.Debug("parsed record", "line", line, "id", rec.ID, "status", rec.Status)
		records = append(records, rec)
	}

	return records, nil
}

// rowColumns holds header indexes, -1 for absent columns.
type rowColumns struct {
	id, created, deadline, status, category, sortHint int
}

// parseRow converts one CSV row, logging fields it cannot use.
func parseRow(row []string, line int, cols rowColumns, loc *time.Location, logger *slog.Logger) timeline.Record {
	rec := timeline.Record{
		ID:       field(row, cols.id),
		Status:   field(row, cols.status),
		Category: field(row, cols.category),
	}
	if rec.ID == "" {
		name := strconv.Itoa(line) + "\x1f" + strings.Join(row, "\x1f")
		rec.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
	}

	created := field(row, cols.created)
	if t, err := parseTimestamp(created, loc); err == nil {
		rec.CreatedAt = t
	} else {
		logger.Warn("unparseable creation date", "line", line, "id", rec.ID, "value", created)
	}

	if deadline := field(row, cols.deadline); deadline != "" {
		if t, err := parseTimestamp(deadline, loc); err == nil {
			rec.Deadline = &t
		} else {
			logger.Warn("unparseable deadline, treating as none", "line", line, "id", rec.ID, "value", deadline)
		}
	}

	if hint := field(row, cols.sortHint); hint != "" {
		if n, err := strconv.Atoi(hint); err == nil {
			rec.SortHint = n
		} else {
			logger.Warn("sort hint is not an integer", "line", line, "id", rec.ID, "value", hint)
		}
	}

	return rec
}

// parseTimestamp tries each supported layout in turn.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, format := range timestampFormats {
		if t, err := time.ParseInLocation(format, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp '%s'", s)
}

// field returns the trimmed value at i, or "" when the row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isBlank reports whether every cell of row is empty.
func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
