package stickers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoJobs = errors.New("csv contains no sticker rows")

// MissingColumnError reports a required CSV column that is absent from the
// header row. It fails the run before any sticker is rendered.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("csv missing required column: %s", e.Column)
}

const (
	columnSerial = "Serial"
	columnURL    = "Url"
)

// ParseJobs reads (Serial, URL) pairs from a CSV stream. Header names are
// matched case-insensitively after trimming, so "serial", "SERIAL" and
// " Url " all resolve. Rows where either value is empty are skipped.
func ParseJobs(r io.Reader) ([]Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoJobs
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	serialIdx, urlIdx := -1, -1
	for i, name := range header {
		switch normalizeHeader(name) {
		case columnSerial:
			serialIdx = i
		case columnURL:
			urlIdx = i
		}
	}
	if serialIdx == -1 {
		return nil, &MissingColumnError{Column: columnSerial}
	}
	if urlIdx == -1 {
		return nil, &MissingColumnError{Column: "URL"}
	}

	var jobs []Job
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		if serialIdx >= len(record) || urlIdx >= len(record) {
			continue
		}

		serial := strings.TrimSpace(record[serialIdx])
		url := strings.TrimSpace(record[urlIdx])
		if serial == "" || url == "" {
			continue
		}

		jobs = append(jobs, Job{Serial: serial, URL: url})
	}

	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	return jobs, nil
}

// normalizeHeader mirrors the title-casing the original tool applied to
// column names: "serial" -> "Serial", "URL" -> "Url".
func normalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}
