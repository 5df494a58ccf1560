package stickers

import (
	"errors"
	"strings"
	"testing"
)

func TestParseJobs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Job
		wantErr bool
	}{
		{
			name:  "Basic Rows",
			input: "Serial,URL\nHX-001,https://example.com/a\nHX-002,https://example.com/b\n",
			want: []Job{
				{Serial: "HX-001", URL: "https://example.com/a"},
				{Serial: "HX-002", URL: "https://example.com/b"},
			},
		},
		{
			name:  "Case Insensitive Headers",
			input: "serial,url\nHX-001,https://example.com\n",
			want:  []Job{{Serial: "HX-001", URL: "https://example.com"}},
		},
		{
			name:  "Padded Headers",
			input: " Serial , URL \nHX-001,https://example.com\n",
			want:  []Job{{Serial: "HX-001", URL: "https://example.com"}},
		},
		{
			name:  "Extra Columns",
			input: "Batch,Serial,Notes,URL\n7,HX-001,first,https://example.com\n",
			want:  []Job{{Serial: "HX-001", URL: "https://example.com"}},
		},
		{
			name: "Skips Empty Values",
			input: "Serial,URL\n" +
				",https://example.com\n" +
				"HX-002,\n" +
				"HX-003,https://example.com/c\n",
			want: []Job{{Serial: "HX-003", URL: "https://example.com/c"}},
		},
		{
			name:  "Trims Values",
			input: "Serial,URL\n  HX-001  , https://example.com \n",
			want:  []Job{{Serial: "HX-001", URL: "https://example.com"}},
		},
		{
			name:    "Only Header",
			input:   "Serial,URL\n",
			wantErr: true,
		},
		{
			name:    "Empty Input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJobs(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJobs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseJobs() returned %d jobs, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("job %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseJobsMissingColumns(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantColumn string
	}{
		{
			name:       "Missing Serial",
			input:      "Name,URL\nfoo,https://example.com\n",
			wantColumn: "Serial",
		},
		{
			name:       "Missing URL",
			input:      "Serial,Link\nHX-001,https://example.com\n",
			wantColumn: "URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJobs(strings.NewReader(tt.input))

			var missingErr *MissingColumnError
			if !errors.As(err, &missingErr) {
				t.Fatalf("ParseJobs() error = %v, want MissingColumnError", err)
			}
			if missingErr.Column != tt.wantColumn {
				t.Errorf("missing column = %q, want %q", missingErr.Column, tt.wantColumn)
			}
		})
	}
}

func TestParseJobsNoJobsSentinel(t *testing.T) {
	_, err := ParseJobs(strings.NewReader("Serial,URL\n,\n"))
	if !errors.Is(err, ErrNoJobs) {
		t.Errorf("ParseJobs() error = %v, want ErrNoJobs", err)
	}
}
