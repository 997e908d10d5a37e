package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/faa-hf/confsite/internal/core"
	"github.com/google/go-cmp/cmp"
)

func TestParseReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []core.Row
	}{
		{
			name:  "header and rows",
			input: "title,paper\nA,a.pdf\nB,b.pdf\n",
			want: []core.Row{
				{"title": "A", "paper": "a.pdf"},
				{"title": "B", "paper": "b.pdf"},
			},
		},
		{
			name:  "header only",
			input: "title,paper\n",
			want:  []core.Row{},
		},
		{
			name:  "empty input",
			input: "",
			want:  []core.Row{},
		},
		{
			name:  "short row leaves fields absent",
			input: "title,paper,video\nA,a.pdf\n",
			want:  []core.Row{{"title": "A", "paper": "a.pdf"}},
		},
		{
			name:  "long row drops extra fields",
			input: "title\nA,extra,more\n",
			want:  []core.Row{{"title": "A"}},
		},
		{
			name:  "quoted commas and newlines",
			input: "title,authors\n\"Hello, world\",\"Smith\nJones\"\n",
			want:  []core.Row{{"title": "Hello, world", "authors": "Smith\nJones"}},
		},
		{
			name:  "BOM stripped from first header",
			input: "\xEF\xBB\xBFtitle,year\nA,2023\n",
			want:  []core.Row{{"title": "A", "year": "2023"}},
		},
		{
			name:  "invalid UTF-8 dropped",
			input: "title\nCaf\xE9 talk\n",
			want:  []core.Row{{"title": "Caf talk"}},
		},
		{
			name:  "CRLF line endings",
			input: "title,year\r\nA,2023\r\n",
			want:  []core.Row{{"title": "A", "year": "2023"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseReader() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RowCountMatchesDataLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,title,theme\n")
	for i := 0; i < 150; i++ {
		b.WriteString("1,Talk,AI\n")
	}

	rows, err := core.Parse(csvAttachment("2023-papers.csv", b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rows) != 150 {
		t.Errorf("len(rows) = %d, want %d", len(rows), 150)
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Fatalf("row %d has %d fields, want 3", i, len(row))
		}
	}
}

func TestParse_ClosesHandle(t *testing.T) {
	att := csvAttachment("papers.csv", "title\nA\n")
	if _, err := core.Parse(att); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !*att.closed {
		t.Error("Parse() did not close the source")
	}
}

func TestParse_MissingSource(t *testing.T) {
	rows, err := core.Parse(missingAttachment("gone-papers.csv"))
	if err == nil {
		t.Fatal("Parse() expected error for missing source")
	}
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Errorf("Parse() error = %v, want ErrSourceUnavailable", err)
	}
	if !strings.Contains(err.Error(), "gone-papers.csv") {
		t.Errorf("Parse() error %q does not name the source", err)
	}
	if rows != nil {
		t.Errorf("Parse() rows = %v, want nil", rows)
	}
}

func TestParse_ReadFailureClosesAndReturnsNothing(t *testing.T) {
	att := &failingAttachment{name: "papers.csv"}
	rows, err := core.Parse(att)
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("Parse() error = %v, want ErrSourceUnavailable", err)
	}
	if rows != nil {
		t.Errorf("Parse() rows = %v, want nil", rows)
	}
	if !att.closed {
		t.Error("Parse() did not close the source after a read failure")
	}
}
