package core_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"testing"

	"github.com/faa-hf/confsite/internal/core"
)

// ============================================================================
// Parsing Benchmarks
// ============================================================================

// BenchmarkParseReader benchmarks a typical papers.csv.
func BenchmarkParseReader(b *testing.B) {
	data := generatePapersCSV(100)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		core.ParseReader(bytes.NewReader(data))
	}
}

// BenchmarkParseReader_Large benchmarks a multi-year archive.
func BenchmarkParseReader_Large(b *testing.B) {
	data := generatePapersCSV(2000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		core.ParseReader(bytes.NewReader(data))
	}
}

// BenchmarkParseReader_BOM benchmarks input exported by Excel with a BOM.
func BenchmarkParseReader_BOM(b *testing.B) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, generatePapersCSV(500)...)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		core.ParseReader(bytes.NewReader(data))
	}
}

// ============================================================================
// Decoding Benchmarks
// ============================================================================

// BenchmarkUTF8DroppingReader compares clean ASCII against input with
// stray Latin-1 bytes.
func BenchmarkUTF8DroppingReader(b *testing.B) {
	clean := bytes.Repeat([]byte("Valid line with numbers 12345\n"), 300)
	dirty := bytes.Repeat([]byte("Caf\xe9 Na\xefve r\xe9sum\xe9\n"), 300)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"ascii", clean},
		{"invalid", dirty},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				io.Copy(io.Discard, core.NewUTF8DroppingReader(bytes.NewReader(tc.data)))
			}
		})
	}
}

// ============================================================================
// Classification Benchmarks
// ============================================================================

// BenchmarkClassify_Grouped benchmarks theme/track grouping.
func BenchmarkClassify_Grouped(b *testing.B) {
	rows, err := core.ParseReader(bytes.NewReader(generatePapersCSV(1000)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		core.Classify("Accepted Papers", rows, true)
	}
}

// BenchmarkClassificationFlags benchmarks the worst case: no flag set,
// so every row is inspected for every check.
func BenchmarkClassificationFlags(b *testing.B) {
	rows := make([]core.Row, 1000)
	for i := range rows {
		rows[i] = core.Row{"title": "Untitled", "authors": "Anonymous"}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		core.ClassificationFlags(rows)
	}
}

// BenchmarkLoadCollection benchmarks a full conference page.
func BenchmarkLoadCollection(b *testing.B) {
	papers := string(generatePapersCSV(300))
	atts := attachments(
		csvAttachment("papers.csv", papers),
		csvAttachment("tutorials.csv", "title,presenter\nIntro,A\nAdvanced,B\n"),
		csvAttachment("keynotes.csv", "title,speaker\nOpening,C\n"),
		csvAttachment("photos.zip", ""),
	)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := core.LoadCollection(atts, true); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseReaderParallel benchmarks concurrent page renders
// parsing the same attachment.
func BenchmarkParseReaderParallel(b *testing.B) {
	data := generatePapersCSV(100)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			core.ParseReader(bytes.NewReader(data))
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// generatePapersCSV generates a papers table spread over five tracks.
func generatePapersCSV(rows int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"title", "authors", "track", "paper", "presentation", "video", "best"})

	tracks := []string{"Safety", "Automation", "Training", "Maintenance", "Air Traffic"}
	for i := 0; i < rows; i++ {
		best := ""
		if i%50 == 0 {
			best = "yes"
		}
		w.Write([]string{
			fmt.Sprintf("Paper %d", i),
			"A. Author, B. Author",
			tracks[i%len(tracks)],
			fmt.Sprintf("papers/%d.pdf", i),
			"",
			"",
			best,
		})
	}
	w.Flush()

	return buf.Bytes()
}
