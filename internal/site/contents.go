package site

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ContentsFile is the per-page field file.
const ContentsFile = "contents.lr"

// ParseContents reads "key: value" blocks separated by "---" lines.
//
// A value continues over following lines until the next separator; a
// literal "---" inside a value is written as "----". Multi-line values
// are trimmed of surrounding blank lines.
func ParseContents(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var key string
	var lines []string
	flush := func() {
		if key != "" {
			fields[key] = strings.TrimSpace(strings.Join(lines, "\n"))
		}
		key, lines = "", nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "----") && strings.Trim(line, "-") == "" {
			line = line[1:]
		}

		if key == "" {
			if strings.TrimSpace(line) == "" {
				continue
			}
			name, value, ok := strings.Cut(line, ":")
			if !ok || strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%s line %d: expected \"field: value\"", ContentsFile, lineNo)
			}
			key = strings.TrimSpace(name)
			lines = []string{strings.TrimSpace(value)}
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ContentsFile, err)
	}
	flush()

	return fields, nil
}

// truthy interprets boolean field values the way content editors write them.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true
	}
	return false
}
