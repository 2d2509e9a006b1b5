// Package codec converts a study plan to and from its two interchange
// formats: pretty-printed JSON and a CSV dialect matching the original
// export layout (title quoted, all other columns bare).
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iamsernine/python-to-do-list/internal/models"
)

// CSVHeader is the literal first line of every CSV export.
const CSVHeader = "id,category,title,completed,videoUrl"

// MarshalJSON serializes the full collection, pretty-printed for export.
func MarshalJSON(items []models.StudyItem) (string, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	return string(data), nil
}

// UnmarshalJSON parses a JSON export. Malformed input is an error and the
// caller's collection is left untouched.
func UnmarshalJSON(text string) ([]models.StudyItem, error) {
	var items []models.StudyItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parse JSON plan: %w", err)
	}
	return items, nil
}

// MarshalCSV emits the header line plus one line per item. The title column
// is always quoted, with embedded quotes doubled; the remaining columns are
// written bare.
func MarshalCSV(items []models.StudyItem) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, item := range items {
		b.WriteByte('\n')
		b.WriteString(item.ID)
		b.WriteByte(',')
		b.WriteString(item.Category)
		b.WriteByte(',')
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(item.Title, `"`, `""`))
		b.WriteByte('"')
		b.WriteByte(',')
		if item.Completed {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		b.WriteByte(',')
		b.WriteString(item.VideoURL)
	}
	return b.String()
}

// UnmarshalCSV parses a CSV export. The header line is skipped, blank lines
// are ignored, and rows that do not yield at least five fields are dropped
// silently — CSV import is best-effort, not atomic.
func UnmarshalCSV(text string) []models.StudyItem {
	lines := strings.Split(text, "\n")
	var items []models.StudyItem

	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitOutsideQuotes(line)
		if len(fields) < 5 {
			continue
		}
		items = append(items, models.StudyItem{
			ID:        fields[0],
			Category:  fields[1],
			Title:     unquoteTitle(fields[2]),
			Completed: strings.EqualFold(fields[3], "true"),
			VideoURL:  strings.TrimRight(fields[4], "\r"),
		})
	}
	return items
}

// splitOutsideQuotes splits a line on commas that are not enclosed in double
// quotes. A field containing a comma must be quoted to survive the split.
func splitOutsideQuotes(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			field.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// unquoteTitle strips one surrounding quote from each end, if present, and
// collapses the doubled-quote escape.
func unquoteTitle(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}
