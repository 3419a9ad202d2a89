package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"metawipe/internal/classify"
	"metawipe/internal/clean"
)

var titleCaser = cases.Title(language.English)

// ColumnAlignment selects per-column alignment for RenderTable.
type ColumnAlignment int

const (
	AlignLeft ColumnAlignment = iota
	AlignRight
)

// RenderTable renders a rounded-style table. Shared by the run summary and
// the status/history commands.
func RenderTable(headers []string, rows [][]string, aligns []ColumnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// ScanSummary is the one-line result of the scanning phase.
func ScanSummary(count int, totalBytes int64) string {
	noun := "files"
	if count == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Found %d %s (%s)", count, noun, humanize.Bytes(uint64(totalBytes)))
}

// Summary renders the end-of-run statistics as tables.
func (s *Stats) Summary() string {
	var b strings.Builder

	overview := [][]string{
		{"Total files", strconv.Itoa(s.Total)},
		{"Cleaned", strconv.Itoa(s.Cleaned)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Skipped", strconv.Itoa(s.Skipped)},
		{"Elapsed", formatElapsed(s.Elapsed)},
	}
	if s.BackupDir != "" {
		overview = append(overview, []string{"Backup dir", s.BackupDir})
	}
	b.WriteString(RenderTable([]string{"Summary", ""}, overview, []ColumnAlignment{AlignLeft, AlignRight}))
	b.WriteByte('\n')

	if rows := categoryRows(s.ByCategory); len(rows) > 0 {
		b.WriteByte('\n')
		b.WriteString(RenderTable([]string{"Category", "Files"}, rows, []ColumnAlignment{AlignLeft, AlignRight}))
		b.WriteByte('\n')
	}

	if rows := methodRows(s.ByMethod); len(rows) > 0 {
		b.WriteByte('\n')
		b.WriteString(RenderTable([]string{"Method", "Files"}, rows, []ColumnAlignment{AlignLeft, AlignRight}))
		b.WriteByte('\n')
	}

	return b.String()
}

// DryRunReport renders the classification histogram for a dry run.
func DryRunReport(counts map[classify.Category]int, totalBytes int64) string {
	total := 0
	for _, n := range counts {
		total += n
	}

	var b strings.Builder
	b.WriteString(ScanSummary(total, totalBytes))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"Category", "Files"}, categoryRows(counts), []ColumnAlignment{AlignLeft, AlignRight}))
	b.WriteString("\n\nDry run: no files were modified.\n")
	return b.String()
}

// CategoryLabel renders a category for human output.
func CategoryLabel(category classify.Category) string {
	switch category {
	case classify.CategoryPDF:
		return "PDF"
	default:
		return titleCaser.String(string(category))
	}
}

func categoryRows(counts map[classify.Category]int) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, category := range classify.All() {
		if n := counts[category]; n > 0 {
			rows = append(rows, []string{CategoryLabel(category), strconv.Itoa(n)})
		}
	}
	return rows
}

func methodRows(counts map[clean.Method]int) [][]string {
	methods := make([]string, 0, len(counts))
	for method := range counts {
		methods = append(methods, string(method))
	}
	sort.Strings(methods)

	rows := make([][]string, 0, len(methods))
	for _, method := range methods {
		rows = append(rows, []string{method, strconv.Itoa(counts[clean.Method(method)])})
	}
	return rows
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
