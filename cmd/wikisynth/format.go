package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/wikisynth"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth caps the section column so long headings do not push the
// counts off screen.
const maxTitleWidth = 40

// writeSummary prints a one-screen overview of an article: redirects, one
// aligned row per section, and the reference count.
func writeSummary(w io.Writer, article *wikisynth.ParsedArticle) {
	fmt.Fprintln(w, article.Title)
	if len(article.RedirectedFrom) > 0 {
		fmt.Fprintf(w, "  (redirected from %s)\n", strings.Join(article.RedirectedFrom, " -> "))
	}

	rows := make([][]string, 0, len(article.Sections))
	for _, s := range article.Sections {
		rows = append(rows, []string{
			runewidth.Truncate(s.Title, maxTitleWidth, "..."),
			FormatBytes(len(s.Paragraph)),
			fmt.Sprintf("%d images", len(s.Images)),
		})
	}
	for _, line := range alignColumns(rows) {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintf(w, "  %d references\n", len(article.References))
}

// alignColumns pads each cell to its column's display width. Cells are
// separated by two spaces and trailing padding is trimmed.
func alignColumns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
