// Package observability provides structured logging and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimax/internal/catalog"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewChars bounds text previews in verbose output
	previewChars = 300
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// truncated when wrap is false and wrapped otherwise.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string, wrap bool) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		if !wrap {
			fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
			continue
		}
		for _, part := range wrapLine(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEnhancedResume outputs the enhanced resume in full, wrapping long lines.
func (p *Printer) PrintEnhancedResume(text string) {
	if strings.TrimSpace(text) == "" {
		p.printBox("ENHANCED RESUME", "(empty response)", false)
		return
	}
	p.printBox("ENHANCED RESUME", text, true)
}

// PrintTips outputs improvement tips, one block per tip.
func (p *Printer) PrintTips(tips []catalog.Tip) {
	if len(tips) == 0 {
		return
	}

	var sb strings.Builder
	for i, tip := range tips {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s/%s] %s\n", strings.ToUpper(string(tip.Type)), tip.Severity, tip.Title))
		for _, line := range wrapLine(tip.Description, boxWidth-8) {
			sb.WriteString("    " + line + "\n")
		}
	}

	p.printBox(fmt.Sprintf("IMPROVEMENT TIPS (%d)", len(tips)), sb.String(), false)
}

// PrintSelection outputs the target job title and selected skills.
func (p *Printer) PrintSelection(jobTitle string, skills []string) {
	if jobTitle == "" && len(skills) == 0 {
		return
	}

	var sb strings.Builder
	if jobTitle != "" {
		sb.WriteString(fmt.Sprintf("Job Title: %s\n", jobTitle))
	}
	if len(skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
	}

	p.printBox("TARGET", sb.String(), false)
}

// PrintJobPosting outputs where the job description came from and a preview of it.
func (p *Printer) PrintJobPosting(source, text string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", source))
	sb.WriteString(fmt.Sprintf("Length: %d chars\n\n", utf8.RuneCountInString(text)))
	sb.WriteString(preview(text, previewChars))

	p.printBox("JOB DESCRIPTION", sb.String(), true)
}

// preview returns the first n runes of text with whitespace runs collapsed
func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

func truncate(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrapLine splits line into chunks of at most width runes, breaking at spaces
// where possible. An empty line yields one empty chunk.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
