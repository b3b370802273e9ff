// Package render prints build results to the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsmostafa/catpage/internal/category"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the build header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// keyStyle for category keys
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// currentStyle marks the focused page in a window
	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
)

var titleCaser = cases.Title(language.English)

// Header describes the inputs of a build.
type Header struct {
	Content    string
	Categories string
	Output     string
	Policy     category.Policy
}

// Summary describes the outcome of a build.
type Summary struct {
	Items      int
	Categories int
	Pages      int
	Outputs    int
	Removed    int
	Skipped    []string
	Manifest   string
	Duration   time.Duration
}

// FormatHeader renders the build header with the input locations.
func FormatHeader(w io.Writer, h Header) {
	content := fmt.Sprintf("%s %s  %s %s\n%s %s\n%s %s",
		dimStyle.Render("Content:"), titleStyle.Render(h.Content),
		dimStyle.Render("Policy:"), titleStyle.Render(h.Policy.String()),
		dimStyle.Render("Categories:"), h.Categories,
		dimStyle.Render("Output:"), successStyle.Render(h.Output),
	)

	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatSummary renders the build summary box.
func FormatSummary(w io.Writer, s Summary) {
	line1 := fmt.Sprintf("%s %s  %s %d  %s %s",
		dimStyle.Render("Items:"), formatNumber(s.Items),
		dimStyle.Render("Categories:"), s.Categories,
		dimStyle.Render("Pages:"), formatNumber(s.Pages),
	)

	line2 := fmt.Sprintf("%s %s  %s %d  %s %.2fs  %s",
		dimStyle.Render("Outputs:"), formatNumber(s.Outputs),
		dimStyle.Render("Removed:"), s.Removed,
		dimStyle.Render("Took:"), s.Duration.Seconds(),
		successStyle.Render("OK"),
	)

	content := titleStyle.Render("Build Complete") + "\n" + line1 + "\n" + line2
	if len(s.Skipped) > 0 {
		content += "\n" + dimStyle.Render("Skipped (no options): "+strings.Join(s.Skipped, ", "))
	}
	if s.Manifest != "" {
		content += "\n" + dimStyle.Render("Manifest:") + " " + s.Manifest
	}
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatError renders a build failure.
func FormatError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("ERROR"), err)
}

// FormatRebuild renders the notice printed before a watch-triggered rebuild.
func FormatRebuild(w io.Writer, changed string) {
	fmt.Fprintln(w, dimStyle.Render("Change detected: "+changed+", rebuilding..."))
}

// FormatTree renders the category tree below the root. The default bucket is
// listed after the tree.
func FormatTree(w io.Writer, ix *category.Index) {
	root := ix.Root()
	fmt.Fprintln(w, titleStyle.Render(root.Path))

	var visit func(c *category.Category, prefix string)
	visit = func(c *category.Category, prefix string) {
		for i, id := range c.Children {
			child := ix.Category(id)
			connector, indent := "├── ", "│   "
			if i == len(c.Children)-1 {
				connector, indent = "└── ", "    "
			}
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, categoryLine(ix, child))
			visit(child, prefix+indent)
		}
	}
	visit(root, "")

	if d, ok := ix.Lookup(category.DefaultKey); ok {
		fmt.Fprintln(w)
		fmt.Fprintln(w, categoryLine(ix, d))
	}
}

// FormatPages renders the pages of one category. A positive window also
// prints the window of page numbers around each page.
func FormatPages(w io.Writer, ix *category.Index, c *category.Category, window int) {
	fmt.Fprintln(w, categoryLine(ix, c))

	if len(c.Pages) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no pages"))
		return
	}

	for _, page := range ix.PagesOf(c) {
		p := page.Pagination
		line := fmt.Sprintf("  %s %s %s",
			titleStyle.Render(fmt.Sprintf("%d/%d", p.Num, len(p.Pages))),
			page.Path,
			dimStyle.Render(fmt.Sprintf("(%d items)", len(p.Files))),
		)
		if prev := ix.Page(p.Previous); prev != nil {
			line += dimStyle.Render("  prev: ") + prev.Href
		}
		if next := ix.Page(p.Next); next != nil {
			line += dimStyle.Render("  next: ") + next.Href
		}
		fmt.Fprintln(w, line)

		if window > 0 {
			fmt.Fprintln(w, "    "+formatWindow(ix, page, window))
		}
	}
}

func formatWindow(ix *category.Index, page *category.Page, n int) string {
	var parts []string
	for _, p := range ix.WindowPages(page.ID, n) {
		num := fmt.Sprintf("%d", p.Pagination.Num)
		if p.ID == page.ID {
			num = currentStyle.Render("[" + num + "]")
		}
		parts = append(parts, num)
	}
	return strings.Join(parts, " ")
}

func categoryLine(ix *category.Index, c *category.Category) string {
	status := successStyle.Render(fmt.Sprintf("%d pages", len(c.Pages)))
	if !c.Configured {
		status = dimStyle.Render("skipped")
	}
	return fmt.Sprintf("%s %s %s %s",
		keyStyle.Render(c.Key),
		Label(c),
		dimStyle.Render(fmt.Sprintf("/%s (%d items)", c.Href, len(c.Items))),
		status,
	)
}

// Label is the human name of a category: its display name, or the title-cased
// last key segment when the display name is empty or the built-in one.
func Label(c *category.Category) string {
	if c.DisplayName != "" && (c.Key == category.DefaultKey || c.DisplayName != category.Defaults().DisplayName) {
		return c.DisplayName
	}
	segment := c.Key[strings.LastIndex(c.Key, category.Delimiter)+1:]
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return titleCaser.String(segment)
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
