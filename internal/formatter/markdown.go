package formatter

import (
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

// RenderMarkdown renders columns as a GitHub-style markdown table.
func RenderMarkdown(cols []*column.Column) string {
	var b strings.Builder
	b.WriteString("| # | Name | Data | Title | Options |\n")
	b.WriteString("|---|------|------|-------|---------|\n")
	for i, row := range ColumnRows(cols) {
		b.WriteString("| " + strconv.Itoa(i+1))
		for _, cell := range row {
			b.WriteString(" | " + escapeMarkdownCell(cell))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// RenderHTML renders the markdown table to an HTML fragment.
func RenderHTML(cols []*column.Column) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(RenderMarkdown(cols)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

// cellEscaper escapes table syntax and turns HTML metacharacters into
// entities, so render snippets never reach the HTML output as markup.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeMarkdownCell(s string) string {
	return cellEscaper.Replace(s)
}
