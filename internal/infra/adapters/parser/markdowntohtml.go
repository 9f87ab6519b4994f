package parser

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	mdp "github.com/gomarkdown/markdown/parser"
)

// MarkdownToHTML takes md as markdown and returns html. Used for show
// descriptions flagged as markdown.
func MarkdownToHTML(md string) string {
	p := mdp.NewWithExtensions(mdp.CommonExtensions | mdp.AutoHeadingIDs | mdp.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return strings.TrimSpace(string(markdown.Render(doc, renderer)))
}
