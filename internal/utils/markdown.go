package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// comment bodies are plain markdown typed by visitors
	commentMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	commentPolicy = bluemonday.NewPolicy()
	postPolicy    = bluemonday.UGCPolicy()
)

func init() {
	commentPolicy.AllowStandardURLs()
	commentPolicy.AllowElements("p", "br", "strong", "em", "del", "code", "pre", "blockquote", "ul", "ol", "li")
	commentPolicy.AllowAttrs("href").OnElements("a")
	commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	commentPolicy.RequireNoFollowOnLinks(true)
	commentPolicy.RequireNoReferrerOnLinks(true)

	postPolicy.AllowImages()
	postPolicy.AllowAttrs("class").OnElements("div", "span", "pre", "code", "figure", "p")
	postPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	postPolicy.RequireNoReferrerOnLinks(true)
}

// RenderComment renders a visitor comment as sanitized HTML. Images are not allowed.
func RenderComment(source string) template.HTML {
	var buf bytes.Buffer
	if err := commentMarkdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(commentPolicy.SanitizeBytes(buf.Bytes()))
}

// RenderPostContent sanitizes stored post HTML and enhances its images.
func RenderPostContent(content string) template.HTML {
	return EnhanceHTMLContent(postPolicy.Sanitize(content))
}
