package utils

import (
	"html/template"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent 为图片增加懒加载属性，并把单独成段的 YouTube 链接换成嵌入播放器
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		s.SetAttr("decoding", "async")
		s.SetAttr("referrerpolicy", "no-referrer")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if id := youTubeID(text); id != "" {
			s.ReplaceWithHtml(`<div class="video-container"><iframe src="https://www.youtube-nocookie.com/embed/` +
				url.PathEscape(id) + `" frameborder="0" allowfullscreen loading="lazy"></iframe></div>`)
		}
	})

	// goquery wraps fragments in html/body
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out)
}

// youTubeID returns the video id when text is nothing but a YouTube link.
func youTubeID(text string) string {
	if !strings.HasPrefix(text, "http") || strings.ContainsAny(text, " \t\n") {
		return ""
	}
	u, err := url.Parse(text)
	if err != nil {
		return ""
	}
	switch strings.TrimPrefix(u.Host, "www.") {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			return u.Query().Get("v")
		}
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	}
	return ""
}

// Excerpt returns the first n runes of the visible text of htmlStr.
func Excerpt(htmlStr string, n int) string {
	if htmlStr == "" || n <= 0 {
		return ""
	}
	text := htmlStr
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
