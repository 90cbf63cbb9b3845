package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"blogcms/internal/services"
	"blogcms/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	feedItemLimit   = 20
	feedExcerptSize = 300
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type FeedHandler struct {
	blog     *services.BlogService
	siteURL  string
	siteName string
}

func NewFeedHandler(blog *services.BlogService, siteURL, siteName string) *FeedHandler {
	return &FeedHandler{
		blog:     blog,
		siteURL:  strings.TrimRight(siteURL, "/"),
		siteName: siteName,
	}
}

// RSSFeed 生成 RSS 2.0 feed
func (h *FeedHandler) RSSFeed(c *gin.Context) {
	posts, err := h.blog.LatestPosts(c.Request.Context(), feedItemLimit)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}

	channel := rssChannel{
		Title:         h.siteName,
		Link:          h.siteURL + "/",
		Description:   "Latest posts from " + h.siteName,
		LastBuildDate: time.Now().UTC().Format(time.RFC1123Z),
		AtomLink:      atomLink{Href: h.siteURL + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
		Items:         make([]rssItem, 0, len(posts)),
	}
	if len(posts) > 0 {
		channel.LastBuildDate = posts[0].UpdatedAt.UTC().Format(time.RFC1123Z)
	}
	for _, post := range posts {
		link := h.siteURL + "/blog/" + post.Slug + "/"
		channel.Items = append(channel.Items, rssItem{
			Title:       post.Title,
			Link:        link,
			Description: utils.Excerpt(post.Content, feedExcerptSize),
			Author:      post.Author,
			Category:    post.Category,
			PubDate:     post.CreatedAt.UTC().Format(time.RFC1123Z),
			GUID:        rssGUID{IsPermaLink: true, Value: link},
		})
	}

	out, err := xml.MarshalIndent(rssDocument{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: channel,
	}, "", "  ")
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), out...))
}
