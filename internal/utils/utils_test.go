package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositiveInt(t *testing.T) {
	cases := map[string]int{
		"":                      3,
		"abc":                   3,
		"0":                     3,
		"-2":                    3,
		"1.5":                   3,
		"7":                     7,
		" 12 ":                  12,
		"99999999999999999999":  math.MaxInt,
		"+99999999999999999999": math.MaxInt,
		"-99999999999999999999": 3,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParsePositiveInt(in, 3), "input %q", in)
	}
}

func TestParseBool(t *testing.T) {
	assert.Nil(t, ParseBool(""))
	assert.Nil(t, ParseBool("maybe"))
	require.NotNil(t, ParseBool("false"))
	assert.False(t, *ParseBool("false"))
	assert.True(t, *ParseBool("1"))
}

func TestRenderCommentEscapesScriptsAndImages(t *testing.T) {
	out := string(RenderComment("**hi** <script>alert(1)</script>\n![x](http://e.com/x.png)"))
	assert.Contains(t, out, "<strong>hi</strong>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
}

func TestRenderPostContentSanitizesAndEnhances(t *testing.T) {
	out := string(RenderPostContent(`<p onclick="x()">Hello</p><img src="/a.png"><p>https://youtu.be/abc123</p>`))
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, "youtube-nocookie.com/embed/abc123")
	assert.False(t, strings.HasPrefix(out, "<html>"))
}

func TestYouTubeID(t *testing.T) {
	assert.Equal(t, "xyz", youTubeID("https://www.youtube.com/watch?v=xyz&t=3"))
	assert.Equal(t, "abc", youTubeID("https://youtu.be/abc"))
	assert.Empty(t, youTubeID("https://example.com/watch?v=xyz"))
	assert.Empty(t, youTubeID("see https://youtu.be/abc"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello world", Excerpt("<p>Hello</p>\n<p>world</p>", 50))
	assert.Equal(t, "Hello…", Excerpt("<p>Hello world</p>", 6))
	assert.Empty(t, Excerpt("", 10))
}
