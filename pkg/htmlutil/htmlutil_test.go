package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<div class="outer">
	<span class="name">  Time
		Played </span>
	<span class="name">Eliminations</span>
	<img class="icon" src="https://cdn.example.com/a/b/GoldTier-3-abc.png?v=2">
</div>
<div class="role">
	<svg><use xlink:href="https://cdn.example.com/icons/tank-f64e.svg#icon"></use></svg>
</div>
</body></html>`

func TestFind(t *testing.T) {
	doc, err := ParseDocument(fixture)
	require.NoError(t, err)

	outer, ok := Find(doc.Selection, ".outer")
	require.True(t, ok)

	name, ok := FindInnerText(outer, ".name")
	require.True(t, ok)
	require.Equal(t, "Time Played", name)

	require.Len(t, FindAll(outer, ".name"), 2)
	require.Len(t, FindAll(outer, ".missing"), 0)

	_, ok = Find(outer, ".missing")
	require.False(t, ok)
}

func TestAttr(t *testing.T) {
	doc, err := ParseDocument(fixture)
	require.NoError(t, err)

	src, ok := FindAttr(doc.Selection, ".icon", "src")
	require.True(t, ok)
	require.Equal(t, "GoldTier-3-abc.png", UrlFile(src))

	_, ok = FindAttr(doc.Selection, ".icon", "alt")
	require.False(t, ok)

	role, _ := Find(doc.Selection, ".role")
	href, ok := FindWithAttr(role, "src", "xlink:href")
	require.True(t, ok)
	require.Equal(t, "tank-f64e.svg", UrlFile(href))
}

func TestUrlFile(t *testing.T) {
	testCases := []struct {
		url    string
		expect string
	}{
		{url: "https://example.com/a/b/c.png", expect: "c.png"},
		{url: "https://example.com/a/b/c.png?x=1", expect: "c.png"},
		{url: "c.png", expect: "c.png"},
		{url: "https://example.com/", expect: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expect, UrlFile(test.url), test.url)
	}
}

func TestRawInnerHTML(t *testing.T) {
	testCases := []struct {
		name     string
		page     string
		expected []string
	}{
		{
			name:     "keeps source quoting and self-closing tags",
			page:     `<div><svg viewBox='0 0 24 24'><path d='M1 1'/></svg></div>`,
			expected: []string{`<path d='M1 1'/>`},
		},
		{
			name:     "document order",
			page:     `<SVG>a</SVG><p>x</p><svg>b<g/></svg>`,
			expected: []string{"a", "b<g/>"},
		},
		{
			name:     "nested elements",
			page:     `<svg>a<svg>b</svg>c</svg>`,
			expected: []string{"a<svg>b</svg>c", "b"},
		},
		{
			name:     "self-closing and unclosed",
			page:     `<svg/><svg>tail`,
			expected: []string{"", "tail"},
		},
		{
			name: "no matches",
			page: `<div>nothing</div>`,
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, RawInnerHTML(test.page, "svg"), test.name)
	}

	doc, err := ParseDocument(`<svg><path d='M1 1'/></svg>`)
	require.NoError(t, err)
	rendered, err := doc.Find("svg").Html()
	require.NoError(t, err)
	require.NotEqual(t, len(RawInnerHTML(`<svg><path d='M1 1'/></svg>`, "svg")[0]), len(rendered))
}
