package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText strips non-printable characters, trims the ends and collapses
// runs of whitespace into a single space.
func NormalizeText(text string) string {
	text = removeNonPrintable(text)
	text = strings.TrimSpace(text)
	return innerWhitespace.ReplaceAllString(text, " ")
}

// Find returns the first element under scope matching selector.
func Find(scope *goquery.Selection, selector string) (*goquery.Selection, bool) {
	found := scope.Find(selector).First()
	return found, found.Length() > 0
}

// FindAll returns every element under scope matching selector in document order.
func FindAll(scope *goquery.Selection, selector string) []*goquery.Selection {
	found := scope.Find(selector)
	out := make([]*goquery.Selection, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// splitAttrKey turns "xlink:href" into ("xlink", "href"), the namespace and key
// x/net/html assigns to foreign (svg) attributes.
func splitAttrKey(key string) (namespace, local string) {
	namespace, local, found := strings.Cut(key, ":")
	if !found {
		return "", key
	}
	return namespace, local
}

// NodeAttr reads an attribute off of a node. Namespaced keys such as
// "xlink:href" match both the namespaced form svg content is parsed into and
// a literal attribute of the same name.
func NodeAttr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	namespace, local := splitAttrKey(key)
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
		if namespace != "" && a.Namespace == namespace && a.Key == local {
			return a.Val, true
		}
	}
	return "", false
}

// Attr reads an attribute off of the first element in sel.
func Attr(sel *goquery.Selection, key string) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	return NodeAttr(sel.Get(0), key)
}

// FindAttr reads an attribute off of the first element under scope matching selector.
func FindAttr(scope *goquery.Selection, selector, key string) (string, bool) {
	found, ok := Find(scope, selector)
	if !ok {
		return "", false
	}
	return Attr(found, key)
}

// FindWithAttr returns the first descendant of scope carrying one of the given
// attributes, together with the value of the attribute that matched.
func FindWithAttr(scope *goquery.Selection, keys ...string) (string, bool) {
	var value string
	var found bool
	scope.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, k := range keys {
			v, ok := NodeAttr(s.Get(0), k)
			if ok {
				value = v
				found = true
				return false
			}
		}
		return true
	})
	return value, found
}

// InnerText returns the normalized text content of the first element in sel.
func InnerText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return NormalizeText(GetText(sel.Get(0)))
}

// FindInnerText returns the normalized text of the first element under scope
// matching selector.
func FindInnerText(scope *goquery.Selection, selector string) (string, bool) {
	found, ok := Find(scope, selector)
	if !ok {
		return "", false
	}
	return InnerText(found), true
}

// RawInnerHTML returns the inner markup of every element named tag in page,
// in document order, byte for byte as it appears in the source. Rendering a
// parsed node normalizes quotes and expands self-closing tags, this does not.
func RawInnerHTML(page string, tag string) []string {
	z := html.NewTokenizer(strings.NewReader(page))
	var inner []string
	type open struct {
		index int
		out   *strings.Builder
	}
	var stack []open

	writeAll := func(raw string) {
		for _, o := range stack {
			o.out.WriteString(raw)
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// TagName lowercases the token buffer in place, so copy the raw bytes first
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != tag {
				writeAll(raw)
				continue
			}
			switch tt {
			case html.StartTagToken:
				writeAll(raw)
				stack = append(stack, open{index: len(inner), out: &strings.Builder{}})
				inner = append(inner, "")
			case html.SelfClosingTagToken:
				writeAll(raw)
				inner = append(inner, "")
			case html.EndTagToken:
				if len(stack) == 0 {
					continue
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				inner[top.index] = top.out.String()
				writeAll(raw)
			}
		default:
			writeAll(raw)
		}
	}
	for _, o := range stack {
		inner[o.index] = o.out.String()
	}
	return inner
}

// HasClass reports whether the first element in sel has the given class.
func HasClass(sel *goquery.Selection, class string) bool {
	return sel.First().HasClass(class)
}

// UrlFile returns the last path segment of a url, ignoring its query and fragment.
func UrlFile(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	i := strings.LastIndex(url, "/")
	return url[i+1:]
}

// ParseDocument parses a whole page.
func ParseDocument(page string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}
