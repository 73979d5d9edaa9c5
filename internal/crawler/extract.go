package crawler

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const untitled = "Untitled"

// Elements that never carry page content.
var droppedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Header:   true,
	atom.Aside:    true,
	atom.Iframe:   true,
	atom.Noscript: true,
	atom.Meta:     true,
	atom.Link:     true,
	atom.Form:     true,
	atom.Button:   true,
	atom.Input:    true,
	atom.Select:   true,
	atom.Textarea: true,
}

// Class name parts that mark ads, analytics and cookie banners.
var noiseClassParts = map[string]bool{
	"ad":            true,
	"ads":           true,
	"advert":        true,
	"advertisement": true,
	"analytics":     true,
	"tracking":      true,
	"cookie":        true,
	"cookies":       true,
}

// ExtractHTML parses an HTML document and returns its title and main text.
// Navigation, scripts, forms and ad blocks are removed first. The main text
// comes from the first of main, article, a div whose class or id mentions
// "content", or body.
func ExtractHTML(body []byte) (title, content string, err error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}

	title = untitled
	if t := findFirst(doc, func(n *html.Node) bool { return n.DataAtom == atom.Title }); t != nil {
		if s := collapse(textOf(t)); s != "" {
			title = s
		}
	}

	removeNoise(doc)

	root := mainContent(doc)
	if root == nil {
		root = doc
	}
	return title, collapse(textOf(root)), nil
}

func mainContent(doc *html.Node) *html.Node {
	matchers := []func(*html.Node) bool{
		func(n *html.Node) bool { return n.DataAtom == atom.Main },
		func(n *html.Node) bool { return n.DataAtom == atom.Article },
		func(n *html.Node) bool { return n.DataAtom == atom.Div && attrContains(n, "class", "content") },
		func(n *html.Node) bool { return n.DataAtom == atom.Div && attrContains(n, "id", "content") },
		func(n *html.Node) bool { return n.DataAtom == atom.Body },
	}
	for _, match := range matchers {
		if n := findFirst(doc, match); n != nil {
			return n
		}
	}
	return nil
}

// findFirst returns the first element in document order satisfying match.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func removeNoise(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && (droppedElements[c.DataAtom] || isNoiseClass(attr(c, "class"))) {
			n.RemoveChild(c)
		} else {
			removeNoise(c)
		}
		c = next
	}
}

func isNoiseClass(class string) bool {
	for _, name := range strings.Fields(strings.ToLower(class)) {
		parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
		for _, part := range parts {
			if noiseClassParts[part] {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func attrContains(n *html.Node, key, substr string) bool {
	return strings.Contains(strings.ToLower(attr(n, key)), substr)
}

// textOf joins the text nodes under n with single spaces.
func textOf(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractLinks returns the href values of every anchor in an HTML document.
func extractLinks(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href := strings.TrimSpace(attr(n, "href")); href != "" {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}
