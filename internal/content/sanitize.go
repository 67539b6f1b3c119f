package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Free-text admin fields (descriptions, FAQ answers) may carry light markup.
// Anything that can execute (script/style elements, inline event handlers,
// javascript: URLs) is stripped before the value enters the tree.

var inlineEventAttrPattern = regexp.MustCompile(`(?i)^on\w+$`)

var allowedTags = map[atom.Atom]struct{}{
	atom.A:      {},
	atom.B:      {},
	atom.Br:     {},
	atom.Em:     {},
	atom.I:      {},
	atom.Li:     {},
	atom.Ol:     {},
	atom.P:      {},
	atom.Span:   {},
	atom.Strong: {},
	atom.Ul:     {},
}

// SanitizeText returns s with unsafe markup removed. Plain text passes
// through unchanged; values that fail to parse as an HTML fragment are
// reduced to their escaped text form.
func SanitizeText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return html.EscapeString(s)
	}

	var out strings.Builder
	for _, n := range nodes {
		renderSafe(&out, n)
	}
	return out.String()
}

func renderSafe(out *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		out.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
		if _, ok := allowedTags[n.DataAtom]; !ok {
			// Unknown element: keep its children, drop the tag itself.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderSafe(out, c)
			}
			return
		}
		out.WriteString("<")
		out.WriteString(n.Data)
		for _, attr := range safeAttributes(n) {
			out.WriteString(" ")
			out.WriteString(attr.Key)
			out.WriteString(`="`)
			out.WriteString(html.EscapeString(attr.Val))
			out.WriteString(`"`)
		}
		if n.DataAtom == atom.Br {
			out.WriteString("/>")
			return
		}
		out.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderSafe(out, c)
		}
		out.WriteString("</")
		out.WriteString(n.Data)
		out.WriteString(">")
	default:
		// Comments and doctype nodes are dropped.
	}
}

func safeAttributes(n *html.Node) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if inlineEventAttrPattern.MatchString(key) {
			continue
		}
		switch key {
		case "href":
			if n.DataAtom == atom.A && safeURL(attr.Val) {
				kept = append(kept, html.Attribute{Key: key, Val: attr.Val})
			}
		case "title":
			kept = append(kept, html.Attribute{Key: key, Val: attr.Val})
		}
	}
	return kept
}

func safeURL(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "data:") || strings.HasPrefix(v, "vbscript:") {
		return false
	}
	return true
}
