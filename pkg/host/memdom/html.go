package memdom

import (
	"strconv"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTML serialises n and its subtree. Anchors render as nothing.
func HTML(n *Node) string {
	var b strings.Builder
	writeHTML(&b, n, "")
	return b.String()
}

// InnerHTML serialises n's children only.
func InnerHTML(n *Node) string {
	return AnnotatedInnerHTML(n, "")
}

// AnnotatedInnerHTML is InnerHTML with each element's node id written to
// the idAttr attribute, so a client can address nodes in events. An empty
// idAttr writes no ids.
func AnnotatedInnerHTML(n *Node, idAttr string) string {
	var b strings.Builder
	for _, c := range n.children {
		writeHTML(&b, c, idAttr)
	}
	return b.String()
}

func writeHTML(b *strings.Builder, n *Node, idAttr string) {
	if n.Type == TextNode {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, name := range n.Attrs() {
		b.WriteByte(' ')
		b.WriteString(name)
		if v := n.attrs[name]; v != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(v))
			b.WriteByte('"')
		}
	}
	if idAttr != "" {
		b.WriteString(" " + idAttr + `="`)
		b.WriteString(strconv.Itoa(n.ID))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	for _, c := range n.children {
		writeHTML(b, c, idAttr)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in attribute values.
// Whitespace that could break attribute parsing is escaped as well.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
