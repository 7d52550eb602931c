package inline

import (
	"strings"

	"golang.org/x/net/html"
)

// URLKind tells a URLResolver which element a URL was taken from.
type URLKind string

const (
	URLLink  URLKind = "link"
	URLImage URLKind = "image"
)

// URLResolver rewrites a link or image URL during inline conversion in either
// direction. text is the link text or the image alt text. The returned value
// replaces url.
type URLResolver func(kind URLKind, url, text string) string

// ToMarkdown converts an HTML fragment into inline Markdown.
//
// strong/b, em/i, code, a and img become Markdown syntax, br becomes a newline,
// every other tag is dropped while its text is kept. Entities are decoded and
// the result is trimmed.
func ToMarkdown(fragment string) string {
	return ToMarkdownResolved(fragment, nil)
}

// ToMarkdownResolved is ToMarkdown with a resolver applied to every link and
// image URL. A nil resolver keeps URLs unchanged.
func ToMarkdownResolved(fragment string, resolve URLResolver) string {
	if fragment == "" {
		return ""
	}

	b := &markdownBuilder{resolve: resolve}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.finish())
		case html.TextToken:
			b.out().WriteString(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			b.open(z.Token(), tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			b.close(string(name))
		}
	}
}

// frame is an open formatting element waiting for its closing tag.
type frame struct {
	tag  string
	href string
	buf  strings.Builder
}

type markdownBuilder struct {
	root    strings.Builder
	stack   []*frame
	resolve URLResolver
}

func (b *markdownBuilder) out() *strings.Builder {
	if n := len(b.stack); n > 0 {
		return &b.stack[n-1].buf
	}
	return &b.root
}

func (b *markdownBuilder) open(tok html.Token, selfClosing bool) {
	switch tok.Data {
	case "strong", "b", "em", "i", "code":
		if !selfClosing {
			b.stack = append(b.stack, &frame{tag: tok.Data})
		}
	case "a":
		if !selfClosing {
			b.stack = append(b.stack, &frame{tag: tok.Data, href: attr(tok, "href")})
		}
	case "img":
		src := attr(tok, "src")
		if src == "" {
			return
		}
		alt := attr(tok, "alt")
		b.out().WriteString("![" + alt + "](" + b.resolveURL(URLImage, src, alt) + ")")
	case "br":
		b.out().WriteString("\n")
	}
}

func (b *markdownBuilder) close(tag string) {
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].tag == tag {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Frames opened inside the matched one and never closed lose their markers.
	for len(b.stack)-1 > idx {
		b.flattenTop()
	}

	top := b.stack[idx]
	b.stack = b.stack[:idx]
	b.out().WriteString(b.wrap(top))
}

func (b *markdownBuilder) wrap(f *frame) string {
	content := f.buf.String()
	switch f.tag {
	case "strong", "b":
		return "**" + content + "**"
	case "em", "i":
		return "*" + content + "*"
	case "code":
		return "`" + content + "`"
	case "a":
		if f.href == "" {
			return content
		}
		return "[" + content + "](" + b.resolveURL(URLLink, f.href, content) + ")"
	default:
		return content
	}
}

func (b *markdownBuilder) flattenTop() {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.out().WriteString(top.buf.String())
}

func (b *markdownBuilder) finish() string {
	for len(b.stack) > 0 {
		b.flattenTop()
	}
	return b.root.String()
}

func (b *markdownBuilder) resolveURL(kind URLKind, url, text string) string {
	if b.resolve == nil {
		return url
	}
	return b.resolve(kind, url, text)
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
