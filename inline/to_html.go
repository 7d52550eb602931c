// Package inline converts inline formatting between the Markdown dialect used by
// the converters and the equivalent HTML inline tags.
//
// The two directions are not symmetric: ToHTML is a fixed, ordered list of
// pattern substitutions, ToMarkdown walks an HTML token stream.
package inline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

type substitution struct {
	re      *regexp.Regexp
	replace func(groups []string, resolve URLResolver) string
}

// Order matters: the more specific delimiters run first so shorter patterns
// never see the text produced by longer ones, and images run before links.
var substitutions = []substitution{
	{regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), wrapTag("strong", "em")},
	{regexp.MustCompile(`___(.+?)___`), wrapTag("strong", "em")},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), wrapTag("strong")},
	{regexp.MustCompile(`__(.+?)__`), wrapTag("strong")},
	{regexp.MustCompile(`\*(.+?)\*`), wrapTag("em")},
	{regexp.MustCompile(`_(.+?)_`), wrapTag("em")},
	{regexp.MustCompile("`(.+?)`"), wrapTag("code")},
	{regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`), imageTag},
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`), linkTag},
}

// ToHTML converts the inline Markdown syntax of a single block's text into
// HTML inline tags. Unmatched or partial syntax is left as literal text.
func ToHTML(markdown string) string {
	return ToHTMLResolved(markdown, nil)
}

// ToHTMLResolved is ToHTML with a resolver applied to every link and image
// destination before it is written into the tag.
func ToHTMLResolved(markdown string, resolve URLResolver) string {
	if markdown == "" {
		return ""
	}

	result := markdown
	for _, sub := range substitutions {
		result = replaceSubmatches(sub.re, result, func(groups []string) string {
			return sub.replace(groups, resolve)
		})
	}
	return result
}

func wrapTag(tags ...string) func(groups []string, _ URLResolver) string {
	return func(groups []string, _ URLResolver) string {
		var sb strings.Builder
		for _, tag := range tags {
			sb.WriteString("<" + tag + ">")
		}
		sb.WriteString(groups[1])
		for i := len(tags) - 1; i >= 0; i-- {
			sb.WriteString("</" + tags[i] + ">")
		}
		return sb.String()
	}
}

func imageTag(groups []string, resolve URLResolver) string {
	src := groups[2]
	if resolve != nil {
		src = resolve(URLImage, src, groups[1])
	}
	return `<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(groups[1]) + `" />`
}

func linkTag(groups []string, resolve URLResolver) string {
	href := groups[2]
	if resolve != nil {
		href = resolve(URLLink, href, groups[1])
	}
	return `<a href="` + html.EscapeString(href) + `">` + groups[1] + `</a>`
}

func replaceSubmatches(re *regexp.Regexp, input string, replace func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}

	var sb strings.Builder
	last := 0
	for _, loc := range matches {
		sb.WriteString(input[last:loc[0]])

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = input[loc[2*i]:loc[2*i+1]]
			}
		}
		sb.WriteString(replace(groups))
		last = loc[1]
	}
	sb.WriteString(input[last:])

	return sb.String()
}
