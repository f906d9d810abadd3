package markdown

import (
	"regexp"
	"strings"

	"github.com/agentflare-ai/go-jsdocmd/internal/doctree"
)

var (
	newlinePattern = regexp.MustCompile(`\r?\n`)
	captionPattern = regexp.MustCompile(`(?i)\A\s*<caption>(.*?)</caption>\s*`)
	linkPattern    = regexp.MustCompile(`\{@link\s+([^}|\s]+)\s*(?:\|\s*([^}]*?)\s*)?\}`)
)

// commentEntity stands in for "*" inside example text so that a "*/" in an
// example cannot close the surrounding doc comment.
const commentEntity = "&#42;"

var anchorReplacer = strings.NewReplacer(":", "_", "#", "_", `"`, "_", "'", "_", " ", "_", "\t", "_")

// Anchor turns a longname into a fragment usable in <a name> and #links.
// Quotes from quoted jsdoc names and whitespace become "_" as well.
func Anchor(longname string) string {
	return anchorReplacer.Replace(longname)
}

// CollapseNewlines replaces every LF or CRLF with a single space.
func CollapseNewlines(text string) string {
	return newlinePattern.ReplaceAllString(text, " ")
}

// EscapePipes replaces "|" with its HTML entity so table cells stay intact.
func EscapePipes(text string) string {
	return strings.ReplaceAll(text, "|", "&#124;")
}

// RestoreComments turns the escaped asterisk back into "*".
func RestoreComments(text string) string {
	return strings.ReplaceAll(text, commentEntity, "*")
}

// Linkify rewrites {@link target} and {@link target|label} directives into
// Markdown links. Targets without an http(s) scheme link to the anchor of
// the named longname.
func Linkify(text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(directive string) string {
		m := linkPattern.FindStringSubmatch(directive)
		return link(m[1], m[2])
	})
}

// SeeLink renders a @see entry as a link even when it is a bare name.
func SeeLink(ref string) string {
	ref = strings.TrimSpace(ref)
	if linkPattern.MatchString(ref) {
		return Linkify(ref)
	}
	return link(ref, "")
}

func link(target, label string) string {
	if label == "" {
		label = target
	}
	if !isURL(target) {
		target = "#" + Anchor(target)
	}
	return "[" + label + "](" + target + ")"
}

func isURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// blockText renders text as a single block quote line.
func blockText(text string) string {
	if text == "" {
		return ""
	}
	return "> " + CollapseNewlines(text)
}

// tableCell renders text for use inside a table cell. Links are rewritten
// before pipes are escaped since the directive itself uses "|".
func tableCell(text string) string {
	return CollapseNewlines(EscapePipes(Linkify(text)))
}

// typeCell escapes pipes inside a code span, where GFM honors a backslash.
func typeCell(t doctree.TypeExpr) string {
	return strings.ReplaceAll(t.String(), "|", `\|`)
}

// splitCaption separates a leading <caption>...</caption> from an example.
func splitCaption(example string) (caption, body string) {
	loc := captionPattern.FindStringSubmatchIndex(example)
	if loc == nil {
		return "", example
	}
	return example[loc[2]:loc[3]], example[loc[1]:]
}
