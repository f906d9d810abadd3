// Package markdown prints a documentation tree as a single Markdown document:
// an index of classes and modules followed by the body of every node.
package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/go-jsdocmd/internal/doctree"
)

// Render writes the index and then the body of root to w. Output is emitted
// depth-first in a fixed collection order; the only error is the first write
// error returned by w, after which nothing more is written.
func Render(w io.Writer, root *doctree.Node) error {
	sw := &stickyWriter{w: w}
	r := markdownRenderer{w: sw}
	r.renderIndex(root)
	r.renderNode(root)
	return sw.err
}

type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

type markdownRenderer struct {
	w io.Writer
}

func (r *markdownRenderer) print(parts ...string) {
	for _, p := range parts {
		io.WriteString(r.w, p)
	}
}

func (r *markdownRenderer) renderNode(n *doctree.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case doctree.KindClass:
		r.renderClass(n)
	case doctree.KindModule:
		r.renderModule(n)
	case doctree.KindFunction:
		r.renderFunction(n)
	case doctree.KindMember:
		r.renderMember(n)
	}
	r.renderCollection(n.Classes, "")
	r.renderCollection(n.Modules, "")
	r.renderCollection(n.Properties, "Members")
	r.renderCollection(n.Functions, "Functions")
}

func (r *markdownRenderer) renderCollection(items []*doctree.Node, title string) {
	if len(items) == 0 {
		return
	}
	if title != "" {
		fmt.Fprintf(r.w, "### **%s**  \n", title)
	}
	for _, item := range items {
		r.renderNode(item)
	}
}

func (r *markdownRenderer) renderClass(n *doctree.Node) {
	fmt.Fprintf(r.w, "<br/><a name=\"%s\"></a>\n", Anchor(n.Longname))
	if len(n.Extends) > 0 {
		fmt.Fprintf(r.w, "## **%s** (class extends %s)  \n", n.Name, strings.Join(n.Extends, ", "))
	} else {
		fmt.Fprintf(r.w, "## **%s** (class)  \n", n.Name)
	}
	r.renderDescription(n.Description)
	r.print("\n")
	if n.Constructor != nil {
		r.renderFunction(n.Constructor)
	}
}

func (r *markdownRenderer) renderModule(n *doctree.Node) {
	fmt.Fprintf(r.w, "<br/><a name=\"%s\"></a>\n", Anchor(n.Longname))
	fmt.Fprintf(r.w, "## **%s** (module)  \n", n.Name)
	r.renderDescription(n.Description)
	r.print("\n")
	r.renderExamples(n.Examples, false)
	r.renderSee(n.See, false)
}

func (r *markdownRenderer) renderFunction(n *doctree.Node) {
	if !n.IsConstructor() {
		fmt.Fprintf(r.w, "<a name=\"%s\"></a>\n", Anchor(n.Longname))
	}
	fmt.Fprintf(r.w, "## %s  \n", signature(n))
	r.renderDescription(n.Description)
	r.print("  \n")

	if len(n.Parameters) > 0 {
		r.print("> Parameters:  \n\n")
		r.renderParamTable(n.Parameters)
		r.print("\n")
	}

	if n.Returns != nil {
		if len(n.Returns.Type) > 0 {
			fmt.Fprintf(r.w, "> Returns: `%s`  \n", n.Returns.Type)
		} else {
			r.print("> Returns:  \n")
		}
		r.renderDescription(n.Returns.Description)
	}
	r.print("\n")

	r.renderExamples(n.Examples, true)
	r.renderSee(n.See, true)
	r.print("\n")
}

func (r *markdownRenderer) renderMember(n *doctree.Node) {
	fmt.Fprintf(r.w, "<a name=\"%s\"></a>\n", Anchor(n.Longname))
	title := n.Name
	if len(n.Type) > 0 {
		title += " : " + n.Type.String()
	}
	if n.Scope == "static" {
		title = "(static) " + title
	}
	fmt.Fprintf(r.w, "## `%s`  \n", title)
	r.renderDescription(n.Description)
	r.print("  \n")
	r.renderExamples(n.Examples, true)
	r.renderSee(n.See, true)
	r.print("\n")
}

func (r *markdownRenderer) renderDescription(text string) {
	if text == "" {
		return
	}
	r.print(blockText(Linkify(text)), "  \n")
}

func (r *markdownRenderer) renderParamTable(params []doctree.Param) {
	r.print("> | Param | Type | Attributes | Description |\n")
	r.print("> | --- | --- | --- | --- |\n")
	for _, p := range params {
		typ := " "
		if len(p.Type) > 0 {
			typ = "`" + typeCell(p.Type) + "`"
		}
		attrs := " "
		if p.Optional.IsTrue() {
			attrs = "optional"
		}
		fmt.Fprintf(r.w, "> | %s | %s | %s | %s |\n", EscapePipes(p.Name), typ, attrs, tableCell(p.Description))
	}
}

func (r *markdownRenderer) renderExamples(examples []string, quoted bool) {
	prefix := ""
	if quoted {
		prefix = "> "
	}
	for _, example := range examples {
		caption, body := splitCaption(example)
		if caption != "" {
			fmt.Fprintf(r.w, "%sExample (%s):  \n", prefix, caption)
		} else {
			fmt.Fprintf(r.w, "%sExample:  \n", prefix)
		}
		fmt.Fprintf(r.w, "%s```js\n", prefix)
		body = strings.TrimRight(RestoreComments(body), "\r\n")
		for _, line := range strings.Split(body, "\n") {
			r.print(prefix, strings.TrimSuffix(line, "\r"), "\n")
		}
		fmt.Fprintf(r.w, "%s```  \n", prefix)
	}
}

func (r *markdownRenderer) renderSee(refs []string, quoted bool) {
	if len(refs) == 0 {
		return
	}
	prefix := ""
	if quoted {
		prefix = "> "
	}
	fmt.Fprintf(r.w, "%sSee:  \n", prefix)
	for _, ref := range refs {
		fmt.Fprintf(r.w, "%s- %s  \n", prefix, SeeLink(ref))
	}
}

// signature builds "(static) new name(a, b (opt)) ⇒ type". Parameters whose
// name contains a dot document a property of another parameter and are left
// out.
func signature(n *doctree.Node) string {
	var b strings.Builder
	if n.Scope == "static" {
		b.WriteString("(static) ")
	}
	if n.IsConstructor() {
		b.WriteString("new ")
	}
	b.WriteString(n.Name)
	b.WriteString("(")
	var params []string
	for _, p := range n.Parameters {
		switch {
		case strings.Contains(p.Name, "."):
			continue
		case p.Optional.IsTrue():
			params = append(params, p.Name+" (opt)")
		default:
			params = append(params, p.Name)
		}
	}
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(")")
	if n.Returns != nil && len(n.Returns.Type) > 0 {
		b.WriteString(" ⇒ ")
		b.WriteString(n.Returns.Type.String())
	}
	return b.String()
}
