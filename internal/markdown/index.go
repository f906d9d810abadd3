package markdown

import (
	"fmt"

	"github.com/agentflare-ai/go-jsdocmd/internal/doctree"
)

func (r *markdownRenderer) renderIndex(root *doctree.Node) {
	if root == nil {
		return
	}
	r.renderIndexSection("Classes", root.Classes)
	r.renderIndexSection("Modules", root.Modules)
}

func (r *markdownRenderer) renderIndexSection(title string, nodes []*doctree.Node) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(r.w, "## %s\n\n<ul>\n", title)
	for _, n := range nodes {
		fmt.Fprintf(r.w, "<li><a href=\"#%s\">%s</a>\n", Anchor(n.Longname), n.Name)
		r.renderIndexGroup("Members", n.Properties)
		r.renderIndexGroup("Functions", n.Functions)
		r.print("</li>\n")
	}
	r.print("</ul>\n\n")
}

func (r *markdownRenderer) renderIndexGroup(title string, nodes []*doctree.Node) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(r.w, "<ul>%s\n", title)
	for _, n := range nodes {
		fmt.Fprintf(r.w, "<li><a href=\"#%s\">%s</a></li>\n", Anchor(n.Longname), n.Name)
	}
	r.print("</ul><br/>\n")
}
