// Package publish turns a doclet table into the final document: it builds the
// tree, renders it and splices the result into an optional template.
package publish

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/agentflare-ai/go-jsdocmd/internal/config"
	"github.com/agentflare-ai/go-jsdocmd/internal/doctree"
	"github.com/agentflare-ai/go-jsdocmd/internal/jsdoc"
	"github.com/agentflare-ai/go-jsdocmd/internal/markdown"
)

// Marker is replaced by the rendered document inside a template.
const Marker = "{{jsdoc}}"

// DefaultFilename is appended to destinations that name a directory.
const DefaultFilename = "README.md"

// Format selects the encoding of the written document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Options controls a publish run.
type Options struct {
	// Destination is the output file. A trailing / or \ names a directory
	// that receives DefaultFilename.
	Destination string
	// Template is an optional file containing Marker.
	Template string
	// RootLongname selects the top-level scope, "" for global.
	RootLongname string
	Format       Format
	Logger       *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Publish writes the document for records to opts.Destination and returns
// the path written. An empty destination fails with config.ErrConfiguration
// before anything is touched on disk.
func Publish(records []jsdoc.Record, opts Options) (string, error) {
	if opts.Destination == "" {
		return "", fmt.Errorf("%w: destination must be provided", config.ErrConfiguration)
	}
	dest := ResolveDestination(opts.Destination)

	var template []byte
	hasTemplate := opts.Template != ""
	if hasTemplate {
		data, err := os.ReadFile(opts.Template)
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}
		template = data
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, records, template, hasTemplate, opts); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	opts.logger().Info("wrote documentation", "path", dest, "records", len(records))
	return dest, nil
}

// ResolveDestination appends DefaultFilename to directory destinations.
func ResolveDestination(dest string) string {
	if strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, `\`) {
		return dest + DefaultFilename
	}
	return dest
}

// Write renders records into w. Undocumented doclets are dropped and the rest
// ordered by name before the tree is built. When hasTemplate is set the
// document is spliced into template at Marker; a template without Marker is
// written unchanged and the document is left out.
func Write(w io.Writer, records []jsdoc.Record, template []byte, hasTemplate bool, opts Options) error {
	docs := jsdoc.Documented(records)
	jsdoc.SortByName(docs)
	root := doctree.Build(docs, opts.RootLongname)
	placed := -1
	root.Walk(func(*doctree.Node) { placed++ })
	opts.logger().Debug("built documentation tree", "records", len(docs),
		"placed", placed, "classes", len(root.Classes), "modules", len(root.Modules))
	if unplaced := countGrafted(docs) - placed; unplaced > 0 {
		opts.logger().Debug("records not reachable from the root", "count", unplaced)
	}

	if opts.Format == FormatHTML {
		var md bytes.Buffer
		if err := splice(&md, root, template, hasTemplate, opts.logger()); err != nil {
			return err
		}
		return ToHTML(w, md.Bytes())
	}
	return splice(w, root, template, hasTemplate, opts.logger())
}

// countGrafted counts the records whose kind the tree builder places.
func countGrafted(records []jsdoc.Record) int {
	var n int
	for _, rec := range records {
		if rec.Ignore {
			continue
		}
		switch doctree.Kind(rec.Kind) {
		case doctree.KindNamespace, doctree.KindMixin, doctree.KindFunction, doctree.KindEvent,
			doctree.KindMember, doctree.KindModule, doctree.KindClass:
			n++
		}
	}
	return n
}

func splice(w io.Writer, root *doctree.Node, template []byte, hasTemplate bool, log *slog.Logger) error {
	if !hasTemplate {
		return markdown.Render(w, root)
	}
	insert := bytes.Index(template, []byte(Marker))
	if insert < 0 {
		log.Warn("template has no marker, document not inserted", "marker", Marker)
		_, err := w.Write(template)
		return err
	}
	if _, err := w.Write(template[:insert]); err != nil {
		return err
	}
	if err := markdown.Render(w, root); err != nil {
		return err
	}
	_, err := w.Write(template[insert+len(Marker):])
	return err
}

// ToHTML converts a Markdown document to HTML. Raw HTML is kept because the
// renderer emits its own anchors and index lists.
func ToHTML(w io.Writer, md []byte) error {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	if err := engine.Convert(md, w); err != nil {
		return fmt.Errorf("convert to html: %w", err)
	}
	return nil
}
