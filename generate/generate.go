// Package generate turns the enums of a header into lookup code.
package generate

import (
	"bufio"
	"context"
	"io"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/scylladb/go-set/strset"
	"go.uber.org/zap"

	"github.com/rdeusser/enumstr/clangast"
	"github.com/rdeusser/enumstr/render"
	"github.com/rdeusser/enumstr/walk"
)

var ErrNoInput = errors.New("no input file given")

// Options configure a Generator.
type Options struct {
	// Path is the header to scan. Only enums declared in it are emitted,
	// not those of the headers it includes.
	Path   string
	Render render.Config

	// Enums restricts the output to the named enums. Empty means all.
	Enums []string

	Clang  clangast.Config
	Logger *zap.Logger
}

// Generator emits one fragment per enum of a header.
type Generator struct {
	options  Options
	renderer *render.Renderer
	allow    *strset.Set
	logger   *zap.Logger
}

// New validates options. Nothing is parsed until Run or Parse is called.
func New(options Options) (*Generator, error) {
	if options.Path == "" {
		return nil, ErrNoInput
	}

	if options.Render.Template == "" {
		options.Render.Template = render.DefaultTemplate
	}

	renderer, err := render.NewRenderer(options.Render)
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	allow := strset.New()
	for _, name := range options.Enums {
		if name = strings.TrimSpace(name); name != "" {
			allow.Add(name)
		}
	}

	return &Generator{
		options:  options,
		renderer: renderer,
		allow:    allow,
		logger:   logger.Named("generate"),
	}, nil
}

// Options returns the options g was built with, defaults applied.
func (g *Generator) Options() Options {
	return g.options
}

// Parse runs clang over the input header.
func (g *Generator) Parse(ctx context.Context) (*clangast.Node, error) {
	return clangast.Parse(ctx, g.options.Path, g.options.Clang, g.logger.Named("clang"))
}

// Run parses the input header and writes the generated code to w.
func (g *Generator) Run(ctx context.Context, w io.Writer) error {
	root, err := g.Parse(ctx)
	if err != nil {
		return err
	}
	return g.Write(w, root)
}

// Write renders the enums of root to w, each followed by a blank line, in the
// order they are declared. Requested enums that were not found are logged,
// not reported as errors.
func (g *Generator) Write(w io.Writer, root *clangast.Node) error {
	var (
		bw    = bufio.NewWriter(w)
		found = strset.New()
	)

	for e := range g.enums(root) {
		if e.Name != "" {
			found.Add(e.Name)
		}

		if _, err := bw.WriteString(g.renderer.Render(e) + "\n\n"); err != nil {
			return errors.Wrap(err, "writing output")
		}

		g.logger.Debug("emitted enum",
			zap.String("enum", displayName(e.Name)),
			zap.Int("constants", len(e.Constants)),
		)
	}

	if missing := strset.Difference(g.allow, found); !missing.IsEmpty() {
		names := missing.List()
		sort.Strings(names)
		g.logger.Debug("requested enums not found", zap.Strings("enums", names))
	}

	return errors.Wrap(bw.Flush(), "writing output")
}

// List returns the names of the enums Write would emit. Anonymous enums are
// listed as "".
func (g *Generator) List(root *clangast.Node) []string {
	var names []string
	for e := range g.enums(root) {
		names = append(names, e.Name)
	}
	return names
}

func (g *Generator) target() string {
	return filepath.Clean(g.options.Path)
}

func (g *Generator) enums(root *clangast.Node) iter.Seq[render.Enum] {
	return func(yield func(render.Enum) bool) {
		target := g.target()
		superseded := walk.Superseded(root, target)

		for n := range walk.Select(walk.Enums(root, target), g.allow) {
			if superseded.Has(n.ID) {
				continue
			}

			e := render.Enum{Name: n.Name}
			for c := range walk.Constants(n) {
				e.Constants = append(e.Constants, c.Name)
			}

			if !yield(e) {
				return
			}
		}
	}
}

func displayName(name string) string {
	if name == "" {
		return "(anonymous)"
	}
	return name
}
