package render

import (
	"github.com/cockroachdb/errors"
)

// Config holds the resolved rendering options.
type Config struct {
	Construct Construct
	// Indent is the literal indentation unit, see ParseIndent.
	Indent   string
	Template string
	Prefix   string
	Dialect  Dialect
}

type emitFunc func(e Enum, title, indent string, d Dialect) string

// Renderer renders enums with a fixed Config. It is safe for concurrent use.
type Renderer struct {
	cfg  Config
	emit emitFunc
}

// NewRenderer picks the emitter for cfg.Construct.
func NewRenderer(cfg Config) (*Renderer, error) {
	r := &Renderer{cfg: cfg}

	switch cfg.Construct {
	case ConstructArray:
		r.emit = Array
	case ConstructFunction:
		r.emit = Function
	default:
		return nil, errors.Wrapf(ErrInvalidConstruct, "construct %d", int(cfg.Construct))
	}

	if cfg.Dialect != DialectObjC && cfg.Dialect != DialectC {
		return nil, errors.Wrapf(ErrInvalidDialect, "dialect %d", int(cfg.Dialect))
	}

	return r, nil
}

// Config returns the configuration r was built with.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render returns the code for e. Anonymous enums always render as one
// constant per enum constant.
func (r *Renderer) Render(e Enum) string {
	if e.Name == "" {
		return Anonymous(e, r.cfg.Template, r.cfg.Prefix, r.cfg.Dialect)
	}

	return r.emit(e, Title(r.cfg.Template, r.cfg.Prefix, e.Name), r.cfg.Indent, r.cfg.Dialect)
}
