package render

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rdeusser/enumstr/clangast"
)

var ErrInvalidDialect = errors.New("unknown language")

// Dialect is the language the emitted code is written in.
type Dialect int

const (
	DialectObjC Dialect = iota
	DialectC
)

// ParseDialect accepts "objc" (or "objective-c") and "c".
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "objc", "objective-c", "":
		return DialectObjC, nil
	case "c":
		return DialectC, nil
	}
	return 0, errors.Wrapf(ErrInvalidDialect, "%q (supported: objc, c)", s)
}

func (d Dialect) String() string {
	if d == DialectC {
		return "c"
	}
	return "objc"
}

// Language is the clang -x language headers in this dialect are parsed as.
func (d Dialect) Language() string {
	if d == DialectC {
		return clangast.LanguageC
	}
	return clangast.LanguageObjC
}

// StringType is the type of the emitted names, spelled so that
// "<StringType> const <name>" declares a constant.
func (d Dialect) StringType() string {
	if d == DialectC {
		return "const char *"
	}
	return "NSString *"
}

// Quote returns s as a string literal.
func (d Dialect) Quote(s string) string {
	if d == DialectC {
		return strconv.Quote(s)
	}
	return "@" + strconv.Quote(s)
}
