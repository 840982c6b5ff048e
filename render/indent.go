package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultIndent is four spaces.
const DefaultIndent = "4s"

var (
	ErrInvalidIndent = errors.New("neither tabs nor spaces specified for indentation")

	indentPattern = regexp.MustCompile(`^(\d*)([st])$`)
)

// ParseIndent turns a value such as "4s" or "t" into the indentation unit it
// names: a count (default 1) of spaces ('s') or tabs ('t').
func ParseIndent(value string) (string, error) {
	m := indentPattern.FindStringSubmatch(value)
	if m == nil {
		err := errors.Wrapf(ErrInvalidIndent, "%q", value)
		return "", errors.WithHint(err, "use digits followed by 's' or 't', e.g. 4s or 1t")
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", errors.Wrapf(ErrInvalidIndent, "%q: %v", value, err)
		}
		count = n
	}

	unit := " "
	if m[2] == "t" {
		unit = "\t"
	}

	return strings.Repeat(unit, count), nil
}
