package render

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrInvalidConstruct = errors.New("neither 'function' nor 'array' specified for construct")

// Construct selects the shape of the emitted lookup.
type Construct int

const (
	ConstructArray Construct = iota
	ConstructFunction
)

var constructNames = map[Construct]string{
	ConstructArray:    "array",
	ConstructFunction: "function",
}

// ParseConstruct resolves s to a Construct. Any case-insensitive prefix of
// "array" or "function" is accepted; the empty string is ambiguous.
func ParseConstruct(s string) (Construct, error) {
	lower := strings.ToLower(strings.TrimSpace(s))

	switch {
	case lower == "":
		return 0, errors.Wrap(ErrInvalidConstruct, "empty construct is ambiguous")
	case strings.HasPrefix("array", lower):
		return ConstructArray, nil
	case strings.HasPrefix("function", lower):
		return ConstructFunction, nil
	}

	return 0, errors.Wrapf(ErrInvalidConstruct, "%q", s)
}

func (c Construct) String() string {
	if name, ok := constructNames[c]; ok {
		return name
	}
	return "invalid"
}

// Set implements pflag.Value.
func (c *Construct) Set(s string) error {
	parsed, err := ParseConstruct(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *Construct) Type() string {
	return "construct"
}

// ConstructAlias is a boolean flag value that stores Value into Target when
// set, so that -c, --arr and --fun can share one destination and the last
// one given wins.
type ConstructAlias struct {
	Target *Construct
	Value  Construct
}

// Set implements pflag.Value.
func (a ConstructAlias) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return errors.Wrapf(ErrInvalidConstruct, "%q is not a boolean", s)
	}
	if on {
		*a.Target = a.Value
	}
	return nil
}

func (a ConstructAlias) String() string {
	return "false"
}

// Type implements pflag.Value. Reporting "bool" keeps the flag's usage line
// free of a value placeholder.
func (a ConstructAlias) Type() string {
	return "bool"
}
