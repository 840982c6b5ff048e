package render

import "strings"

const (
	// Placeholder is replaced with the enum name in a name template.
	Placeholder = "%e"

	DefaultTemplate = "StringFor" + Placeholder
)

// Title prepends prefix to template and replaces every Placeholder with name.
func Title(template, prefix, name string) string {
	return strings.ReplaceAll(prefix+template, Placeholder, name)
}
