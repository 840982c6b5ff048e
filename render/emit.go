// Package render turns enums into Objective-C or C code that maps each
// constant to its name.
package render

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/rdeusser/enumstr/safepool"
)

// Enum is an enum declaration reduced to what the emitters need.
type Enum struct {
	// Name is empty for an anonymous enum.
	Name      string
	Constants []string
}

const templateText = `
{{- define "array" -}}
{{ .Dialect.StringType }} const {{ .Title }}[] = {
{{- with .Constants }}
{{ indent (include "elements" $) $.Indent }}
{{- end }}
};
{{- end }}

{{- define "elements" -}}
{{ range $i, $c := .Constants }}{{ if $i }},
{{ end }}[{{ $c }}]={{ $.Dialect.Quote $c }}{{ end }}
{{- end }}

{{- define "function" -}}
{{ .Dialect.StringType }} {{ .Title }}({{ .Enum }} val) {
{{ indent (include "switch" .) .Indent }}
}
{{- end }}

{{- define "switch" -}}
switch (val) {
{{ indent (include "cases" .) .Indent }}
}
{{- end }}

{{- define "cases" -}}
{{ range .Constants }}case {{ . }}:
{{ $.Indent }}return {{ $.Dialect.Quote . }};
{{ end }}default:
{{ .Indent }}return {{ .Dialect.Quote "" }};
{{- end }}

{{- define "anonymous" -}}
{{ range $i, $c := .Constants }}{{ if $i }}
{{ end }}{{ $.Dialect.StringType }} const {{ title $.Title $c }} = {{ $.Dialect.Quote $c }};{{ end }}
{{- end }}
`

var (
	bufPool = safepool.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

	templates *template.Template
)

func init() {
	templates = template.Must(template.New("").Funcs(template.FuncMap{
		"include": include,
		"indent":  indentLines,
		"title":   func(tmpl, name string) string { return Title(tmpl, "", name) },
	}).Parse(templateText))
}

type fragment struct {
	Dialect   Dialect
	Title     string
	Enum      string
	Constants []string
	Indent    string
}

func include(name string, data any) (string, error) {
	buf := bufPool.Get()
	buf.Reset()
	defer bufPool.Put(buf)

	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// execute runs one of the built-in templates. They only fail on a
// programming error.
func execute(name string, f fragment) string {
	s, err := include(name, f)
	if err != nil {
		panic(err)
	}
	return s
}

// indentLines prefixes every line of s with indent.
func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Array renders e as a constant array indexed by the enum constants:
//
//	NSString * const StringForColor[] = {
//	    [Red]=@"Red",
//	    [Green]=@"Green"
//	};
func Array(e Enum, title, indent string, d Dialect) string {
	return execute("array", fragment{
		Dialect:   d,
		Title:     title,
		Enum:      e.Name,
		Constants: e.Constants,
		Indent:    indent,
	})
}

// Function renders e as a function that switches over the enum. The default
// case returns an empty string so values outside the enum are handled too:
//
//	NSString * StringForColor(Color val) {
//	    switch (val) {
//	        case Red:
//	            return @"Red";
//	        default:
//	            return @"";
//	    }
//	}
func Function(e Enum, title, indent string, d Dialect) string {
	return execute("function", fragment{
		Dialect:   d,
		Title:     title,
		Enum:      e.Name,
		Constants: e.Constants,
		Indent:    indent,
	})
}

// Anonymous renders one string constant per enum constant. There is no enum
// name to build a title from, so the placeholder in template is replaced with
// each constant's own name:
//
//	NSString * const StringForA = @"A";
func Anonymous(e Enum, template, prefix string, d Dialect) string {
	return execute("anonymous", fragment{
		Dialect:   d,
		Title:     prefix + template,
		Constants: e.Constants,
	})
}
