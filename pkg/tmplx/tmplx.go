package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/spf13/cast"
)

var (
	ErrRenderTemplate = errors.New("tmplx: render error")
	ErrParseTemplate  = errors.New("tmplx: parse error")
)

// Template is an html/template with contextual escaping and a small func set.
type Template struct {
	tmpl *template.Template
}

type Options struct {
	validate ValidateFunc
	testData any
	funcs    template.FuncMap
}

type Option func(*Options) error

type ValidateFunc func(*bytes.Buffer) error

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"default":   defaultFunc,
		"hasPrefix": hasPrefix,
		"hasSuffix": hasSuffix,
	}
}

// WithTemplateFunc adds a single custom template function
func WithTemplateFunc(name string, fn any) Option {
	return func(t *Options) error {
		if fn == nil {
			return fmt.Errorf("%w: nil func %q", ErrParseTemplate, name)
		}
		t.funcs[name] = fn
		return nil
	}
}

// WithValidate renders testData right after parsing and hands the output to validateFn.
func WithValidate(testData any, validateFn ValidateFunc) Option {
	return func(t *Options) error {
		t.validate = validateFn
		t.testData = testData
		return nil
	}
}

func MustParse(name string, text string, opts ...Option) *Template {
	t, err := Parse(name, text, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func Parse(name string, text string, args ...Option) (*Template, error) {
	opts := &Options{
		funcs: defaultFuncs(),
	}
	for _, arg := range args {
		if err := arg(opts); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(opts.funcs).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	t := &Template{
		tmpl: tmpl,
	}
	if opts.validate != nil {
		if err := t.validate(opts.testData, opts.validate); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Template) validate(data any, validate ValidateFunc) error {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	if err := validate(buf); err != nil {
		return fmt.Errorf("validate template: %w", err)
	}
	return nil
}

func (t *Template) Render(data any) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderHTML renders data as an already escaped fragment to embed in another template.
func (t *Template) RenderHTML(data any) (template.HTML, error) {
	buf, err := t.Render(data)
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (t *Template) Execute(w io.Writer, data any) error {
	if err := t.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return nil
}

func hasSuffix(a, b any) bool {
	s1 := cast.ToString(a)
	s2 := cast.ToString(b)
	return strings.HasSuffix(s1, s2)
}

func hasPrefix(a, b any) bool {
	s1 := cast.ToString(a)
	s2 := cast.ToString(b)
	return strings.HasPrefix(s1, s2)
}

func defaultFunc(def any, value any) any {
	if value != nil && value != "" {
		return value
	}
	return def
}
