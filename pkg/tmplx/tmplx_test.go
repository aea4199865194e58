package tmplx

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("with template func", func(t *testing.T) {
		tmpl, err := Parse("test", `{{custom}}`,
			WithTemplateFunc("custom", func() string { return "custom" }))
		require.NoError(t, err)

		buf, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "custom", strings.TrimSpace(buf.String()))
	})

	t.Run("nil template func", func(t *testing.T) {
		_, err := Parse("test", `{{custom}}`, WithTemplateFunc("custom", nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseTemplate)
	})

	t.Run("with validation", func(t *testing.T) {
		testData := map[string]string{"name": "test"}
		validateFn := func(buf *bytes.Buffer) error {
			if buf.String() != "test" {
				return fmt.Errorf("expected 'test', got '%s'", buf.String())
			}
			return nil
		}

		tmpl, err := Parse("test", `{{.name}}`, WithValidate(testData, validateFn))
		require.NoError(t, err)

		buf, err := tmpl.Render(testData)
		require.NoError(t, err)
		assert.Equal(t, "test", buf.String())
	})

	t.Run("merge with default funcs", func(t *testing.T) {
		tmpl, err := Parse("test", `{{custom}} {{default "x" ""}}`,
			WithTemplateFunc("custom", func() string { return "custom" }))
		require.NoError(t, err)

		buf, err := tmpl.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, `custom x`, strings.TrimSpace(buf.String()))
	})
}

func TestEscaping(t *testing.T) {
	t.Parallel()

	t.Run("text is escaped", func(t *testing.T) {
		buf, err := MustParse("", `<p>{{.}}</p>`).Render("<script>alert(1)</script>")
		require.NoError(t, err)
		assert.Equal(t, "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>", buf.String())
	})

	t.Run("unsafe url is filtered", func(t *testing.T) {
		buf, err := MustParse("", `<img src="{{.}}">`).Render("javascript:alert(1)")
		require.NoError(t, err)
		assert.Equal(t, `<img src="#ZgotmplZ">`, buf.String())
	})

	t.Run("fragment is embedded as is", func(t *testing.T) {
		inner := MustParse("inner", `<b>{{.}}</b>`)
		outer := MustParse("outer", `<div>{{inner .}}</div>`,
			WithTemplateFunc("inner", inner.RenderHTML))

		buf, err := outer.Render("a&b")
		require.NoError(t, err)
		assert.Equal(t, "<div><b>a&amp;b</b></div>", buf.String())
	})
}

func TestCustomFunctions(t *testing.T) {
	t.Parallel()

	t.Run("hasSuffix function", func(t *testing.T) {
		template := `{{if hasSuffix .text ".jpg"}}is image{{else}}not image{{end}}`
		data := map[string]any{
			"text": "photo.jpg",
		}

		tmpl := MustParse("", template)
		buf, err := tmpl.Render(data)
		require.NoError(t, err)
		assert.Equal(t, "is image", strings.TrimSpace(buf.String()))
	})

	t.Run("hasPrefix function", func(t *testing.T) {
		template := `{{if hasPrefix .text "https://"}}is secure{{else}}not secure{{end}}`
		data := map[string]any{
			"text": "https://example.com",
		}

		tmpl := MustParse("", template)
		buf, err := tmpl.Render(data)
		require.NoError(t, err)
		assert.Equal(t, "is secure", strings.TrimSpace(buf.String()))
	})

	t.Run("default function", func(t *testing.T) {
		template := `{{default "anonymous" .name}}`

		t.Run("with empty value", func(t *testing.T) {
			data := map[string]any{"name": ""}
			tmpl := MustParse("", template)
			buf, err := tmpl.Render(data)
			require.NoError(t, err)
			assert.Equal(t, "anonymous", strings.TrimSpace(buf.String()))
		})

		t.Run("with non-empty value", func(t *testing.T) {
			data := map[string]any{"name": "john"}
			tmpl := MustParse("", template)
			buf, err := tmpl.Render(data)
			require.NoError(t, err)
			assert.Equal(t, "john", strings.TrimSpace(buf.String()))
		})
	})
}

func TestTemplateValidation(t *testing.T) {
	t.Parallel()

	t.Run("failed validation", func(t *testing.T) {
		testData := map[string]any{
			"name": "invalid",
		}

		validateFn := func(buf *bytes.Buffer) error {
			if !strings.Contains(buf.String(), "john") {
				return fmt.Errorf("expected name 'john' in output")
			}
			return nil
		}

		_, err := Parse("test", `Name: {{.name}}`, WithValidate(testData, validateFn))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected name 'john' in output")
	})
}

func TestTemplateRenderError(t *testing.T) {
	t.Parallel()

	t.Run("no missing required field", func(t *testing.T) {
		tmpl := MustParse("test", `Hello {{.name}}`)

		text, err := tmpl.Render(map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "Hello ", text.String())
	})

	t.Run("failing func", func(t *testing.T) {
		tmpl := MustParse("test", `{{boom}}`,
			WithTemplateFunc("boom", func() (template.HTML, error) { return "", fmt.Errorf("boom") }))

		_, err := tmpl.Render(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRenderTemplate)
	})
}

func TestTemplateParseError(t *testing.T) {
	t.Parallel()

	t.Run("invalid template syntax", func(t *testing.T) {
		_, err := Parse("test", `Hello {{.name`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseTemplate)
	})

	t.Run("invalid function", func(t *testing.T) {
		_, err := Parse("test", `Hello {{.name | invalidFunc}}`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseTemplate)
	})
}
