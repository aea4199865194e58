package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindHeader(t *testing.T) {
	type args struct {
		header map[string]string
		out    interface{}
	}

	type normalCase struct {
		Storefront string `header:"x-storefront"`
		Locale     string `header:"accept-language"`

		Non   string `header:"-"`
		Empty bool
	}

	type complexCase struct {
		Nine              int64   `header:"nine"`
		ThousandAndSeven  uint64  `header:"thousand-and-seven"`
		NegativeThirtyTwo int64   `header:"negative-thirty-two"`
		HundredPointSix   float32 `header:"hundred-point-six"`
		Missing           int     `header:"missing"`
	}

	tests := []struct {
		name string
		args args
		want interface{}
	}{
		{
			name: "normal bind header",
			args: args{
				header: map[string]string{
					"x-storefront":    "web",
					"accept-language": "en",
					"non":             "non",
					"empty":           "empty",
				},
				out: new(normalCase),
			},
			want: &normalCase{
				Storefront: "web",
				Locale:     "en",
			},
		},
		{
			name: "complex bind header",
			args: args{
				header: map[string]string{
					"nine":                "9",
					"thousand-and-seven":  "1007",
					"negative-thirty-two": "-32",
					"hundred-point-six":   "100.6",
				},
				out: &complexCase{Missing: 7},
			},
			want: &complexCase{
				Nine:              9,
				ThousandAndSeven:  1007,
				NegativeThirtyTwo: -32,
				HundredPointSix:   100.6,
				Missing:           7,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.args.header {
				header.Set(k, v)
			}
			err := bindHeader(header, tt.args.out)
			assert.NoError(t, err)
			assert.EqualValues(t, tt.want, tt.args.out)
		})
	}
}

func TestBindHeader_Errors(t *testing.T) {
	type invalidCase struct {
		Enabled bool `header:"enabled"`
	}

	header := http.Header{}
	header.Set("enabled", "not boolean")
	err := bindHeader(header, new(invalidCase))
	assert.ErrorContains(t, err, "cannot parse invalidCase.Enabled as bool")

	assert.Error(t, bindHeader(header, invalidCase{}))
}

func TestBindAndValidate(t *testing.T) {
	type request struct {
		Limit  int    `query:"limit" validate:"gte=0,lte=10"`
		Locale string `header:"accept-language"`
	}

	newContext := func(target string) echo.Context {
		e := echo.New()
		e.Validator = NewValidator()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept-Language", "vi")
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("valid", func(t *testing.T) {
		var req request
		require.NoError(t, BindAndValidate(newContext("/products?limit=3"), &req))
		assert.Equal(t, request{Limit: 3, Locale: "vi"}, req)
	})

	t.Run("invalid query value", func(t *testing.T) {
		var req request
		err := BindAndValidate(newContext("/products?limit=abc"), &req)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("fails validation", func(t *testing.T) {
		var req request
		err := BindAndValidate(newContext("/products?limit=11"), &req)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Contains(t, he.Message, "limit")
	})
}
