package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		data := `{
			"id": "prod_1",
			"name": "Widget",
			"price": {"raw": 9.99, "formatted": "9.99", "formatted_with_symbol": "$9.99", "formatted_with_code": "9.99 USD"},
			"media": {"type": "image", "source": "https://cdn.example.com/widget.png"},
			"image": {"id": "ast_1", "url": "https://cdn.example.com/widget-large.png"},
			"description": "<p>A widget</p>"
		}`

		var p Product
		require.NoError(t, json.Unmarshal([]byte(data), &p))
		assert.Equal(t, "prod_1", p.ID)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, 9.99, p.Price.Raw)
		assert.Equal(t, "$9.99", p.Price.FormattedWithSymbol)
		assert.Equal(t, "https://cdn.example.com/widget.png", p.Media.Source)
		require.NotNil(t, p.Image)
		assert.Equal(t, "https://cdn.example.com/widget-large.png", p.Image.URL)
		assert.Equal(t, "<p>A widget</p>", p.Description)
		assert.Nil(t, p.Extra)
	})

	t.Run("missing fields are tolerated", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(`{"id": "prod_2"}`), &p))
		assert.Equal(t, "prod_2", p.ID)
		assert.Empty(t, p.Name)
		assert.Nil(t, p.Price)
		assert.Nil(t, p.Media)
		assert.Nil(t, p.Image)
		assert.Nil(t, p.Extra)
	})

	t.Run("extra fields pass through", func(t *testing.T) {
		data := `{"id": "prod_3", "permalink": "widget", "inventory": {"available": 4}}`

		var p Product
		require.NoError(t, json.Unmarshal([]byte(data), &p))
		require.Len(t, p.Extra, 2)
		assert.JSONEq(t, `"widget"`, string(p.Extra["permalink"]))
		assert.JSONEq(t, `{"available": 4}`, string(p.Extra["inventory"]))

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"permalink":"widget"`)
		assert.Contains(t, string(out), `"id":"prod_3"`)
	})

	t.Run("numeric string price", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(`{"id": "prod_4", "price": {"raw": "12.50"}}`), &p))
		require.NotNil(t, p.Price)
		assert.Equal(t, 12.5, p.Price.Raw)
	})

	t.Run("not an object", func(t *testing.T) {
		var p Product
		require.Error(t, json.Unmarshal([]byte(`["prod_5"]`), &p))
	})
}

func TestProductRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "absent fields stay absent",
			data: `{"id":"prod_1","name":"Widget","price":{"formatted":"$9.99"}}`,
		},
		{
			name: "nested unknown keys and value types are kept",
			data: `{
				"id": "prod_2",
				"price": {"raw": "12.50", "currency": "USD", "formatted_with_symbol": "$12.50"},
				"image": {"id": "ast_1", "url": "https://cdn.example.com/y.png", "filename": "y.png",
					"image_dimensions": {"width": 640, "height": 480}},
				"media": {"type": "image", "source": "https://cdn.example.com/y.png", "extra": null},
				"sort_order": 3
			}`,
		},
		{
			name: "empty object",
			data: `{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.data), &p))

			out, err := json.Marshal(p)
			require.NoError(t, err)
			assert.JSONEq(t, tt.data, string(out))
		})
	}

	t.Run("inside a list", func(t *testing.T) {
		data := `[{"id":"prod_1","price":{"raw":"1"}},{"id":"prod_2","media":{"source":"x","kind":"video"}}]`

		var products []Product
		require.NoError(t, json.Unmarshal([]byte(data), &products))
		out, err := json.Marshal(products)
		require.NoError(t, err)
		assert.JSONEq(t, data, string(out))
	})
}

func TestProductMarshal_Built(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Product{ID: "prod_1", Name: "Widget"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"prod_1","name":"Widget"}`, string(out))

	out, err = json.Marshal(Product{
		ID:    "prod_2",
		Price: &Price{Formatted: "$1.00"},
		Extra: map[string]json.RawMessage{"permalink": json.RawMessage(`"w"`)},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"prod_2","price":{"formatted":"$1.00"},"permalink":"w"}`, string(out))
}

func TestProductListUnmarshal(t *testing.T) {
	t.Parallel()

	data := `{"data": [{"id": "prod_1"}, {"id": "prod_2"}], "meta": {"pagination": {"total": 2}}}`

	var list ProductList
	require.NoError(t, json.Unmarshal([]byte(data), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "prod_1", list.Data[0].ID)
	assert.Equal(t, "prod_2", list.Data[1].ID)
	assert.JSONEq(t, `{"pagination": {"total": 2}}`, string(list.Meta))
}
