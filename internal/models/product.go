package models

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Product is one catalog item as returned by the commerce API.
//
// A decoded Product encodes back to the exact object the API sent, nested
// unknown keys and original value types included. Top-level fields that are
// not modelled here are also exposed in Extra.
type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Price       *Price `json:"price,omitempty"`
	Media       *Media `json:"media,omitempty"`
	Image       *Asset `json:"image,omitempty"`
	Description string `json:"description,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	raw json.RawMessage
}

type Price struct {
	Raw                 float64 `json:"raw,omitempty"`
	Formatted           string  `json:"formatted,omitempty"`
	FormattedWithSymbol string  `json:"formatted_with_symbol,omitempty"`
	FormattedWithCode   string  `json:"formatted_with_code,omitempty"`
}

type Media struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

type Asset struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// ProductList is the response of the list products call.
type ProductList struct {
	Data []Product      `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

var productFields = []string{"id", "name", "price", "media", "image", "description"}

type productAlias Product

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out productAlias
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	for _, key := range productFields {
		delete(raw, key)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	out.raw = bytes.Clone(data)

	*p = Product(out)
	return nil
}

// MarshalJSON returns the decoded bytes unchanged. Products built in code
// encode their set fields merged with Extra.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}

	known, err := json.Marshal(productAlias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(productFields))
	for k, v := range p.Extra {
		merged[k] = v
	}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

// UnmarshalJSON accepts raw as a number or a numeric string.
func (p *Price) UnmarshalJSON(data []byte) error {
	var wire struct {
		Raw                 any    `json:"raw"`
		Formatted           string `json:"formatted"`
		FormattedWithSymbol string `json:"formatted_with_symbol"`
		FormattedWithCode   string `json:"formatted_with_code"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*p = Price{
		Raw:                 cast.ToFloat64(wire.Raw),
		Formatted:           wire.Formatted,
		FormattedWithSymbol: wire.FormattedWithSymbol,
		FormattedWithCode:   wire.FormattedWithCode,
	}
	return nil
}
