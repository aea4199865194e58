package view

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/tmplx"
)

var (
	//go:embed templates/card.html
	cardTemplate string
	//go:embed templates/product_list.html
	productListTemplate string
	//go:embed templates/page.html
	pageTemplate string
)

// CardProps are the inputs of one card: the render key and every field of the record.
type CardProps struct {
	Key string
	models.Product
}

// NewCardProps keys the card by product id and passes the record through as is.
func NewCardProps(p models.Product) CardProps {
	return CardProps{Key: p.ID, Product: p}
}

// ImageURL is the first http(s) source of image.url and media.source, or "".
func (p CardProps) ImageURL() string {
	var candidates []string
	if p.Image != nil {
		candidates = append(candidates, p.Image.URL)
	}
	if p.Media != nil {
		candidates = append(candidates, p.Media.Source)
	}
	for _, src := range candidates {
		if isHTTPURL(src) {
			return src
		}
	}
	return ""
}

// PriceText is formatted_with_symbol, falling back to formatted.
func (p CardProps) PriceText() string {
	if p.Price == nil {
		return ""
	}
	if p.Price.FormattedWithSymbol != "" {
		return p.Price.FormattedWithSymbol
	}
	return p.Price.Formatted
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ProductCard renders one product record.
type ProductCard struct {
	tmpl *tmplx.Template
}

func NewProductCard() (*ProductCard, error) {
	sample := NewCardProps(models.Product{ID: "prod_sample", Name: "Sample"})
	tmpl, err := tmplx.Parse("card", cardTemplate,
		tmplx.WithValidate(sample, func(buf *bytes.Buffer) error {
			if !strings.Contains(buf.String(), `data-key="prod_sample"`) {
				return fmt.Errorf("card does not carry its key")
			}
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse card template: %w", err)
	}
	return &ProductCard{tmpl: tmpl}, nil
}

// Render returns the card markup as a fragment safe to embed in the list.
func (c *ProductCard) Render(props CardProps) (template.HTML, error) {
	return c.tmpl.RenderHTML(props)
}
