package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// ProductLister is the mounted product list the handlers read from.
type ProductLister interface {
	Products() []models.Product
	Mounted() bool
	RenderPage(w io.Writer) error
}

type Controller interface {
	Index(c echo.Context) error
	ListProducts(c echo.Context, req ListProductsRequest) ([]models.Product, error)
	Health(c echo.Context) error
}

type ListProductsRequest struct {
	// Limit caps the number of products returned, 0 returns all of them.
	Limit int `query:"limit" validate:"gte=0,lte=200"`
}

type controller struct {
	products ProductLister
}

func NewHandler(products ProductLister) Controller {
	return &controller{
		products: products,
	}
}

// Index renders the product list page from the current state. It never
// triggers a catalog fetch.
func (h *controller) Index(c echo.Context) error {
	buf := new(bytes.Buffer)
	if err := h.products.RenderPage(buf); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *controller) ListProducts(c echo.Context, req ListProductsRequest) ([]models.Product, error) {
	products := h.products.Products()
	if req.Limit > 0 && req.Limit < len(products) {
		products = products[:req.Limit]
	}
	return products, nil
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "storefront",
		"mounted": h.products.Mounted(),
	})
}
