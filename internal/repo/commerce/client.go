package commerce

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

const (
	HeaderAuthorization = "X-Authorization"
	productsPath        = "/products"
)

// Client reads the hosted commerce catalog.
type Client interface {
	ListProducts(ctx context.Context) (*models.ProductList, error)
}

type client struct {
	http    *resty.Client
	latency *prometheus.HistogramVec
}

func NewClient(conf *config.Config) (Client, error) {
	cfg := conf.Commerce
	if cfg.PublicKey == "" {
		return nil, fmt.Errorf("commerce public key is required")
	}

	latency, err := util.GetHistogramVec(
		"catalog_fetch_duration_seconds",
		"Time spent listing products from the commerce API",
		"result",
	)
	if err != nil {
		return nil, fmt.Errorf("catalog metrics: %w", err)
	}

	httpClient := util.NewRestyClient(util.RestyOptions{
		Logger:     logger.MustNamed("commerce").Unwrap(),
		Timeout:    cfg.Timeout,
		RetryCount: cfg.RetryCount,
	}).
		SetBaseURL(cfg.BaseURL).
		SetHeader(HeaderAuthorization, cfg.PublicKey).
		SetHeader("Accept", "application/json")

	return &client{
		http:    httpClient,
		latency: latency,
	}, nil
}

func (c *client) ListProducts(ctx context.Context) (*models.ProductList, error) {
	start := time.Now()
	list, err := c.listProducts(ctx)

	result := "ok"
	if err != nil {
		result = "error"
	}
	c.latency.WithLabelValues(result).Observe(time.Since(start).Seconds())

	return list, err
}

func (c *client) listProducts(ctx context.Context) (*models.ProductList, error) {
	resp, err := c.http.R().SetContext(ctx).Get(productsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %w", models.ErrCatalogFetch, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
			return nil, fmt.Errorf("%w: status %d: %s", models.ErrCatalogFetch, resp.StatusCode(), msg)
		}
		return nil, fmt.Errorf("%w: status %d", models.ErrCatalogFetch, resp.StatusCode())
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: response has no data array", models.ErrCatalogFetch)
	}

	list := &models.ProductList{Data: []models.Product{}}
	if err := json.Unmarshal([]byte(data.Raw), &list.Data); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", models.ErrCatalogFetch, err)
	}
	if meta := gjson.GetBytes(body, "meta"); meta.Exists() {
		list.Meta = json.RawMessage(meta.Raw)
	}

	return list, nil
}
