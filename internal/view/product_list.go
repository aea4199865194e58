package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	log "github.com/nguyentranbao-ct/storefront/pkg/logger/logctx"
	"github.com/nguyentranbao-ct/storefront/pkg/tmplx"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

const pageTitle = "Products"

// CatalogClient is the catalog read operation the view depends on.
type CatalogClient interface {
	ListProducts(ctx context.Context) (*models.ProductList, error)
}

// ProductListView fetches the catalog once per mount and renders one card per product.
//
// State is the empty list until the fetch of the current mount succeeds, then the
// latest response. A fetch that completes after Unmount is dropped.
type ProductListView struct {
	client CatalogClient
	list   *tmplx.Template
	page   *tmplx.Template

	mu       sync.RWMutex
	products []models.Product
	mount    *mount
}

// mount is the liveness token of one Mount call.
type mount struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProductListView returns an unmounted view with an empty product list.
func NewProductListView(client CatalogClient) (*ProductListView, error) {
	if client == nil {
		return nil, errors.New("catalog client is required")
	}

	card, err := NewProductCard()
	if err != nil {
		return nil, err
	}
	list, err := tmplx.Parse("product_list", productListTemplate,
		tmplx.WithTemplateFunc("card", card.Render))
	if err != nil {
		return nil, fmt.Errorf("parse product list template: %w", err)
	}
	page, err := tmplx.Parse("page", pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	return &ProductListView{
		client:   client,
		list:     list,
		page:     page,
		products: []models.Product{},
	}, nil
}

// Mount starts the catalog fetch and returns a channel closed once it settles.
// Mounting a mounted view returns the pending channel without fetching again.
func (v *ProductListView) Mount(ctx context.Context) <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mount != nil {
		return v.mount.done
	}

	// the fetch outlives the caller's context, only Unmount stops it
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m := &mount{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	v.mount = m

	go v.fetch(fetchCtx, m)
	return m.done
}

func (v *ProductListView) fetch(ctx context.Context, m *mount) {
	defer close(m.done)

	res, err := v.client.ListProducts(ctx)

	v.mu.Lock()
	live := v.mount == m
	if live && err == nil {
		v.products = productsOf(res)
	}
	count := len(v.products)
	v.mu.Unlock()

	switch {
	case !live:
		log.Debugw(ctx, "view unmounted, dropping catalog response")
	case err != nil:
		log.Errorw(ctx, "catalog fetch failed, keeping current products",
			"error", err,
			"products_count", count)
	default:
		log.Infow(ctx, "catalog fetched", "products_count", count)
	}
}

func productsOf(res *models.ProductList) []models.Product {
	if res == nil || res.Data == nil {
		return []models.Product{}
	}
	return res.Data
}

// Unmount cancels a pending fetch and discards the state.
func (v *ProductListView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mount == nil {
		return
	}
	v.mount.cancel()
	v.mount = nil
	v.products = []models.Product{}
}

// Mounted reports whether Mount was called without a matching Unmount.
func (v *ProductListView) Mounted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mount != nil
}

// Products returns a snapshot of the current list.
func (v *ProductListView) Products() []models.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.Product, len(v.products))
	copy(out, v.products)
	return out
}

// Cards returns one CardProps per product, in response order.
func (v *ProductListView) Cards() []CardProps {
	return util.ConvertList(v.Products(), NewCardProps)
}

// Render writes the product container with one card per product.
func (v *ProductListView) Render(w io.Writer) error {
	return v.list.Execute(w, v.Cards())
}

// RenderPage writes a complete HTML document around Render.
func (v *ProductListView) RenderPage(w io.Writer) error {
	list, err := v.list.RenderHTML(v.Cards())
	if err != nil {
		return err
	}
	return v.page.Execute(w, struct {
		Title string
		List  template.HTML
	}{
		Title: pageTitle,
		List:  list,
	})
}
