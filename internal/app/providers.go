package app

import (
	"github.com/nguyentranbao-ct/storefront/internal/repo/commerce"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/view"
)

func newCatalogClient(c commerce.Client) view.CatalogClient {
	return c
}

func newProductLister(v *view.ProductListView) server.ProductLister {
	return v
}
