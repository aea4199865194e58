package models

import "errors"

// ErrCatalogFetch covers every way listing the catalog can fail:
// transport errors, rejected credentials and malformed responses.
var ErrCatalogFetch = errors.New("catalog fetch failed")
