package domain

import "context"

type CatalogSource interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type CatalogStore interface {
	CatalogSource
	UpsertCatalog(ctx context.Context, c Catalog) error
}

// Page kinds, used as metric labels and in logs.
const (
	KindReview     = "review"
	KindComparison = "comparison"
	KindRanking    = "ranking"
	KindGuide      = "guide"
	KindTable      = "table"
	KindIndex      = "index"
)

// Page is one generated HTML document. Path is relative to the site root and uses forward slashes.
type Page struct {
	Kind string
	Path string
	HTML string
}

type PageWriter interface {
	WritePages(ctx context.Context, pages []Page) error
}

type LinkChecker interface {
	Check(ctx context.Context, url string) (status int, err error)
}

type Publisher interface {
	Publish(ctx context.Context, root string) (uploaded int, err error)
}
