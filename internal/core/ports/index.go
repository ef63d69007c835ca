package ports

// IndexWriter renders the static index pages.
//
//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type IndexWriter interface {
	// WriteIndex regenerates the root page and the page of every package.
	WriteIndex(packages []string) error
}
