package knowledge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
)

// Index is an in-memory full-text index over the store's snippets. It
// backs the ranked top-k search used when the literal term lookup comes
// up empty.
type Index struct {
	idx  bleve.Index
	byID map[string]Snippet
}

func NewIndex(snippets []Snippet) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	ix := &Index{idx: idx, byID: make(map[string]Snippet, len(snippets))}

	for i, s := range snippets {
		id := strconv.Itoa(i)
		if err := idx.Index(id, s); err != nil {
			return nil, fmt.Errorf("index snippet %s: %w", s.Source, err)
		}
		ix.byID[id] = s
	}

	return ix, nil
}

// Search returns up to k snippets ranked by relevance to the query.
func (ix *Index) Search(query string, k int) ([]Snippet, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), k, 0, false)
	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Snippet, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if s, ok := ix.byID[hit.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (ix *Index) Close() error { return ix.idx.Close() }
