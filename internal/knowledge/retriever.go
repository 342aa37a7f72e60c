package knowledge

import (
	"log/slog"
	"strings"
)

// companyKeywords route brand questions to the company profile instead
// of the market snippets.
var companyKeywords = []string{
	"company", "realestateco", "founder", "ceo", "head office", "who are you",
}

// Retriever combines the literal term lookup with the ranked index:
// exact matches win, the ranked search fills in when the literal lookup
// finds nothing, and company questions answer from the profile only.
type Retriever struct {
	store *Store
	index *Index
	topK  int
}

func NewRetriever(store *Store, index *Index, topK int) *Retriever {
	if topK <= 0 {
		topK = 2
	}
	return &Retriever{store: store, index: index, topK: topK}
}

// Context builds the context string for one utterance.
func (r *Retriever) Context(query string) string {
	if IsCompanyQuery(query) {
		return r.store.Profile()
	}

	if ctx := r.store.Context(query); ctx != "" {
		return ctx
	}

	if r.index == nil {
		return ""
	}

	ranked, err := r.index.Search(query, r.topK)
	if err != nil {
		slog.Warn("ranked search failed", "err", err)
		return ""
	}

	lines := make([]string, 0, len(ranked))
	for _, s := range ranked {
		lines = append(lines, s.Text)
	}
	return strings.Join(lines, "\n")
}

func IsCompanyQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range companyKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
