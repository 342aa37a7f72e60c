package knowledge

import "testing"

var indexSnippets = []Snippet{
	{Source: "market_analysis.txt", Text: "Villa prices on Palm Jumeirah appreciated strongly this year"},
	{Source: "market_analysis.txt", Text: "Apartment transaction volume in Downtown Dubai keeps climbing"},
	{Source: "market_analysis.txt", Text: "Analysts expect strong appreciation for villas in prime reinvestment zones"},
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := NewIndex(indexSnippets)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestSearchRanksRelevantSnippet(t *testing.T) {
	ix := testIndex(t)

	hits, err := ix.Search("apartment volume downtown", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].Text != indexSnippets[1].Text {
		t.Errorf("unexpected top hit: %q", hits[0].Text)
	}
}

func TestSearchHonorsTopK(t *testing.T) {
	ix := testIndex(t)

	hits, err := ix.Search("villas appreciation", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) > 1 {
		t.Errorf("expected at most 1 hit, got %d", len(hits))
	}
}

func TestSearchBlankQuery(t *testing.T) {
	ix := testIndex(t)

	hits, err := ix.Search("   ", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits != nil {
		t.Errorf("expected nil hits for blank query, got %v", hits)
	}
}
