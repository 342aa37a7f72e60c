// Package knowledge loads the flat CSV/TXT knowledge base and answers
// context queries for the prompt builder.
package knowledge

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProfileFile is the one TXT file treated as the company profile rather
// than as line-by-line snippets.
const ProfileFile = "about_company.txt"

// Snippet is a single line or CSV row, tagged with the file it came
// from. Snippets are immutable after load.
type Snippet struct {
	Source string
	Text   string
}

type Store struct {
	snippets []Snippet
	profile  string
}

// NewStore builds a store from already-loaded snippets. Used by Load
// and by tests that don't want to touch the filesystem.
func NewStore(snippets []Snippet, profile string) *Store {
	return &Store{snippets: snippets, profile: profile}
}

// Load reads every .csv and .txt file under dir once. Any unreadable or
// malformed file is an error; callers treat that as fatal since the
// knowledge base is assumed present.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read knowledge dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	st := &Store{}

	for _, name := range names {
		path := filepath.Join(dir, name)

		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv":
			rows, err := loadCSV(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", name, err)
			}
			for _, row := range rows {
				st.snippets = append(st.snippets, Snippet{Source: name, Text: row})
			}

		case ".txt":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", name, err)
			}
			if name == ProfileFile {
				st.profile = strings.TrimSpace(string(data))
				continue
			}
			for _, line := range strings.Split(string(data), "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				st.snippets = append(st.snippets, Snippet{Source: name, Text: line})
			}
		}
	}

	return st, nil
}

// loadCSV renders each data row as "header: value" pairs so a row reads
// as one searchable line of text.
func loadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]string, 0, len(records)-1)

	for _, rec := range records[1:] {
		parts := make([]string, 0, len(rec))
		for i, field := range rec {
			parts = append(parts, fmt.Sprintf("%s: %s", header[i], field))
		}
		rows = append(rows, strings.Join(parts, ", "))
	}

	return rows, nil
}

// Snippets returns the loaded snippets in file order.
func (st *Store) Snippets() []Snippet { return st.snippets }

// Profile returns the company profile text, empty when the profile file
// was absent.
func (st *Store) Profile() string { return st.profile }

// Lookup returns every snippet whose text contains all significant
// query terms, case-insensitively. Stop words and one-character tokens
// don't count as terms. An empty result is valid; Lookup never errors.
func (st *Store) Lookup(query string) []Snippet {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil
	}

	var out []Snippet
	for _, s := range st.snippets {
		text := strings.ToLower(s.Text)
		all := true
		for _, t := range terms {
			if !strings.Contains(text, t) {
				all = false
				break
			}
		}
		if all {
			out = append(out, s)
		}
	}
	return out
}

// Context concatenates the texts of the matching snippets into the
// context string the prompt builder consumes. Empty when nothing
// matched.
func (st *Store) Context(query string) string {
	matches := st.Lookup(query)
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m.Text)
	}
	return strings.Join(lines, "\n")
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true,
	"at": true, "of": true, "for": true, "to": true, "is": true,
	"are": true, "and": true, "or": true, "with": true, "do": true,
	"does": true, "what": true, "who": true, "how": true, "my": true,
	"your": true, "me": true, "about": true,
}

func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
