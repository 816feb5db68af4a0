package ranking

import (
	"strings"

	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/models"
)

type preparedSymptom struct {
	phrase string
	tokens lexicon.TokenSet
}

type preparedEntry struct {
	entry         *models.FAQEntry
	position      int
	keyword       string
	keywordTokens lexicon.TokenSet
	symptoms      []preparedSymptom
}

// Index holds catalog entries with their keyword and symptom token sets
// computed once. It is read-only after construction.
type Index struct {
	entries []preparedEntry
	total   int
}

// NewIndex tokenizes every valid entry. Entries without a keyword are
// skipped; they still count toward Total so positions stay catalog indices.
func NewIndex(lex *lexicon.Lexicon, entries []models.FAQEntry) *Index {
	if lex == nil {
		lex = lexicon.New()
	}
	idx := &Index{
		entries: make([]preparedEntry, 0, len(entries)),
		total:   len(entries),
	}
	for i := range entries {
		e := &entries[i]
		if !e.Valid() {
			continue
		}
		keyword := lexicon.Normalize(e.Keyword)
		p := preparedEntry{
			entry:         e,
			position:      i,
			keyword:       keyword,
			keywordTokens: lex.Tokenize(keyword),
			symptoms:      make([]preparedSymptom, 0, len(e.Symptoms)),
		}
		for _, s := range e.Symptoms {
			p.symptoms = append(p.symptoms, preparedSymptom{phrase: s, tokens: lex.Tokenize(s)})
		}
		idx.entries = append(idx.entries, p)
	}
	return idx
}

// Len returns the number of scoreable entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Total returns the number of entries given, including skipped ones.
func (i *Index) Total() int {
	if i == nil {
		return 0
	}
	return i.total
}

// Skipped returns the number of entries without a keyword.
func (i *Index) Skipped() int {
	return i.Total() - i.Len()
}

// FindByKeyword returns the entry whose keyword equals keyword, ignoring case
// and surrounding space.
func (i *Index) FindByKeyword(keyword string) *models.FAQEntry {
	target := strings.ToLower(strings.TrimSpace(keyword))
	if target == "" || i == nil {
		return nil
	}
	for _, p := range i.entries {
		if strings.ToLower(strings.TrimSpace(p.entry.Keyword)) == target {
			return p.entry
		}
	}
	return nil
}
