package ranking

import (
	"reflect"
	"testing"

	"github.com/hyperjump/symptomatch/internal/models"
)

func testCatalog() []models.FAQEntry {
	return []models.FAQEntry{
		{Keyword: "fever", Symptoms: []string{"high temperature", "chills", "body ache"}},
		{Keyword: "cough", Symptoms: []string{"dry cough", "cough with phlegm", "sore throat"}},
		{Keyword: "covid", Symptoms: []string{"loss of smell", "loss of taste", "fever and dry cough"}},
		{Keyword: "hair fall", Symptoms: []string{"hair falling", "weight change"}},
		{Keyword: "cold", Symptoms: []string{"runny nose", "sneezing", "sore throat"}},
	}
}

func TestNewRanker(t *testing.T) {
	r := NewRanker(nil, nil)
	if r.Threshold() != 3 {
		t.Errorf("default threshold = %d, want 3", r.Threshold())
	}

	r = NewRanker(&ScoringConfig{AcceptThreshold: 5}, nil)
	if r.Threshold() != 5 {
		t.Errorf("threshold = %d, want 5", r.Threshold())
	}
	if r.config.KeywordPhrasePoints != 6 {
		t.Errorf("defaults not applied: %+v", r.config)
	}
}

func TestRanker_Match(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, testCatalog())

	tests := []struct {
		name        string
		query       string
		wantOK      bool
		wantKeyword string
		wantScore   int
		wantFull    int
	}{
		{
			name:        "romanized hindi fever and cough",
			query:       "mujhe bukhar aur khansi hai",
			wantOK:      true,
			wantKeyword: "cough",
			wantScore:   6,
		},
		{
			name:        "keyword phrase plus full symptom",
			query:       "I have fever and high temperature",
			wantOK:      true,
			wantKeyword: "fever",
			wantScore:   14,
			wantFull:    1,
		},
		{
			name:        "hindi hair fall via transliteration",
			query:       "मेरे बाल झड़ रहे हैं और वज़न बदल रहा है",
			wantOK:      true,
			wantKeyword: "hair fall",
			// phrase tokens: hair+fall (4); "hair falling" full (4); "weight change" full (4); bonus 6
			wantScore: 18,
			wantFull:  2,
		},
		{
			name:   "below threshold",
			query:  "nose",
			wantOK: false,
		},
		{
			name:   "empty",
			query:  "",
			wantOK: false,
		},
		{
			name:   "stopwords only",
			query:  "the of and with",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.query, idx)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v (result %+v)", tt.query, ok, tt.wantOK, got)
			}
			if !ok {
				if got.Entry != nil {
					t.Errorf("expected zero result on no match, got %+v", got)
				}
				return
			}
			if got.Keyword() != tt.wantKeyword {
				t.Errorf("keyword = %q, want %q", got.Keyword(), tt.wantKeyword)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.FullMatches != tt.wantFull {
				t.Errorf("full matches = %d, want %d", got.FullMatches, tt.wantFull)
			}
		})
	}
}

func TestRanker_FullMatchesDominateScore(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, []models.FAQEntry{
		{Keyword: "covid", Symptoms: []string{
			"fever cough headache fatigue weakness",
			"chills sweats nausea dizziness rash",
		}},
		{Keyword: "flu", Symptoms: []string{"runny nose", "sneezing"}},
	})
	query := "covid fever cough headache fatigue chills sweats nausea dizziness runny nose sneezing"

	cands := r.Explain(query, idx)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].FullMatches != 0 || !cands[0].KeywordPhrase || cands[0].Score <= cands[1].Score {
		t.Fatalf("fixture broken: %+v vs %+v", cands[0], cands[1])
	}

	got, ok := r.Match(query, idx)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Keyword() != "flu" || got.FullMatches != 2 {
		t.Errorf("got %q with %d full matches, want flu with 2", got.Keyword(), got.FullMatches)
	}
}

func TestRanker_TiesKeepCatalogOrder(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, []models.FAQEntry{
		{Keyword: "first", Symptoms: []string{"runny nose"}},
		{Keyword: "second", Symptoms: []string{"runny nose"}},
	})
	got, ok := r.Match("runny nose", idx)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Keyword() != "first" || got.Position != 0 {
		t.Errorf("got %q at %d, want first at 0", got.Keyword(), got.Position)
	}
}

func TestRanker_SkipsMalformedEntries(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, []models.FAQEntry{
		{Keyword: "  ", Symptoms: []string{"fever", "high temperature"}},
		{Keyword: "fever", Symptoms: []string{"high temperature"}},
	})
	if idx.Skipped() != 1 || idx.Len() != 1 || idx.Total() != 2 {
		t.Fatalf("skipped=%d len=%d total=%d", idx.Skipped(), idx.Len(), idx.Total())
	}
	got, ok := r.Match("fever with high temperature", idx)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Position != 1 {
		t.Errorf("position = %d, want 1", got.Position)
	}
}

func TestRanker_EmptyCatalog(t *testing.T) {
	r := NewRanker(nil, nil)
	if _, ok := r.Match("fever", NewIndex(nil, nil)); ok {
		t.Error("expected no match on empty catalog")
	}
	if _, ok := r.Match("fever", nil); ok {
		t.Error("expected no match on nil index")
	}
	if got := r.Explain("fever", nil); got != nil {
		t.Errorf("expected nil explain, got %v", got)
	}
}

func TestRanker_Idempotent(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, testCatalog())
	first, ok1 := r.Match("sneezing and runny nose with sore throat", idx)
	second, ok2 := r.Match("sneezing and runny nose with sore throat", idx)
	if ok1 != ok2 || !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if first.Keyword() != "cold" {
		t.Errorf("keyword = %q, want cold", first.Keyword())
	}
}

func TestIndex_FindByKeyword(t *testing.T) {
	idx := NewIndex(nil, testCatalog())
	if e := idx.FindByKeyword(" Fever "); e == nil || e.Keyword != "fever" {
		t.Errorf("FindByKeyword = %+v", e)
	}
	if e := idx.FindByKeyword("malaria"); e != nil {
		t.Errorf("expected nil, got %+v", e)
	}
	if e := idx.FindByKeyword(""); e != nil {
		t.Errorf("expected nil for empty keyword, got %+v", e)
	}
}

func TestEntryScorer_SymptomSignals(t *testing.T) {
	r := NewRanker(nil, nil)
	idx := NewIndex(nil, []models.FAQEntry{
		{Keyword: "cold", Symptoms: []string{"runny nose", "sore throat", "body ache"}},
	})
	cands := r.Explain("runny nose and sore", idx)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	wantMatches := []MatchType{MatchTypeFull, MatchTypePartial, MatchTypeNone}
	wantPoints := []int{4, 1, 0}
	for i, s := range c.Symptoms {
		if s.Match != wantMatches[i] || s.Points != wantPoints[i] {
			t.Errorf("symptom %q: match=%s points=%d, want %s %d",
				s.Phrase, s.Match, s.Points, wantMatches[i], wantPoints[i])
		}
	}
	if c.Score != 5 || c.Bonus != 0 {
		t.Errorf("score=%d bonus=%d, want 5 and 0", c.Score, c.Bonus)
	}
}

func TestMatchType_String(t *testing.T) {
	if MatchTypeFull.String() != "full" || MatchTypeNone.String() != "none" || MatchType(9).String() != "unknown" {
		t.Error("unexpected MatchType strings")
	}
}
