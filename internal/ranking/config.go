package ranking

// ScoringConfig holds the point values of the FAQ scoring signals.
type ScoringConfig struct {
	// Keyword signals
	KeywordPhrasePoints    int `yaml:"keyword_phrase_points"`     // default: 6
	KeywordAllTokensPoints int `yaml:"keyword_all_tokens_points"` // default: 4
	KeywordTokenPoints     int `yaml:"keyword_token_points"`      // default: 2 (per overlapping token)

	// Symptom signals
	SymptomFullPoints int `yaml:"symptom_full_points"` // default: 4

	// Multi-symptom bonus: MultiSymptomBonus x full matches once full matches >= MultiSymptomMin
	MultiSymptomMin   int `yaml:"multi_symptom_min"`   // default: 2
	MultiSymptomBonus int `yaml:"multi_symptom_bonus"` // default: 3

	// Minimum score for the best candidate to be returned
	AcceptThreshold int `yaml:"accept_threshold"` // default: 3
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		KeywordPhrasePoints:    6,
		KeywordAllTokensPoints: 4,
		KeywordTokenPoints:     2,
		SymptomFullPoints:      4,
		MultiSymptomMin:        2,
		MultiSymptomBonus:      3,
		AcceptThreshold:        3,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	defaults := DefaultScoringConfig()

	if c.KeywordPhrasePoints == 0 {
		c.KeywordPhrasePoints = defaults.KeywordPhrasePoints
	}
	if c.KeywordAllTokensPoints == 0 {
		c.KeywordAllTokensPoints = defaults.KeywordAllTokensPoints
	}
	if c.KeywordTokenPoints == 0 {
		c.KeywordTokenPoints = defaults.KeywordTokenPoints
	}
	if c.SymptomFullPoints == 0 {
		c.SymptomFullPoints = defaults.SymptomFullPoints
	}
	if c.MultiSymptomMin == 0 {
		c.MultiSymptomMin = defaults.MultiSymptomMin
	}
	if c.MultiSymptomBonus == 0 {
		c.MultiSymptomBonus = defaults.MultiSymptomBonus
	}
	if c.AcceptThreshold == 0 {
		c.AcceptThreshold = defaults.AcceptThreshold
	}
}
