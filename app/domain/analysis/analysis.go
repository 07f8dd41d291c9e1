package analysis

import "context"

// ContentAnalysis is the normalized view of one page that every generation
// operation works from. It is never mutated after creation; cache keys are
// derived from it via KeyInputs.
type ContentAnalysis struct {
	URL       string            `json:"url,omitempty"`
	Title     string            `json:"title,omitempty"`
	Headings  []string          `json:"headings,omitempty"`
	Summary   string            `json:"summary,omitempty"`
	Keywords  []string          `json:"keywords,omitempty"`
	Language  string            `json:"language,omitempty"`
	SiteName  string            `json:"site_name,omitempty"`
	WordCount int               `json:"word_count,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// KeyInputs returns the analysis as a string-keyed mapping suitable for
// deterministic cache key generation.
func (a *ContentAnalysis) KeyInputs() map[string]any {
	if a == nil {
		return map[string]any{}
	}
	inputs := map[string]any{
		"url":        a.URL,
		"title":      a.Title,
		"headings":   a.Headings,
		"summary":    a.Summary,
		"keywords":   a.Keywords,
		"language":   a.Language,
		"site_name":  a.SiteName,
		"word_count": a.WordCount,
	}
	if len(a.Metadata) > 0 {
		inputs["metadata"] = a.Metadata
	}
	return inputs
}

// Analyzer turns raw page content into a ContentAnalysis.
type Analyzer interface {
	Analyze(ctx context.Context, content string, metadata map[string]string) (*ContentAnalysis, error)
}
