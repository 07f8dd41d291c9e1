package aiprovider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/utils/functional"
)

const (
	maxTitleChars       = 60
	maxDescriptionChars = 160
	maxKeywordCount     = 15

	defaultMaxTokens   = 256
	defaultTemperature = 0.7

	systemPrompt = "You are an expert SEO copywriter. You write concise, accurate metadata for web pages and never add commentary around your answer."
)

var listItemPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

func titlePrompt(a *analysis.ContentAnalysis) string {
	return fmt.Sprintf(
		"Write one concise, compelling SEO page title of at most %d characters for the page described below. Respond with the title only, without quotes.\n\n%s",
		maxTitleChars, contentSummary(a),
	)
}

func descriptionPrompt(a *analysis.ContentAnalysis) string {
	return fmt.Sprintf(
		"Write one SEO meta description of at most %d characters for the page described below. It should invite the reader to visit the page. Respond with the description only, without quotes.\n\n%s",
		maxDescriptionChars, contentSummary(a),
	)
}

func keywordsPrompt(a *analysis.ContentAnalysis) string {
	return fmt.Sprintf(
		"List 5 to 10 SEO keywords or short phrases for the page described below. Respond with a comma-separated list only, no numbering and no explanations.\n\n%s",
		contentSummary(a),
	)
}

// contentSummary renders the analysis as a compact prompt block, skipping
// fields the analyzer could not fill
func contentSummary(a *analysis.ContentAnalysis) string {
	if a == nil {
		return ""
	}
	var lines []string
	if a.URL != "" {
		lines = append(lines, "URL: "+a.URL)
	}
	if a.Title != "" {
		lines = append(lines, "Current title: "+a.Title)
	}
	if a.SiteName != "" {
		lines = append(lines, "Site: "+a.SiteName)
	}
	if a.Language != "" {
		lines = append(lines, "Language: "+a.Language)
	}
	if len(a.Headings) > 0 {
		lines = append(lines, "Headings: "+strings.Join(a.Headings, "; "))
	}
	if a.Summary != "" {
		lines = append(lines, "Content summary: "+a.Summary)
	}
	if len(a.Keywords) > 0 {
		lines = append(lines, "Detected keywords: "+strings.Join(a.Keywords, ", "))
	}
	return strings.Join(lines, "\n")
}

// sanitizeLine normalizes one line of model output: surrounding quotes and
// markdown emphasis are stripped, inner whitespace collapsed
func sanitizeLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, `"'`)
	s = strings.Trim(s, "*_`")
	return strings.TrimSpace(s)
}

// parseKeywordList reads keywords from model output. Models answer with
// comma-separated lists, bullet lists or JSON arrays depending on vendor
// and mood; all three are accepted.
func parseKeywordList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var keywords []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
			keywords = nil
		}
	}
	if keywords == nil {
		for _, line := range strings.Split(raw, "\n") {
			line = listItemPattern.ReplaceAllString(line, "")
			for _, part := range strings.Split(line, ",") {
				keywords = append(keywords, part)
			}
		}
	}

	cleaned := functional.Map(keywords, func(k string) string {
		return strings.ToLower(sanitizeLine(k))
	})
	cleaned = functional.Filter(cleaned, func(k string) bool { return k != "" })
	cleaned = functional.Distinct(cleaned)

	if len(cleaned) > maxKeywordCount {
		cleaned = cleaned[:maxKeywordCount]
	}
	return cleaned
}
