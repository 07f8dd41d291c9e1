package analysis

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	titleTagPattern   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	headingTagPattern = regexp.MustCompile(`(?is)<h([1-3])[^>]*>(.*?)</h[1-3]>`)
	scriptPattern     = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	tagPattern        = regexp.MustCompile(`(?s)<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	wordPattern       = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'-]*`)
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {},
	"we": {}, "were": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

const (
	maxKeywordCandidates = 10
	summarySentenceCount = 3
)

// HTMLAnalyzer is a heuristic Analyzer for HTML or plain text input. It does
// not fetch anything; it only inspects the content it is given.
type HTMLAnalyzer struct{}

func NewHTMLAnalyzer() *HTMLAnalyzer {
	return &HTMLAnalyzer{}
}

var _ Analyzer = (*HTMLAnalyzer)(nil)

func (h *HTMLAnalyzer) Analyze(ctx context.Context, content string, metadata map[string]string) (*ContentAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is empty")
	}

	a := &ContentAnalysis{
		URL:      metadata["url"],
		Language: metadata["language"],
		SiteName: metadata["site_name"],
		Metadata: metadata,
	}

	if m := titleTagPattern.FindStringSubmatch(content); m != nil {
		a.Title = collapseWhitespace(stripTags(m[1]))
	}
	for _, m := range headingTagPattern.FindAllStringSubmatch(content, -1) {
		heading := collapseWhitespace(stripTags(m[2]))
		if heading != "" {
			a.Headings = append(a.Headings, heading)
		}
	}
	if a.Title == "" && len(a.Headings) > 0 {
		a.Title = a.Headings[0]
	}

	text := collapseWhitespace(stripTags(scriptPattern.ReplaceAllString(content, " ")))
	words := wordPattern.FindAllString(text, -1)
	a.WordCount = len(words)
	a.Summary = firstSentences(text, summarySentenceCount)
	a.Keywords = topKeywords(words, maxKeywordCandidates)

	return a, nil
}

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func firstSentences(text string, n int) string {
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
			if count == n {
				return strings.TrimSpace(text[:i+1])
			}
		}
	}
	return text
}

// topKeywords ranks words by frequency, ignoring stopwords and short tokens.
// Ties break by first appearance so the result is deterministic.
func topKeywords(words []string, limit int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		w = strings.ToLower(w)
		if len(w) < 3 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		if _, ok := counts[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	ranked := make([]string, 0, len(counts))
	for w := range counts {
		ranked = append(ranked, w)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
