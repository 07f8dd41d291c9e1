package seo

import (
	"net/url"
	gopath "path"
	"strings"
	"unicode"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

// Character budgets search engines display without truncation
const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
)

// TitleFromAnalysis composes a page title without any AI involvement. The
// static engine and the AI-failure fallback both go through here.
func TitleFromAnalysis(a *analysis.ContentAnalysis) string {
	if a == nil {
		return ""
	}
	title := a.Title
	if title == "" && len(a.Headings) > 0 {
		title = a.Headings[0]
	}
	if title == "" && a.URL != "" {
		title = titleFromURL(a.URL)
	}
	if title == "" && len(a.Keywords) > 0 {
		n := len(a.Keywords)
		if n > 3 {
			n = 3
		}
		title = capitalizeWords(strings.Join(a.Keywords[:n], " "))
	}
	if a.SiteName != "" && !strings.Contains(title, a.SiteName) {
		if candidate := title + " | " + a.SiteName; len([]rune(candidate)) <= maxTitleLength {
			title = candidate
		}
	}
	return truncateOnWord(title, maxTitleLength)
}

// DescriptionFromAnalysis composes a meta description from the strongest
// available signal: summary, then headings, then the title.
func DescriptionFromAnalysis(a *analysis.ContentAnalysis) string {
	if a == nil {
		return ""
	}
	desc := a.Summary
	if desc == "" && len(a.Headings) > 0 {
		desc = strings.Join(a.Headings, ". ")
	}
	if desc == "" {
		desc = TitleFromAnalysis(a)
	}
	return truncateOnWord(desc, maxDescriptionLength)
}

// KeywordsFromAnalysis returns the analyzer's frequency-ranked keywords
func KeywordsFromAnalysis(a *analysis.ContentAnalysis) []string {
	if a == nil || len(a.Keywords) == 0 {
		return nil
	}
	return append([]string(nil), a.Keywords...)
}

// ImageAltFromURL derives alt text from the image file name, the best
// signal available without seeing the image
func ImageAltFromURL(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := gopath.Base(p)
	base = strings.TrimSuffix(base, gopath.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == '+'
	})
	words = keepDescriptiveWords(words)
	if len(words) == 0 {
		return "Image"
	}
	return capitalizeFirst(strings.Join(words, " "))
}

// keepDescriptiveWords drops tokens that carry no meaning in alt text,
// like numeric photo ids
func keepDescriptiveWords(words []string) []string {
	kept := words[:0]
	for _, w := range words {
		if w == "" || isDigits(w) {
			continue
		}
		kept = append(kept, strings.ToLower(w))
	}
	return kept
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// titleFromURL turns the last path segment into words, falling back to the
// host for root URLs
func titleFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return capitalizeFirst(strings.TrimPrefix(u.Host, "www."))
	}
	segments := strings.Split(trimmed, "/")
	last := segments[len(segments)-1]
	words := strings.FieldsFunc(last, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	return capitalizeWords(strings.Join(words, " "))
}

// truncateOnWord shortens s to at most max runes, cutting at the last word
// boundary past the midpoint so the result reads naturally
func truncateOnWord(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:-")
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
