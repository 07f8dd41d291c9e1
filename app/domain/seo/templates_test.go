package seo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

func TestTitleFromAnalysisPrefersPageTitle(t *testing.T) {
	a := &analysis.ContentAnalysis{
		Title:    "Go Cache Layers",
		Headings: []string{"Something Else"},
		SiteName: "ExampleCo",
	}

	assert.Equal(t, "Go Cache Layers | ExampleCo", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisSkipsSiteNameWhenTooLong(t *testing.T) {
	a := &analysis.ContentAnalysis{
		Title:    "A Comprehensive Guide To Building Production Caches",
		SiteName: "Acme Widgets Incorporated",
	}

	assert.Equal(t, "A Comprehensive Guide To Building Production Caches", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisDoesNotRepeatSiteName(t *testing.T) {
	a := &analysis.ContentAnalysis{
		Title:    "Docs | ExampleCo",
		SiteName: "ExampleCo",
	}

	assert.Equal(t, "Docs | ExampleCo", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisFallsBackToHeading(t *testing.T) {
	a := &analysis.ContentAnalysis{Headings: []string{"Getting Started", "Install"}}

	assert.Equal(t, "Getting Started", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisFallsBackToURL(t *testing.T) {
	a := &analysis.ContentAnalysis{URL: "https://www.example.com/blog/go-cache-layers"}

	assert.Equal(t, "Go Cache Layers", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisUsesHostForRootURL(t *testing.T) {
	a := &analysis.ContentAnalysis{URL: "https://www.example.com/"}

	assert.Equal(t, "Example.com", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisFallsBackToKeywords(t *testing.T) {
	a := &analysis.ContentAnalysis{Keywords: []string{"caching", "redis", "performance", "latency"}}

	assert.Equal(t, "Caching Redis Performance", TitleFromAnalysis(a))
}

func TestTitleFromAnalysisTruncatesOnWordBoundary(t *testing.T) {
	a := &analysis.ContentAnalysis{
		Title: "Understanding distributed cache invalidation strategies for modern web applications",
	}

	got := TitleFromAnalysis(a)
	assert.Equal(t, "Understanding distributed cache invalidation strategies for", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), maxTitleLength)
}

func TestTitleFromAnalysisNil(t *testing.T) {
	assert.Equal(t, "", TitleFromAnalysis(nil))
}

func TestDescriptionFromAnalysisPrefersSummary(t *testing.T) {
	a := &analysis.ContentAnalysis{
		Summary:  "First sentence. Second sentence.",
		Headings: []string{"Ignored"},
	}

	assert.Equal(t, "First sentence. Second sentence.", DescriptionFromAnalysis(a))
}

func TestDescriptionFromAnalysisJoinsHeadings(t *testing.T) {
	a := &analysis.ContentAnalysis{Headings: []string{"Overview", "Setup"}}

	assert.Equal(t, "Overview. Setup", DescriptionFromAnalysis(a))
}

func TestDescriptionFromAnalysisFallsBackToTitle(t *testing.T) {
	a := &analysis.ContentAnalysis{Title: "Only Title"}

	assert.Equal(t, "Only Title", DescriptionFromAnalysis(a))
}

func TestDescriptionFromAnalysisTruncates(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("cache invalidation is one of the two hard problems ", 5))
	a := &analysis.ContentAnalysis{Summary: long}

	got := DescriptionFromAnalysis(a)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), maxDescriptionLength)
	assert.True(t, strings.HasPrefix(long, got), "truncation must preserve the leading text")
	assert.False(t, strings.HasSuffix(got, " "))
}

func TestKeywordsFromAnalysisCopies(t *testing.T) {
	a := &analysis.ContentAnalysis{Keywords: []string{"caching", "redis"}}

	got := KeywordsFromAnalysis(a)
	got[0] = "mutated"

	assert.Equal(t, []string{"caching", "redis"}, a.Keywords)
}

func TestKeywordsFromAnalysisEmpty(t *testing.T) {
	assert.Nil(t, KeywordsFromAnalysis(nil))
	assert.Nil(t, KeywordsFromAnalysis(&analysis.ContentAnalysis{}))
}

func TestImageAltFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/img/golden-retriever-puppy.jpg", "Golden retriever puppy"},
		{"/assets/hero_banner_2024.png", "Hero banner"},
		{"https://example.com/photo.png?width=100", "Photo"},
		{"12345.png", "Image"},
		{"", "Image"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ImageAltFromURL(tc.url), "url %q", tc.url)
	}
}

func TestBuildMetaTags(t *testing.T) {
	a := &analysis.ContentAnalysis{
		URL:      "https://example.com/post",
		SiteName: "ExampleCo",
		Language: "en",
	}

	tags := BuildMetaTags(a, "Post Title", "Post description.", []string{"go", "seo"})

	assert.Equal(t, "Post Title", tags.Title)
	assert.Equal(t, "Post description.", tags.Description)
	assert.Equal(t, []string{"go", "seo"}, tags.Keywords)
	assert.Equal(t, "https://example.com/post", tags.Canonical)
	assert.Equal(t, "index, follow", tags.Robots)
	assert.Equal(t, map[string]string{
		"og:title":       "Post Title",
		"og:description": "Post description.",
		"og:type":        "website",
		"og:url":         "https://example.com/post",
		"og:site_name":   "ExampleCo",
		"og:locale":      "en",
	}, tags.OpenGraph)
	assert.Equal(t, map[string]string{
		"twitter:card":        "summary",
		"twitter:title":       "Post Title",
		"twitter:description": "Post description.",
	}, tags.Twitter)
}

func TestBuildMetaTagsWithoutAnalysis(t *testing.T) {
	tags := BuildMetaTags(nil, "T", "D", nil)

	assert.Empty(t, tags.Canonical)
	assert.Equal(t, map[string]string{
		"og:title":       "T",
		"og:description": "D",
		"og:type":        "website",
	}, tags.OpenGraph)
}
