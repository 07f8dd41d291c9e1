package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPage = `<html><head><title> The   Go   Blog </title>` +
	`<script>var x = "ignored ignored ignored";</script></head>` +
	`<body><h1>Concurrency <em>Patterns</em></h1><h2>Pipelines</h2><h4>Deep</h4>` +
	`<p>Pipelines simplify concurrency. Pipelines compose stages. Stages run concurrently. Extra sentence here.</p>` +
	`</body></html>`

func TestAnalyzeExtractsTitleAndHeadings(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), blogPage, nil)
	require.NoError(t, err)

	assert.Equal(t, "The Go Blog", a.Title)
	assert.Equal(t, []string{"Concurrency Patterns", "Pipelines"}, a.Headings)
}

func TestAnalyzeIgnoresScriptContent(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), blogPage, nil)
	require.NoError(t, err)

	assert.NotContains(t, a.Keywords, "ignored")
	assert.NotContains(t, a.Summary, "ignored")
}

func TestAnalyzeCountsWordsAndSummarizes(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), blogPage, nil)
	require.NoError(t, err)

	assert.Equal(t, 19, a.WordCount)
	assert.Equal(t, "The Go Blog Concurrency Patterns Pipelines Deep Pipelines simplify concurrency. Pipelines compose stages. Stages run concurrently.", a.Summary)
}

func TestAnalyzeRanksKeywordsByFrequency(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), blogPage, nil)
	require.NoError(t, err)

	require.Len(t, a.Keywords, 10)
	assert.Equal(t, []string{"pipelines", "concurrency", "stages"}, a.Keywords[:3])
}

func TestAnalyzeTitleFallsBackToHeading(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), "<h1>Only Heading</h1><p>Text.</p>", nil)
	require.NoError(t, err)

	assert.Equal(t, "Only Heading", a.Title)
}

func TestAnalyzeCarriesMetadata(t *testing.T) {
	metadata := map[string]string{
		"url":       "https://go.dev/blog",
		"language":  "en",
		"site_name": "Go Blog",
		"custom":    "x",
	}

	a, err := NewHTMLAnalyzer().Analyze(context.Background(), blogPage, metadata)
	require.NoError(t, err)

	assert.Equal(t, "https://go.dev/blog", a.URL)
	assert.Equal(t, "en", a.Language)
	assert.Equal(t, "Go Blog", a.SiteName)
	assert.Equal(t, metadata, a.Metadata)
}

func TestAnalyzePlainText(t *testing.T) {
	a, err := NewHTMLAnalyzer().Analyze(context.Background(), "Just plain text without any markup. It still works.", nil)
	require.NoError(t, err)

	assert.Empty(t, a.Title)
	assert.Equal(t, 9, a.WordCount)
	assert.Contains(t, a.Keywords, "plain")
}

func TestAnalyzeRejectsEmptyContent(t *testing.T) {
	_, err := NewHTMLAnalyzer().Analyze(context.Background(), "   \n\t ", nil)

	require.Error(t, err)
}

func TestKeyInputs(t *testing.T) {
	a := &ContentAnalysis{URL: "https://example.com", Title: "T"}

	inputs := a.KeyInputs()

	assert.Equal(t, "https://example.com", inputs["url"])
	assert.Equal(t, "T", inputs["title"])
	assert.NotContains(t, inputs, "metadata")
}

func TestKeyInputsNil(t *testing.T) {
	var a *ContentAnalysis

	assert.Empty(t, a.KeyInputs())
}
