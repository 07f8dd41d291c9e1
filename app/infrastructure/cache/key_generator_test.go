package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsDeterministicAcrossMapOrder(t *testing.T) {
	g := NewKeyGenerator("seo")

	first := g.TitleKey(
		map[string]any{"content": "X", "language": "en"},
		map[string]any{"a": 1, "b": 2},
	)
	second := g.TitleKey(
		map[string]any{"language": "en", "content": "X"},
		map[string]any{"b": 2, "a": 1},
	)

	assert.Equal(t, first, second)
}

func TestDifferentInputsProduceDifferentKeys(t *testing.T) {
	g := NewKeyGenerator("seo")

	x := g.TitleKey(map[string]any{"content": "X"}, nil)
	y := g.TitleKey(map[string]any{"content": "Y"}, nil)

	assert.NotEqual(t, x, y)
}

func TestDifferentOperationsProduceDifferentKeys(t *testing.T) {
	g := NewKeyGenerator("seo")
	inputs := map[string]any{"content": "X"}

	assert.NotEqual(t, g.TitleKey(inputs, nil), g.DescriptionKey(inputs, nil))
	assert.NotEqual(t, g.DescriptionKey(inputs, nil), g.KeywordsKey(inputs, nil))
}

func TestKeyShapeWithOptions(t *testing.T) {
	g := NewKeyGenerator("seo")

	key := g.TitleKey(map[string]any{"content": "X"}, map[string]any{"tone": "formal"})
	parts := strings.Split(key, ":")

	require.Len(t, parts, 5)
	assert.Equal(t, "seo", parts[0])
	assert.Equal(t, CacheVersion, parts[1])
	assert.Equal(t, OpTitle, parts[2])
	assert.Len(t, parts[3], hashPrefixLength)
	assert.Len(t, parts[4], hashPrefixLength)
}

func TestKeyOmitsOptionsHashWhenEmpty(t *testing.T) {
	g := NewKeyGenerator("seo")

	key := g.TitleKey(map[string]any{"content": "X"}, nil)

	require.Len(t, strings.Split(key, ":"), 4)
}

func TestAnalysisKeyReflectsMetadata(t *testing.T) {
	g := NewKeyGenerator("seo")

	bare := g.AnalysisKey("<p>hello</p>", nil)
	tagged := g.AnalysisKey("<p>hello</p>", map[string]string{"url": "https://example.com"})
	taggedAgain := g.AnalysisKey("<p>hello</p>", map[string]string{"url": "https://example.com"})

	assert.NotEqual(t, bare, tagged)
	assert.Equal(t, tagged, taggedAgain)
}

func TestProviderResponseKeySeparatesBackends(t *testing.T) {
	g := NewKeyGenerator("seo")
	inputs := map[string]any{"prompt": "generate a title"}

	openai := g.ProviderResponseKey("openai", OpTitle, inputs, nil)
	anthropic := g.ProviderResponseKey("anthropic", OpTitle, inputs, nil)

	assert.NotEqual(t, openai, anthropic)
}

func TestEmptyNamespaceFallsBackToDefault(t *testing.T) {
	g := NewKeyGenerator("")

	assert.Equal(t, DefaultNamespace+":"+CacheVersion, g.Namespace())
	assert.True(t, strings.HasPrefix(g.ImageAltKey("https://example.com/a.png", nil), DefaultNamespace+":"))
}
