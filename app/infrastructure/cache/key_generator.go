package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/RumenDamyanov/go-seo/config"
)

// hashPrefixLength bounds key size; 16 hex chars keep collision odds
// negligible for cache-sized populations.
const hashPrefixLength = 16

// KeyGenerator derives deterministic cache keys of the form
// <namespace>:<version>:<operation>:<hash>[:<hash>]. Identical inputs
// always map to the same key regardless of map iteration order.
type KeyGenerator struct {
	namespace string
}

// NewKeyGenerator creates a key generator scoped to the given namespace
func NewKeyGenerator(namespace string) *KeyGenerator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &KeyGenerator{namespace: namespace + ":" + CacheVersion}
}

// ProvideKeyGenerator creates a key generator from configuration
func ProvideKeyGenerator(cfg *config.Config) *KeyGenerator {
	return NewKeyGenerator(cfg.Cache.Namespace)
}

// Namespace reports the full key prefix including the cache version
func (g *KeyGenerator) Namespace() string {
	return g.namespace
}

// AnalysisKey derives the key for a content analysis result
func (g *KeyGenerator) AnalysisKey(content string, metadata map[string]string) string {
	hashes := []string{hashString(content)}
	if len(metadata) > 0 {
		hashes = append(hashes, hashJSON(metadata))
	}
	return g.key(OpAnalysis, hashes...)
}

// TitleKey derives the key for a generated title
func (g *KeyGenerator) TitleKey(inputs, opts map[string]any) string {
	return g.inputsKey(OpTitle, inputs, opts)
}

// DescriptionKey derives the key for a generated description
func (g *KeyGenerator) DescriptionKey(inputs, opts map[string]any) string {
	return g.inputsKey(OpDescription, inputs, opts)
}

// KeywordsKey derives the key for generated keywords
func (g *KeyGenerator) KeywordsKey(inputs, opts map[string]any) string {
	return g.inputsKey(OpKeywords, inputs, opts)
}

// MetaTagsKey derives the key for a generated meta tag set
func (g *KeyGenerator) MetaTagsKey(inputs, opts map[string]any) string {
	return g.inputsKey(OpMetaTags, inputs, opts)
}

// ImageAltKey derives the key for generated image alt text
func (g *KeyGenerator) ImageAltKey(imageURL string, opts map[string]any) string {
	hashes := []string{hashString(imageURL)}
	if len(opts) > 0 {
		hashes = append(hashes, hashJSON(opts))
	}
	return g.key(OpImageAlt, hashes...)
}

// ProviderResponseKey derives the key for one backend's raw response to
// one operation. The backend name is part of the hashed inputs so a
// response cached for one vendor is never served for another.
func (g *KeyGenerator) ProviderResponseKey(backend, operation string, inputs, opts map[string]any) string {
	hashes := []string{hashJSON(map[string]any{
		"backend":   backend,
		"operation": operation,
		"inputs":    inputs,
	})}
	if len(opts) > 0 {
		hashes = append(hashes, hashJSON(opts))
	}
	return g.key(OpProviderResponse, hashes...)
}

func (g *KeyGenerator) inputsKey(operation string, inputs, opts map[string]any) string {
	hashes := []string{hashJSON(inputs)}
	if len(opts) > 0 {
		hashes = append(hashes, hashJSON(opts))
	}
	return g.key(operation, hashes...)
}

func (g *KeyGenerator) key(operation string, hashes ...string) string {
	parts := append([]string{g.namespace, operation}, hashes...)
	return strings.Join(parts, ":")
}

func hashString(s string) string {
	return hashBytes([]byte(s))
}

// hashJSON serializes v to JSON and hashes the result. encoding/json
// sorts map keys, which makes the serialization canonical.
func hashJSON(v any) string {
	data, _ := json.Marshal(v)
	return hashBytes(data)
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:hashPrefixLength]
}
