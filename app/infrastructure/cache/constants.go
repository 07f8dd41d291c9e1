package cache

const (
	CacheVersion     = "v1"
	DefaultNamespace = "seo"

	OpAnalysis         = "analysis"
	OpFreeform         = "freeform"
	OpTitle            = "title"
	OpDescription      = "description"
	OpKeywords         = "keywords"
	OpMetaTags         = "metatags"
	OpImageAlt         = "imagealt"
	OpProviderResponse = "provider_response"

	ComputeLockKeyPattern = "%s:lock"
)
