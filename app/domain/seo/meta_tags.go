package seo

import (
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

// MetaTags is a complete, render-ready metadata set for one page
type MetaTags struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Keywords    []string          `json:"keywords,omitempty"`
	Canonical   string            `json:"canonical,omitempty"`
	Robots      string            `json:"robots"`
	OpenGraph   map[string]string `json:"open_graph"`
	Twitter     map[string]string `json:"twitter"`
}

// BuildMetaTags assembles the tag set from generated title, description
// and keywords plus the analyzed page facts
func BuildMetaTags(a *analysis.ContentAnalysis, title, description string, keywords []string) MetaTags {
	tags := MetaTags{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Robots:      "index, follow",
	}

	og := map[string]string{
		"og:title":       title,
		"og:description": description,
		"og:type":        "website",
	}
	if a != nil {
		tags.Canonical = a.URL
		if a.URL != "" {
			og["og:url"] = a.URL
		}
		if a.SiteName != "" {
			og["og:site_name"] = a.SiteName
		}
		if a.Language != "" {
			og["og:locale"] = a.Language
		}
	}
	tags.OpenGraph = og

	tags.Twitter = map[string]string{
		"twitter:card":        "summary",
		"twitter:title":       title,
		"twitter:description": description,
	}
	return tags
}
