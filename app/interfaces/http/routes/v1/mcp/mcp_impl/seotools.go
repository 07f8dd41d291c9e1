package mcpimpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/RumenDamyanov/go-seo/app/domain/seo"
)

type SeoMCP struct {
	generator *seo.Generator
}

func NewSeoMCP(generator *seo.Generator) *SeoMCP {
	return &SeoMCP{
		generator: generator,
	}
}

func contentToolSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "HTML or plain text content of the page.",
			},
			"url": map[string]any{
				"type":        "string",
				"description": "Canonical URL of the page.",
			},
			"language": map[string]any{
				"type":        "string",
				"description": "Content language code, e.g. en, de.",
			},
			"site_name": map[string]any{
				"type":        "string",
				"description": "Name of the site the page belongs to.",
			},
		},
		Required: []string{"content"},
	}
}

func metadataFromRequest(req mcp.CallToolRequest) map[string]string {
	metadata := map[string]string{}
	if url := req.GetString("url", ""); url != "" {
		metadata["url"] = url
	}
	if language := req.GetString("language", ""); language != "" {
		metadata["language"] = language
	}
	if siteName := req.GetString("site_name", ""); siteName != "" {
		metadata["site_name"] = siteName
	}
	return metadata
}

func (s *SeoMCP) RegisterTool(handler *mcpserver.MCPServer) {
	handler.AddTool(mcp.Tool{
		Name:        "analyze_content",
		Description: "Analyze page content and return its title, headings, keywords and summary as JSON.",
		InputSchema: contentToolSchema(),
	}, s.handleAnalyzeContent)

	handler.AddTool(mcp.Tool{
		Name:        "generate_title",
		Description: "Generate an SEO page title for the given content.",
		InputSchema: contentToolSchema(),
	}, s.handleGenerateTitle)

	handler.AddTool(mcp.Tool{
		Name:        "generate_description",
		Description: "Generate an SEO meta description for the given content.",
		InputSchema: contentToolSchema(),
	}, s.handleGenerateDescription)

	handler.AddTool(mcp.Tool{
		Name:        "generate_keywords",
		Description: "Generate SEO keywords for the given content, returned as a JSON array.",
		InputSchema: contentToolSchema(),
	}, s.handleGenerateKeywords)

	handler.AddTool(mcp.Tool{
		Name:        "generate_meta_tags",
		Description: "Generate a full meta tag set (title, description, keywords, Open Graph, Twitter Card) for the given content as JSON.",
		InputSchema: contentToolSchema(),
	}, s.handleGenerateMetaTags)
}

func (s *SeoMCP) handleAnalyzeContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	result, err := s.generator.Analyze(ctx, content, metadataFromRequest(req))
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *SeoMCP) handleGenerateTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	title, err := s.generator.GenerateTitle(ctx, content, metadataFromRequest(req), nil)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(title), nil
}

func (s *SeoMCP) handleGenerateDescription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	description, err := s.generator.GenerateDescription(ctx, content, metadataFromRequest(req), nil)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(description), nil
}

func (s *SeoMCP) handleGenerateKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	keywords, err := s.generator.GenerateKeywords(ctx, content, metadataFromRequest(req), nil)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(keywords)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *SeoMCP) handleGenerateMetaTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	tags, err := s.generator.GenerateMetaTags(ctx, content, metadataFromRequest(req), nil)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
