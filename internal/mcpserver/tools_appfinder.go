package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/tools"
)

// searchAppsArgs mirrors the search_apps input schema.
type searchAppsArgs struct {
	Query     string   `json:"query"`
	Category  string   `json:"category"`
	Platform  string   `json:"platform"`
	MaxPrice  *float64 `json:"maxPrice"`
	MinRating *float64 `json:"minRating"`
	Limit     int      `json:"limit"`
}

type appNameArgs struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type compareAppsArgs struct {
	Names []string `json:"names"`
}

func (s *Server) registerAppFinderTools() {
	s.mcp.AddTool(mcp.NewTool("search_apps",
		mcp.WithDescription("Search the app catalog by keyword, category, platform, price and rating."),
		mcp.WithString("query", mcp.Description("Keyword to search names, descriptions and features")),
		mcp.WithString("category", mcp.Description("Exact category filter")),
		mcp.WithString("platform", mcp.Description("Platform filter, e.g. ios or android")),
		mcp.WithNumber("maxPrice", mcp.Description("Maximum price in dollars")),
		mcp.WithNumber("minRating", mcp.Description("Minimum star rating")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
	), s.handleSearchApps)

	s.mcp.AddTool(mcp.NewTool("get_app_details",
		mcp.WithDescription("Look up one app by name or id."),
		mcp.WithString("name", mcp.Required(), mcp.Description("App name or id, case-insensitive")),
	), s.handleAppDetails)

	s.mcp.AddTool(mcp.NewTool("compare_apps",
		mcp.WithDescription("Compare 2-4 apps side by side."),
		mcp.WithArray("names", mcp.Required(),
			mcp.Description("App names to compare"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleCompareApps)

	s.mcp.AddTool(mcp.NewTool("get_alternatives",
		mcp.WithDescription("Find alternatives to an app within its category."),
		mcp.WithString("name", mcp.Required(), mcp.Description("App name or id")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of alternatives")),
	), s.handleAlternatives)
}

func (s *Server) handleSearchApps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("search_apps", envelope.MarkerAppSearch, func() (tools.ToolResult, error) {
		args, err := bind[searchAppsArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.appFinder.Search(appsearch.Filter{
			Query:     args.Query,
			Category:  args.Category,
			Platform:  args.Platform,
			MaxPrice:  args.MaxPrice,
			MinRating: args.MinRating,
			Limit:     args.Limit,
		})
	}), nil
}

func (s *Server) handleAppDetails(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("get_app_details", envelope.MarkerAppSearch, func() (tools.ToolResult, error) {
		args, err := bind[appNameArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.appFinder.Details(args.Name)
	}), nil
}

func (s *Server) handleCompareApps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("compare_apps", envelope.MarkerAppSearch, func() (tools.ToolResult, error) {
		args, err := bind[compareAppsArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.appFinder.Compare(args.Names)
	}), nil
}

func (s *Server) handleAlternatives(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("get_alternatives", envelope.MarkerAppSearch, func() (tools.ToolResult, error) {
		args, err := bind[appNameArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.appFinder.Alternatives(args.Name, args.Limit)
	}), nil
}
