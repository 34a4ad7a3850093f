package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/regexengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/tools"
)

type testRegexArgs struct {
	Pattern    string             `json:"pattern"`
	Flags      string             `json:"flags"`
	TestString string             `json:"testString"`
	Cases      []regexengine.Case `json:"cases"`
}

type explainRegexArgs struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

type generateRegexArgs struct {
	Description string `json:"description"`
}

func (s *Server) registerRegexTools() {
	s.mcp.AddTool(mcp.NewTool("test_regex",
		mcp.WithDescription("Run a regex against a test string and enumerate all matches, optionally validating expected-match cases."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("The regex pattern, without delimiters")),
		mcp.WithString("flags", mcp.Description("Flags: any of g, i, m, s")),
		mcp.WithString("testString", mcp.Description("The string to scan")),
		mcp.WithArray("cases",
			mcp.Description("Optional validation cases: {input, shouldMatch}"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"input":       map[string]any{"type": "string"},
					"shouldMatch": map[string]any{"type": "boolean"},
				},
			}),
		),
	), s.handleTestRegex)

	s.mcp.AddTool(mcp.NewTool("explain_regex",
		mcp.WithDescription("Break a regex pattern into tokens with plain-language descriptions."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("The regex pattern to explain")),
		mcp.WithString("flags", mcp.Description("Flags: any of g, i, m, s")),
	), s.handleExplainRegex)

	s.mcp.AddTool(mcp.NewTool("generate_regex",
		mcp.WithDescription("Produce a ready-made pattern for a described kind of text (email, url, phone, ...)."),
		mcp.WithString("description", mcp.Required(), mcp.Description("What the pattern should match")),
	), s.handleGenerateRegex)

	s.mcp.AddTool(mcp.NewTool("regex_cheatsheet",
		mcp.WithDescription("Show the regex quick reference."),
	), s.handleCheatsheet)
}

func (s *Server) handleTestRegex(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("test_regex", envelope.MarkerRegex, func() (tools.ToolResult, error) {
		args, err := bind[testRegexArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.regex.Test(args.Pattern, args.Flags, args.TestString, args.Cases)
	}), nil
}

func (s *Server) handleExplainRegex(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("explain_regex", envelope.MarkerRegex, func() (tools.ToolResult, error) {
		args, err := bind[explainRegexArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.regex.Explain(args.Pattern, args.Flags)
	}), nil
}

func (s *Server) handleGenerateRegex(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("generate_regex", envelope.MarkerRegex, func() (tools.ToolResult, error) {
		args, err := bind[generateRegexArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.regex.Generate(args.Description)
	}), nil
}

func (s *Server) handleCheatsheet(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("regex_cheatsheet", envelope.MarkerRegex, func() (tools.ToolResult, error) {
		return s.regex.Cheatsheet()
	}), nil
}
