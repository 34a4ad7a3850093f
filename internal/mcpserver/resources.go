package mcpserver

import (
	"context"
	"embed"

	"github.com/mark3labs/mcp-go/mcp"
)

//go:embed viewshells/*.html
var viewShells embed.FS

// View resource URIs. Hosts that support embedded views fetch these and
// drive them over the view bridge; hosts that do not simply render the
// text blocks.
const (
	AppFinderViewURI  = "ui://app-finder"
	RegexViewURI      = "ui://regex-playground"
	LoanViewURI       = "ui://loan-calculator"
	viewShellMIMEType = "text/html"
)

func (s *Server) registerResources() {
	shells := []struct {
		uri  string
		name string
		desc string
		file string
	}{
		{AppFinderViewURI, "App Finder", "Interactive app search results view", "viewshells/app-finder.html"},
		{RegexViewURI, "Regex Playground", "Interactive regex testing view", "viewshells/regex-playground.html"},
		{LoanViewURI, "Loan Calculator", "Interactive loan breakdown view", "viewshells/loan-calculator.html"},
	}

	for _, sh := range shells {
		sh := sh
		s.mcp.AddResource(mcp.NewResource(sh.uri, sh.name,
			mcp.WithResourceDescription(sh.desc),
			mcp.WithMIMEType(viewShellMIMEType),
		), func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			body, err := viewShells.ReadFile(sh.file)
			if err != nil {
				return nil, err
			}

			return []mcp.ResourceContents{mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: viewShellMIMEType,
				Text:     string(body),
			}}, nil
		})
	}
}
