package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for fff resources.
	uriScheme = "fff://"

	scanURI     = uriScheme + "scan"
	platformURI = uriScheme + "platform"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         scanURI,
		Name:        "scan",
		Description: "Background scan state of the file index",
		MIMEType:    "application/json",
	}, s.handleScanResource)

	s.server.AddResource(&mcp.Resource{
		URI:         platformURI,
		Name:        "platform",
		Description: "How the native library resolves on this host",
		MIMEType:    "application/json",
	}, s.handlePlatformResource)
}

// handleScanResource returns the current scan progress.
func (s *Server) handleScanResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	progress, err := s.ports.Finder.ScanProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading scan progress: %w", err)
	}
	return jsonResource(req.Params.URI, progress)
}

// handlePlatformResource returns the platform report.
func (s *Server) handlePlatformResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Platform == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, s.ports.Platform.Report(ctx))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
