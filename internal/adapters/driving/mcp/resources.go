package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

const uriScheme = "fundwise://"

const mimeJSON = "application/json"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "profile",
		Name:        "profile",
		Description: "The saved farmer household profile",
		MIMEType:    mimeJSON,
	}, s.handleProfileResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Metadata for every document in the library",
		MIMEType:    mimeJSON,
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Metadata for a single document",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)
}

func (s *Server) handleProfileResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Profile.Get())
}

func (s *Server) handleDocumentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := []DocumentOutput{}
	if s.ports.Documents != nil {
		for _, doc := range s.ports.Documents.List() {
			infos = append(infos, toDocumentOutput(doc))
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractDocumentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Documents.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return jsonResource(req.Params.URI, toDocumentOutput(*doc))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the id from fundwise://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
