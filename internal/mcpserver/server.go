// Package mcpserver exposes the prompt library to MCP clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/constants"
	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/templater"
)

const defaultLimit = 20

// Library is the part of the store the tools read.
type Library interface {
	Prompt(ctx context.Context, id int64) (store.Prompt, error)
	PromptTags(ctx context.Context, promptID int64) ([]store.Tag, error)
	FolderByName(ctx context.Context, name string) (store.Folder, error)
	TagByName(ctx context.Context, name string) (store.Tag, error)
}

type Searcher interface {
	Search(ctx context.Context, query string, f store.Filter) ([]search.Result, error)
}

type Starters interface {
	Starters() []templater.Template
}

type SearchPromptsRequest struct {
	Query    string   `json:"query"`
	Folder   string   `json:"folder,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Favorite *bool    `json:"favorite,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type GetPromptRequest struct {
	ID int64 `json:"id"`
}

type RenderTemplateRequest struct {
	ID        int64             `json:"id"`
	Variables map[string]string `json:"variables,omitempty"`
}

type ListTemplatesRequest struct{}

type PromptServer struct {
	lib       Library
	searcher  Searcher
	templates Starters
	log       *zap.Logger
	mcpServer *server.MCPServer
}

func New(lib Library, searcher Searcher, templates Starters, log *zap.Logger) *PromptServer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &PromptServer{
		lib:       lib,
		searcher:  searcher,
		templates: templates,
		log:       log.Named("mcp"),
		mcpServer: server.NewMCPServer(constants.AppName, constants.Version, server.WithToolCapabilities(true)),
	}
	s.addTools()
	return s
}

func (s *PromptServer) addTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"search_prompts",
		mcp.WithDescription("Search the prompt library. Supports field:value, quoted phrases, -negation, regex:/pattern/ and AND/OR/NOT."),
		mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
		mcp.WithString("folder", mcp.Description("Only prompts in this folder")),
		mcp.WithArray("tags", mcp.Description("Only prompts with any of these tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("favorite", mcp.Description("Only favorites (true) or non-favorites (false)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), mcp.NewTypedToolHandler(s.SearchPrompts))

	s.mcpServer.AddTool(mcp.NewTool(
		"get_prompt",
		mcp.WithDescription("Get a prompt and its tags by id"),
		mcp.WithNumber("id", mcp.Description("Prompt id"), mcp.Required()),
	), mcp.NewTypedToolHandler(s.GetPrompt))

	s.mcpServer.AddTool(mcp.NewTool(
		"render_template",
		mcp.WithDescription("Fill the {variables} of a prompt and return the rendered text"),
		mcp.WithNumber("id", mcp.Description("Prompt id"), mcp.Required()),
		mcp.WithObject("variables", mcp.Description("Variable values keyed by name")),
	), mcp.NewTypedToolHandler(s.RenderTemplate))

	s.mcpServer.AddTool(mcp.NewTool(
		"list_templates",
		mcp.WithDescription("List the starter templates and their variables"),
	), mcp.NewTypedToolHandler(s.ListTemplates))
}

func (s *PromptServer) SearchPrompts(ctx context.Context, _ mcp.CallToolRequest, req SearchPromptsRequest) (*mcp.CallToolResult, error) {
	filter := store.Filter{IsFavorite: req.Favorite}

	if folder := strings.TrimSpace(req.Folder); folder != "" {
		f, err := s.lib.FolderByName(ctx, folder)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown folder %q: %v", folder, err)), nil
		}
		filter.FolderID = store.Int64(f.ID)
	}
	for _, name := range req.Tags {
		tag, err := s.lib.TagByName(ctx, strings.TrimSpace(name))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown tag %q: %v", name, err)), nil
		}
		filter.TagIDs = append(filter.TagIDs, tag.ID)
	}

	results, err := s.searcher.Search(ctx, req.Query, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error searching prompts: %v", err)), nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	s.log.Debug("search_prompts", zap.String("query", req.Query), zap.Int("results", len(results)))
	return jsonResult(results)
}

func (s *PromptServer) GetPrompt(ctx context.Context, _ mcp.CallToolRequest, req GetPromptRequest) (*mcp.CallToolResult, error) {
	p, err := s.prompt(ctx, req.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

func (s *PromptServer) RenderTemplate(ctx context.Context, _ mcp.CallToolRequest, req RenderTemplateRequest) (*mcp.CallToolResult, error) {
	p, err := s.prompt(ctx, req.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tmpl := templater.FromContent(p.Title, p.Content)
	out, err := tmpl.Render(req.Variables)
	if err != nil {
		var verr *templater.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}

func (s *PromptServer) ListTemplates(_ context.Context, _ mcp.CallToolRequest, _ ListTemplatesRequest) (*mcp.CallToolResult, error) {
	if s.templates == nil {
		return jsonResult([]templater.Template{})
	}
	return jsonResult(s.templates.Starters())
}

func (s *PromptServer) prompt(ctx context.Context, id int64) (store.Prompt, error) {
	if id <= 0 {
		return store.Prompt{}, fmt.Errorf("id must be a positive integer")
	}
	p, err := s.lib.Prompt(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Prompt{}, fmt.Errorf("prompt %d not found", id)
		}
		return store.Prompt{}, fmt.Errorf("error loading prompt %d: %w", id, err)
	}
	tags, err := s.lib.PromptTags(ctx, id)
	if err != nil {
		return store.Prompt{}, fmt.Errorf("error loading tags for prompt %d: %w", id, err)
	}
	p.Tags = tags
	return p, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve speaks MCP over the given streams until ctx is done or in closes.
func (s *PromptServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info("mcp server listening on stdio")
	err := server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *PromptServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}
