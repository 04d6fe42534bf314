package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/huangsam/devscope/core"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	client   contract.ProfileClient
	recorder contract.Recorder
}

// profilePayload is the JSON document returned by get_profile.
type profilePayload struct {
	Profile          schema.Profile          `json:"profile"`
	Languages        []schema.RankedLanguage `json:"languages"`
	Projects         []schema.Project        `json:"projects"`
	TotalStars       int                     `json:"total_stars"`
	TotalForks       int                     `json:"total_forks"`
	LanguageFailures int                     `json:"language_failures"`
	FailedProjects   []string                `json:"failed_projects,omitempty"`
}

// languagesPayload is the JSON document returned by get_language_breakdown.
type languagesPayload struct {
	Handle           string                  `json:"handle"`
	Languages        []schema.RankedLanguage `json:"languages"`
	TotalBytes       int64                   `json:"total_bytes"`
	LanguageFailures int                     `json:"language_failures"`
}

// requestConfig clones the base config for the handle and top arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.CloneForHandle(request.GetString("handle", ""))
	if cfg.Handle == "" {
		cfg.Handle = cfg.DefaultHandle
	}
	if top := request.GetInt("top", 0); top != 0 {
		if top < 1 || top > contract.MaxTopLanguages {
			return nil, fmt.Errorf("top must be between 1 and %d (received %d)", contract.MaxTopLanguages, top)
		}
		cfg.TopN = top
	}
	return cfg, nil
}

func (h *toolHandler) handleGetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetExploreResult(core.WithSuppressHeader(ctx), cfg, h.client, h.recorder)
	if err != nil {
		slog.Warn("get_profile failed", slog.String("handle", cfg.Handle), slog.Any("error", err))
		return mcp.NewToolResultError(contract.UserMessage(cfg.Handle, err)), nil
	}

	return jsonResult(profilePayload{
		Profile:          result.Profile,
		Languages:        schema.RankLanguages(result.Languages),
		Projects:         result.Projects,
		TotalStars:       schema.TotalStars(result.Projects),
		TotalForks:       schema.TotalForks(result.Projects),
		LanguageFailures: result.LanguageFailures,
		FailedProjects:   result.FailedProjects,
	})
}

func (h *toolHandler) handleGetLanguageBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetExploreResult(core.WithSuppressHeader(ctx), cfg, h.client, h.recorder)
	if err != nil {
		return mcp.NewToolResultError(contract.UserMessage(cfg.Handle, err)), nil
	}

	return jsonResult(languagesPayload{
		Handle:           result.Profile.Login,
		Languages:        schema.RankLanguages(result.Languages),
		TotalBytes:       result.TotalBytes,
		LanguageFailures: result.LanguageFailures,
	})
}

func (h *toolHandler) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if s := request.GetString("sort", ""); s != "" {
		order := schema.ProjectSort(s)
		if _, ok := schema.ValidProjectSorts[order]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: invalid sort %q (expected updated or stars)", s)), nil
		}
		cfg.Sort = order
	}

	projects, err := core.GetProjectsResult(core.WithSuppressHeader(ctx), cfg, h.client, h.recorder)
	if err != nil {
		return mcp.NewToolResultError(contract.UserMessage(cfg.Handle, err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(projects) {
		projects = projects[:l]
	}
	if projects == nil {
		projects = []schema.Project{}
	}
	return jsonResult(projects)
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
