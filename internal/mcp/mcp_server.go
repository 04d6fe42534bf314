// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the devscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) *server.MCPServer {
	s := server.NewMCPServer(
		"devscope Profile Explorer",
		"1.0.0",
		server.WithLogging(),
	)

	if recorder == nil {
		recorder = contract.NopRecorder{}
	}
	h := &toolHandler{
		baseCfg:  baseCfg,
		client:   client,
		recorder: recorder,
	}

	// --- 1. Tool: get_profile ---
	s.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Look up a GitHub user: profile, public projects and the language breakdown across them."),
		mcp.WithString("handle", mcp.Description("GitHub username to look up (defaults to the configured default handle).")),
		mcp.WithNumber("top", mcp.Description("Number of languages in the breakdown (1-50). Defaults to 5.")),
	), h.handleGetProfile)

	// --- 2. Tool: get_language_breakdown ---
	s.AddTool(mcp.NewTool("get_language_breakdown",
		mcp.WithDescription("Rank the languages a GitHub user writes by share of bytes across their public projects."),
		mcp.WithString("handle", mcp.Description("GitHub username to look up."), mcp.Required()),
		mcp.WithNumber("top", mcp.Description("Number of languages to return (1-50). Defaults to 5.")),
	), h.handleGetLanguageBreakdown)

	// --- 3. Tool: list_projects ---
	s.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List the public projects of a GitHub user without fetching language data."),
		mcp.WithString("handle", mcp.Description("GitHub username to look up."), mcp.Required()),
		mcp.WithString("sort", mcp.Description("Project order. Defaults to 'updated'."), mcp.Enum("updated", "stars")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of projects returned.")),
	), h.handleListProjects)

	return s
}

// StartMCPServer starts the devscope MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.ProfileClient, recorder contract.Recorder) error {
	s := NewMCPServer(baseCfg, client, recorder)
	return server.ServeStdio(s)
}
