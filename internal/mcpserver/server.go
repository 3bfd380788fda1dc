package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"shadowkit/internal/bridge"
	"shadowkit/internal/introspect"
	"shadowkit/internal/platform"
	"shadowkit/internal/registry"
	"shadowkit/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Options configures the tool defaults.
type Options struct {
	Registry      *registry.Registry
	Catalog       *bridge.Catalog
	Version       platform.Version
	AllowInternal bool
	// ServerVersion is reported to MCP clients.
	ServerVersion string
}

// Server serves introspection tools over MCP.
type Server struct {
	opts Options
	mcp  *server.MCPServer
}

// New creates a server with every tool registered.
func New(opts Options) *Server {
	if opts.ServerVersion == "" {
		opts.ServerVersion = "dev"
	}
	s := &Server{opts: opts}
	s.mcp = server.NewMCPServer(
		"shadowkit",
		opts.ServerVersion,
		server.WithToolCapabilities(true),
	)
	tools := s.Tools()
	logging.Debug("MCPServer", "Adding %d tools", len(tools))
	s.mcp.AddTools(tools...)
	return s
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	logging.Info("MCPServer", "Serving %d tools on stdio (sdk %d)", len(s.Tools()), s.opts.Version)
	return server.ServeStdio(s.mcp)
}

// Tools returns the tool definitions paired with their handlers.
func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("shadow_list",
				mcp.WithDescription("List every registered shadow with its target type and SDK gate"),
			),
			Handler: s.handleShadowList,
		},
		{
			Tool: mcp.NewTool("shadow_resolve",
				mcp.WithDescription("Resolve which shadow applies to a platform type at an SDK level"),
				mcp.WithString("type",
					mcp.Required(),
					mcp.Description("Fully qualified platform type name"),
				),
				withSDK(),
				withAllowInternal(),
			),
			Handler: s.handleShadowResolve,
		},
		{
			Tool: mcp.NewTool("shadow_table",
				mcp.WithDescription("Resolve every registered target type at an SDK level"),
				withSDK(),
				withAllowInternal(),
			),
			Handler: s.handleShadowTable,
		},
		{
			Tool: mcp.NewTool("bridge_types",
				mcp.WithDescription("List the types, constructors and methods reachable through the bridge at an SDK level"),
				withSDK(),
			),
			Handler: s.handleBridgeTypes,
		},
	}
}

func withSDK() mcp.ToolOption {
	return mcp.WithNumber("sdk", mcp.Description("SDK level (defaults to the configured level)"))
}

func withAllowInternal() mcp.ToolOption {
	return mcp.WithBoolean("allow_internal", mcp.Description("Whether internal-only shadows may apply"))
}

func (s *Server) handleShadowList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(introspect.Shadows(s.opts.Registry))
}

func (s *Server) handleShadowResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	version, err := s.version(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := introspect.Resolve(s.opts.Registry, s.opts.Catalog, platform.TypeName(typ), version, s.allowInternal(req))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve %s: %v", typ, err)), nil
	}
	return jsonResult(res)
}

func (s *Server) handleShadowTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version, err := s.version(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := introspect.Table(s.opts.Registry, s.opts.Catalog, version, s.allowInternal(req))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build resolution table: %v", err)), nil
	}
	return jsonResult(table)
}

func (s *Server) handleBridgeTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version, err := s.version(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(introspect.BridgeTypes(s.opts.Catalog, version))
}

// version reads the optional sdk argument. JSON numbers arrive as float64.
func (s *Server) version(req mcp.CallToolRequest) (platform.Version, error) {
	raw, ok := req.GetArguments()["sdk"]
	if !ok || raw == nil {
		return s.opts.Version, nil
	}

	var sdk int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("sdk must be a whole number, got %v", v)
		}
		sdk = int(v)
	case int:
		sdk = v
	default:
		return 0, fmt.Errorf("sdk must be a number, got %T", raw)
	}
	if sdk < 1 {
		return 0, fmt.Errorf("sdk must be at least 1, got %d", sdk)
	}
	return platform.Version(sdk), nil
}

func (s *Server) allowInternal(req mcp.CallToolRequest) bool {
	if b, ok := req.GetArguments()["allow_internal"].(bool); ok {
		return b
	}
	return s.opts.AllowInternal
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
