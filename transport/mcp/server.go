package mcp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wricardo/termsnake/game/engine"
	"github.com/wricardo/termsnake/game/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server exposes a GameService as MCP tools
type Server struct {
	service   service.GameService
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by svc. A nil logger discards output.
func NewServer(svc service.GameService, name, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: svc,
		logger:  logger,
	}

	s.mcpServer = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake - MCP Interface

Each session is an independent single player Snake game that only moves when
you advance it.

GAME OBJECTIVE:
Eat food (*) to grow the snake. The game ends when the head leaves the grid or
runs into the snake's own body.

AVAILABLE TOOLS:
- create_session: Start a new game (optional config_name and seed)
- list_sessions: List all active sessions
- get_session: Get session details
- delete_session: Remove a session
- game_state: Get the current board
- steer: Change heading without advancing time
- advance: Optionally steer, then run one or more ticks
- reset_game: Start over with the same configuration
- list_configs: List available configurations
- game_instructions: Get the full rules`),
	)

	s.registerTools()
	return s
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func headingProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"up", "down", "left", "right"},
		"description": description,
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Config ID to use (optional, see list_configs)",
				},
				"seed": map[string]interface{}{
					"type":        []string{"integer", "string"},
					"description": "Random seed for reproducible games (optional). Pass seeds beyond 2^53 as a decimal string.",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	// Game operations
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "steer",
		Description: "Change the snake's heading without advancing time. Reversing into the neck is ignored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"heading":    headingProperty("New heading"),
			},
			Required: []string{"session_id", "heading"},
		},
	}, s.handleSteer)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "advance",
		Description: fmt.Sprintf("Optionally steer, then advance the game by up to %d ticks. Stops early on game over.", service.MaxAdvanceTicks),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"heading":    headingProperty("Heading to apply before the first tick (optional)"),
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": "Number of ticks to run (default 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleAdvance)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to a fresh start",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListConfigs)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// Tool handlers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// maxExactFloat is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactFloat = 1 << 53

// int64Argument reads an integer argument. JSON numbers decode as float64,
// so larger values must arrive as decimal strings.
func int64Argument(args map[string]interface{}, key string) (int64, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false, errors.Errorf("%s must be an integer, got %v", key, v)
		}
		if math.Abs(v) > maxExactFloat {
			return 0, false, errors.Errorf("%s %v is too large to be exact as a number; pass it as a string", key, v)
		}
		return int64(v), true, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false, errors.Wrapf(err, "invalid %s %q", key, v)
		}
		return n, true, nil
	case interface{ Int64() (int64, error) }:
		n, err := v.Int64()
		if err != nil {
			return 0, false, errors.Wrapf(err, "invalid %s", key)
		}
		return n, true, nil
	default:
		return 0, false, errors.Errorf("%s must be an integer, got %T", key, raw)
	}
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Debug("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configName, _ := args["config_name"].(string)
	seed, _, err := int64Argument(args, "seed")
	if err != nil {
		return s.toolError("create_session", err), nil
	}

	info, err := s.service.CreateSession(ctx, configName, seed)
	if err != nil {
		return s.toolError("create_session", err), nil
	}

	text := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n%s",
		info.ID, info.ConfigName, info.Seed, formatSnapshot(info.State))
	return textAndJSON(text, info), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return s.toolError("list_sessions", err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		fmt.Fprintf(&b, "- %s (Config: %s, Status: %s, Length: %d, Created: %s)\n",
			info.ID, info.ConfigName, info.State.Status, info.State.Length, info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	info, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return s.toolError("get_session", err), nil
	}

	return textAndJSON(formatSessionInfo(info), info), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	if err := s.service.DeleteSession(ctx, sessionID); err != nil {
		return s.toolError("delete_session", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	snap, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return s.toolError("game_state", err), nil
	}

	return textAndJSON(formatSnapshot(snap), snap), nil
}

func (s *Server) handleSteer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	heading, _ := args["heading"].(string)
	if heading == "" {
		return mcp.NewToolResultError("heading is required (one of: " + headingNames() + ")"), nil
	}

	snap, err := s.service.Steer(ctx, sessionID, heading)
	if err != nil {
		return s.toolError("steer", err), nil
	}

	return textAndJSON(formatSnapshot(snap), snap), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	heading, _ := args["heading"].(string)
	ticks := 1
	n, ok, err := int64Argument(args, "ticks")
	if err != nil {
		return s.toolError("advance", err), nil
	}
	if ok {
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
		ticks = int(n)
	}

	result, err := s.service.Advance(ctx, sessionID, heading, ticks)
	if err != nil {
		return s.toolError("advance", err), nil
	}

	return textAndJSON(formatAdvanceResult(result), result), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	snap, err := s.service.Reset(ctx, sessionID)
	if err != nil {
		return s.toolError("reset_game", err), nil
	}

	return textAndJSON("Game reset\n\n"+formatSnapshot(snap), snap), nil
}

func (s *Server) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.service.ListConfigs(ctx)
	if err != nil {
		return s.toolError("list_configs", err), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		grid := engine.Grid{Width: config.Width, Height: config.Height}
		fmt.Fprintf(&b, "• %s (config_name: %s)\n  %s\n  Grid: %dx%d (%d cells), Initial length: %d, Tick: %dms\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Width, config.Height, grid.Cells(),
			config.InitialLength, config.TickMillis)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Snake - Complete Instructions

GAME OBJECTIVE:
Grow the snake by eating food. Length is the only score.

COORDINATES:
• x grows to the right, y grows upwards
• A grid of width W and height H has cells x = 0..W and y = 0..H
• Boards are printed top row first, so the first line is y = H

GRID LEGEND:
• H = snake head
• o = snake body
• * = food
• . = empty cell

MOVEMENT COMMANDS:
• steer: change heading (up, down, left, right) without moving
• advance: optionally steer, then move one cell per tick
• A new snake stands still until it is first steered
• Reversing straight into the neck is ignored

GROWTH:
• Eating food grows the snake by one on the tick it is eaten
• New food appears at a random cell, possibly under the snake

GAME OVER:
• The head leaves the grid (out_of_bounds)
• The head moves onto the snake's own body (self_collision)
• An ended game ignores steering; advance runs no ticks; use reset_game

Good luck!`

// Formatting helpers

func textAndJSON(text string, v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(text)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
			mcp.NewTextContent(string(data)),
		},
	}
}

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\n\n%s",
		info.ID, info.ConfigName, info.Seed,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(info.State))
}

func formatSnapshot(snap *service.Snapshot) string {
	if snap == nil {
		return "No game state available"
	}

	var b strings.Builder
	if snap.Status == service.StatusEnded {
		fmt.Fprintf(&b, "GAME OVER | Cause: %s | Final length: %d | Ticks: %d | Food eaten: %d\n",
			snap.Cause, snap.Length, snap.Ticks, snap.FoodEaten)
		return b.String()
	}

	fmt.Fprintf(&b, "Length: %d | Ticks: %d | Food eaten: %d | Heading: %s\n",
		snap.Length, snap.Ticks, snap.FoodEaten, snap.Heading)
	if len(snap.Snake) > 0 {
		fmt.Fprintf(&b, "Head: %s", snap.Snake[0])
	}
	if snap.Food != nil {
		fmt.Fprintf(&b, " | Food: %s", *snap.Food)
	}
	b.WriteString("\n\n")
	for _, row := range snap.Board {
		b.WriteString(row)
		b.WriteString("\n")
	}

	return b.String()
}

func formatAdvanceResult(result *service.AdvanceResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticks executed: %d/%d", result.TicksExecuted, result.RequestedTicks)
	if result.Truncated {
		fmt.Fprintf(&b, " (limited to %d)", result.Limit)
	}
	if result.Interrupted {
		b.WriteString(" (interrupted)")
	}
	b.WriteString("\n")
	if result.FoodEaten > 0 {
		fmt.Fprintf(&b, "Food eaten: %d\n", result.FoodEaten)
	}
	for _, ev := range result.Events {
		fmt.Fprintf(&b, "  tick %d: %s\n", ev.Tick, ev.Message)
	}
	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.State))

	return b.String()
}

// headingNames lists the accepted heading spellings for error hints.
func headingNames() string {
	names := make([]string, 0, len(engine.Headings))
	for _, h := range engine.Headings {
		names = append(names, h.String())
	}
	return strings.Join(names, ", ")
}
