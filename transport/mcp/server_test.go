package mcp

import (
	"context"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/termsnake/game/config"
	"github.com/wricardo/termsnake/game/service"
	"github.com/wricardo/termsnake/game/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	preset := `{"name":"Tiny","description":"two by two","width":1,"height":1}`
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(preset), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	svc := service.NewGameService(session.NewManager(nil), configs, nil)
	return NewServer(svc, "termsnake-test", "0.0.0", nil)
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()

	result, err := s.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{
		"config_name": "tiny",
		"seed":        float64(7),
	}))
	if err != nil {
		t.Fatalf("create_session failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("create_session returned error: %s", resultText(t, result))
	}

	var info service.SessionInfo
	data := result.Content[1].(mcp.TextContent).Text
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		t.Fatalf("Failed to decode session JSON: %v", err)
	}
	return info.ID
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	if s.mcpServer == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
}

func TestServer_CreateSession(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	if len(id) != session.IDLength {
		t.Errorf("Expected %d-character session ID, got %q", session.IDLength, id)
	}

	result, err := s.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{
		"config_name": "missing",
	}))
	if err != nil {
		t.Fatalf("Unexpected protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for unknown config")
	}
}

func TestServer_GameFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	id := createSession(t, s)

	result, err := s.handleGameState(ctx, callTool("game_state", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("game_state failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Length: 1") || !strings.Contains(text, "H") {
		t.Errorf("Expected board and length in state, got: %s", text)
	}

	result, err = s.handleSteer(ctx, callTool("steer", map[string]interface{}{"session_id": id, "heading": "up"}))
	if err != nil {
		t.Fatalf("steer failed: %v", err)
	}
	if !strings.Contains(resultText(t, result), "Heading: up") {
		t.Errorf("Expected heading up, got: %s", resultText(t, result))
	}

	result, err = s.handleAdvance(ctx, callTool("advance", map[string]interface{}{"session_id": id, "ticks": float64(10)}))
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	text = resultText(t, result)
	if !strings.Contains(text, "GAME OVER") || !strings.Contains(text, "out_of_bounds") {
		t.Errorf("Expected game over at the top wall, got: %s", text)
	}

	result, err = s.handleReset(ctx, callTool("reset_game", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("reset_game failed: %v", err)
	}
	if !strings.Contains(resultText(t, result), "Game reset") {
		t.Errorf("Unexpected reset output: %s", resultText(t, result))
	}

	result, err = s.handleDeleteSession(ctx, callTool("delete_session", map[string]interface{}{"session_id": id}))
	if err != nil || result.IsError {
		t.Fatalf("delete_session failed: %v", err)
	}

	result, err = s.handleGetSession(ctx, callTool("get_session", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("Unexpected protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for deleted session")
	}
}

func TestServer_InvalidInput(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	id := createSession(t, s)

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
	}{
		{"steer without heading", s.handleSteer, map[string]interface{}{"session_id": id}},
		{"steer bad heading", s.handleSteer, map[string]interface{}{"session_id": id, "heading": "sideways"}},
		{"advance bad heading", s.handleAdvance, map[string]interface{}{"session_id": id, "heading": "sideways"}},
		{"advance negative ticks", s.handleAdvance, map[string]interface{}{"session_id": id, "ticks": float64(-3)}},
		{"advance fractional ticks", s.handleAdvance, map[string]interface{}{"session_id": id, "ticks": 1.5}},
		{"create fractional seed", s.handleCreateSession, map[string]interface{}{"seed": 2.5}},
		{"create seed beyond float precision", s.handleCreateSession, map[string]interface{}{"seed": float64(1 << 60)}},
		{"create unparsable seed", s.handleCreateSession, map[string]interface{}{"seed": "twelve"}},
		{"state unknown session", s.handleGameState, map[string]interface{}{"session_id": "nope"}},
		{"reset unknown session", s.handleReset, map[string]interface{}{"session_id": "nope"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := test.handler(ctx, callTool(test.name, test.args))
			if err != nil {
				t.Fatalf("Unexpected protocol error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected tool error")
			}
		})
	}
}

func TestServer_CreateSession_LargeSeed(t *testing.T) {
	s := newTestServer(t)

	const seed int64 = 1<<53 + 1
	result, err := s.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{
		"config_name": "tiny.json",
		"seed":        strconv.FormatInt(seed, 10),
	}))
	if err != nil {
		t.Fatalf("create_session failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("create_session returned error: %s", resultText(t, result))
	}

	var info service.SessionInfo
	data := result.Content[1].(mcp.TextContent).Text
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		t.Fatalf("Failed to decode session JSON: %v", err)
	}
	if info.Seed != seed {
		t.Errorf("Expected seed %d, got %d", seed, info.Seed)
	}
	if info.ConfigName != "tiny" {
		t.Errorf("Expected config name tiny, got %q", info.ConfigName)
	}
}

func TestInt64Argument(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    int64
		present bool
		wantErr bool
	}{
		{"missing", nil, 0, false, false},
		{"whole number", float64(42), 42, true, false},
		{"negative number", float64(-7), -7, true, false},
		{"largest exact number", float64(1 << 53), 1 << 53, true, false},
		{"decimal string", "9223372036854775807", 9223372036854775807, true, false},
		{"json number", stdjson.Number("9007199254740993"), 9007199254740993, true, false},
		{"fraction", 0.5, 0, false, true},
		{"beyond exact range", float64(1<<53) * 4, 0, false, true},
		{"bad string", "12abc", 0, false, true},
		{"wrong type", true, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{}
			if tt.value != nil {
				args["seed"] = tt.value
			}
			got, present, err := int64Argument(args, "seed")
			if (err != nil) != tt.wantErr {
				t.Fatalf("int64Argument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want || present != tt.present {
				t.Errorf("int64Argument() = (%d, %v), want (%d, %v)", got, present, tt.want, tt.present)
			}
		})
	}
}

func TestServer_ListSessionsAndConfigs(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	id := createSession(t, s)

	result, err := s.handleListSessions(ctx, callTool("list_sessions", nil))
	if err != nil {
		t.Fatalf("list_sessions failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Active Sessions (1)") || !strings.Contains(text, id) {
		t.Errorf("Unexpected session list: %s", text)
	}

	result, err = s.handleListConfigs(ctx, callTool("list_configs", nil))
	if err != nil {
		t.Fatalf("list_configs failed: %v", err)
	}
	text = resultText(t, result)
	if !strings.Contains(text, "Tiny (config_name: tiny)") || !strings.Contains(text, "Grid: 1x1 (4 cells)") {
		t.Errorf("Unexpected config list: %s", text)
	}
}

func TestServer_GameInstructions(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGameInstructions(context.Background(), callTool("game_instructions", nil))
	if err != nil {
		t.Fatalf("game_instructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, section := range []string{"GAME OBJECTIVE:", "COORDINATES:", "GRID LEGEND:", "MOVEMENT COMMANDS:", "GAME OVER:"} {
		if !strings.Contains(text, section) {
			t.Errorf("Expected %q in instructions", section)
		}
	}
}
