package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestServerIntegration(t *testing.T) {
	tempDir := t.TempDir()

	// Create test document files
	testFiles := map[string]string{
		"study1.txt": "Lake Survey\n\nfish|count\ntrout|14\nperch|9\n\nTrout numbers recovered after restocking.",
		"study2.txt": "River Survey\n\nfish|count\ntrout|6\n\nTrout numbers stayed flat downstream.",
	}
	for filename, content := range testFiles {
		filePath := filepath.Join(tempDir, filename)
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", filename, err)
		}
	}

	cfg := newTestConfig(tempDir)
	cfg.ServerName = "integration-test-server"
	server, err := NewServer(cfg, newTestService(t, cfg))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Verify server properties
	if server.config != cfg {
		t.Error("server config not set correctly")
	}
	if server.mcpServer == nil {
		t.Error("mcpServer should be initialized")
	}

	ctx := context.Background()

	// Discovery
	searchReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: map[string]interface{}{}},
	}
	searchResult, err := server.handleDocSearchDirectory(ctx, searchReq)
	if err != nil {
		t.Fatalf("search handler failed: %v", err)
	}
	searchText := extractTextFromResult(searchResult)
	if !strings.Contains(searchText, "Found 2 document file(s)") {
		t.Errorf("search should find both documents, got: %s", searchText)
	}

	// Validate then extract one file
	path := filepath.Join(tempDir, "study1.txt")
	validateReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: map[string]interface{}{"path": path}},
	}
	validateResult, err := server.handleDocValidateFile(ctx, validateReq)
	if err != nil {
		t.Fatalf("validate handler failed: %v", err)
	}
	if !strings.Contains(extractTextFromResult(validateResult), "valid and processable") {
		t.Errorf("expected file to validate, got: %s", extractTextFromResult(validateResult))
	}

	extractResult, err := server.handleDocExtractFile(ctx, validateReq)
	if err != nil {
		t.Fatalf("extract handler failed: %v", err)
	}
	extractText := extractTextFromResult(extractResult)
	if !strings.Contains(extractText, "trout | 14") {
		t.Errorf("extract should contain table rows, got: %s", extractText)
	}

	// Meta-study over the directory
	metaReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{"clusters": float64(2)},
		},
	}
	metaResult, err := server.handleDocMetaStudy(ctx, metaReq)
	if err != nil {
		t.Fatalf("meta-study handler failed: %v", err)
	}
	metaText := extractTextFromResult(metaResult)
	if !strings.Contains(metaText, "Meta-study of 2 document(s)") {
		t.Errorf("meta-study should cover both documents, got: %s", metaText)
	}
}

func TestServerToolsRegistration(t *testing.T) {
	cfg := newTestConfig(t.TempDir())
	server, err := NewServer(cfg, newTestService(t, cfg))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Test that tools are properly registered by checking the MCP server
	if server.mcpServer == nil {
		t.Fatal("MCP server should be initialized")
	}

	// The mark3labs library doesn't expose registered tools directly,
	// but we can verify the server was created successfully
	// which means tools were registered without errors
}

func TestServerErrorHandling(t *testing.T) {
	cfg := newTestConfig(t.TempDir())

	// Test with nil study service (should not panic)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Server creation with nil service caused panic: %v", r)
		}
	}()

	_, err := NewServer(cfg, nil)
	if err == nil {
		t.Error("expected error with nil study service")
	}
}
