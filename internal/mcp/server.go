package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/veldtlabs/docstudy/internal/api"
	"github.com/veldtlabs/docstudy/internal/config"
	"github.com/veldtlabs/docstudy/internal/descriptions"
	"github.com/veldtlabs/docstudy/internal/extract"
	"github.com/veldtlabs/docstudy/internal/metastudy"
	"github.com/veldtlabs/docstudy/internal/session"
	"github.com/veldtlabs/docstudy/internal/study"
)

// Server represents the MCP server instance
type Server struct {
	config       *config.Config
	studyService *study.Service
	mcpServer    *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, studyService *study.Service) (*Server, error) {
	if studyService == nil {
		return nil, fmt.Errorf("studyService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:       cfg,
		studyService: studyService,
		mcpServer:    mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register document extract tool
	docExtractFileTool := mcp.NewTool(
		"doc_extract_file",
		mcp.WithDescription("Extract classified tables, text sections, titles and list items from a document"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
	)
	s.mcpServer.AddTool(docExtractFileTool, s.handleDocExtractFile)

	// Register extract-to-excel tool
	docExtractToExcelTool := mcp.NewTool(
		"doc_extract_to_excel",
		mcp.WithDescription("Extract a document and export the result to a multi-sheet Excel workbook"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
		mcp.WithString("output_path",
			mcp.Description("Path for the produced .xlsx file (defaults to extracted_<name>.xlsx next to the source)"),
		),
	)
	s.mcpServer.AddTool(docExtractToExcelTool, s.handleDocExtractToExcel)

	// Register document validate tool
	docValidateFileTool := mcp.NewTool(
		"doc_validate_file",
		mcp.WithDescription("Validate if a file is a processable document"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
	)
	s.mcpServer.AddTool(docValidateFileTool, s.handleDocValidateFile)

	// Register directory search tool
	docSearchDirectoryTool := mcp.NewTool(
		"doc_search_directory",
		mcp.WithDescription("Search for document files in a directory with optional name filtering"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive substring to match file names against"),
		),
	)
	s.mcpServer.AddTool(docSearchDirectoryTool, s.handleDocSearchDirectory)

	// Register meta-study tool
	docMetaStudyTool := mcp.NewTool(
		"doc_meta_study",
		mcp.WithDescription("Cluster the documents in a directory by content similarity and report defining terms"),
		mcp.WithString("directory",
			mcp.Description("Directory containing the documents to analyze (uses default if empty)"),
		),
		mcp.WithNumber("clusters",
			mcp.Description("Number of clusters (defaults to the configured cluster count)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Random seed for deterministic clustering (defaults to the configured seed)"),
		),
	)
	s.mcpServer.AddTool(docMetaStudyTool, s.handleDocMetaStudy)

	// Register server info tool
	docServerInfoTool := mcp.NewTool(
		"doc_server_info",
		mcp.WithDescription("Get server information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(docServerInfoTool, s.handleDocServerInfo)
}

// Handler functions
func (s *Server) handleDocExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.studyService.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDocument(doc)), nil
}

func (s *Server) handleDocExtractToExcel(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	outputPath := ""
	if op, ok := args["output_path"].(string); ok {
		outputPath = op
	}
	if outputPath == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outputPath = filepath.Join(filepath.Dir(path), "extracted_"+stem+".xlsx")
	}

	result, err := s.studyService.ExtractToExcel(path, outputPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extraction completed: %s\n", result.ExcelFile)
	responseText += fmt.Sprintf("Tables found: %d\n", result.Summary.TablesFound)
	responseText += fmt.Sprintf("Text sections found: %d\n", result.Summary.TextSectionsFound)
	responseText += fmt.Sprintf("Charts found: %d\n", result.Summary.ChartsFound)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.studyService.ValidateFile(path)

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Document %s is valid and processable", result.Path)
	} else {
		responseText = fmt.Sprintf("Document validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.DocumentDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.studyService.SearchDirectory(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No document files found in directory: %s", result.Directory)
		if result.Query != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.Query)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocMetaStudy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.DocumentDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	clusters := s.config.ClusterCount
	if k, ok := args["clusters"].(float64); ok && k >= 1 {
		clusters = int(k)
	}

	seed := s.config.Seed
	if sd, ok := args["seed"].(float64); ok {
		seed = int64(sd)
	}

	paths, err := s.studyService.DocumentPaths(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	corpus, err := s.studyService.BuildCorpus(paths)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.studyService.MetaStudy(corpus, clusters, seed)
	return mcp.NewToolResultText(s.formatMetaStudyResult(directory, result)), nil
}

func (s *Server) handleDocServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods
func (s *Server) formatDocument(doc *extract.Document) string {
	text := fmt.Sprintf("Extracted document: %s\n", doc.Metadata.Filename)
	text += fmt.Sprintf("Total elements: %d\n", doc.Metadata.TotalElements)
	text += fmt.Sprintf("Tables: %d, Text sections: %d\n", len(doc.Tables), len(doc.TextSections))

	for _, table := range doc.Tables {
		text += fmt.Sprintf("\nTable %s (page %d, %d rows):\n", table.ID, table.Page, len(table.Rows))
		for _, row := range table.Rows {
			text += "  " + strings.Join(row, " | ") + "\n"
		}
	}

	if len(doc.TextSections) > 0 {
		text += "\nText sections:\n"
		for _, section := range doc.TextSections {
			text += fmt.Sprintf("[%s] %s (page %d): %s\n", section.ID, section.Type, section.Page, section.Content)
		}
	}

	return text
}

func (s *Server) formatSearchDirectoryResult(result *study.SearchResult) string {
	text := fmt.Sprintf("Found %d document file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.Query != "" {
		text += fmt.Sprintf("Search query: %s\n", result.Query)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatMetaStudyResult(directory string, result *metastudy.Result) string {
	if len(result.Matrix) == 0 {
		return fmt.Sprintf("No documents available for meta-study in directory: %s", directory)
	}

	text := fmt.Sprintf("Meta-study of %d document(s) in %s\n", len(result.Matrix), directory)
	text += fmt.Sprintf("Clusters: %d\n", len(result.Clusters))

	ids := make([]int, 0, len(result.Clusters))
	for id := range result.Clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		text += fmt.Sprintf("\nCluster %d:\n", id)
		for _, filename := range result.Clusters[id] {
			text += fmt.Sprintf("  - %s\n", filename)
		}
		if terms := result.TopTerms[id]; len(terms) > 0 {
			text += fmt.Sprintf("  Top terms: %s\n", strings.Join(terms, ", "))
		}
	}

	return text
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Document directory: %s\n", s.config.DocumentDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("Default cluster count: %d (seed %d)\n", s.config.ClusterCount, s.config.Seed)

	names := descriptions.GetAllToolNames()
	sort.Strings(names)

	text += "\nAvailable tools:\n"
	for _, name := range names {
		text += fmt.Sprintf("\n• %s\n", name)
		text += descriptions.GetToolDescription(name) + "\n"
	}

	return text
}

// Run starts the server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting document study MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves the HTTP API instead of the MCP stdio transport.
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := api.NewServer(s.config, s.studyService, session.NewRegistry())
	return httpServer.Run(ctx)
}
