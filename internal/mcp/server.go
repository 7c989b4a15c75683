// Package mcp exposes the book to agents as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/navigation"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes book reading tools.
type Server struct {
	books  navigation.Books
	md     *markdown.Renderer
	theme  theme.Theme
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the given catalog. Chapters
// requested as HTML are rendered in th.
func NewServer(books navigation.Books, md *markdown.Renderer, th theme.Theme, logger *zap.Logger) *Server {
	if md == nil {
		md = markdown.NewRenderer(markdown.DefaultOptions())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !th.Valid() {
		th = theme.DefaultTheme
	}
	s := &Server{
		books:  books,
		md:     md,
		theme:  th,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		"unseenbook",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPartsTool, s.handleListParts)
	s.mcp.AddTool(getPartTool, s.handleGetPart)
	s.mcp.AddTool(readChapterTool, s.handleReadChapter)
	s.mcp.AddTool(nextChapterTool, s.handleNextChapter)
	s.mcp.AddTool(previousChapterTool, s.handlePreviousChapter)
	s.mcp.AddTool(searchBookTool, s.handleSearchBook)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
