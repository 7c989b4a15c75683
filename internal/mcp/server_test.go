package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog := content.NewCatalog(content.Embedded(), content.CatalogConfig{}, nil)
	return NewServer(catalog, nil, theme.Light, nil)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_parts", listPartsTool, "list_parts"},
		{"get_part", getPartTool, "get_part"},
		{"read_chapter", readChapterTool, "read_chapter"},
		{"next_chapter", nextChapterTool, "next_chapter"},
		{"previous_chapter", previousChapterTool, "previous_chapter"},
		{"search_book", searchBookTool, "search_book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
			if _, ok := tt.tool.InputSchema.Properties["locale"]; !ok {
				t.Error("every tool takes a locale")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.theme != theme.Light {
		t.Errorf("theme = %q", srv.theme)
	}
}

func TestHandleListParts(t *testing.T) {
	srv := newTestServer(t)

	text := resultText(t, call(t, srv.handleListParts, map[string]any{}))
	if !strings.Contains(text, "## Part 1: The Core Mechanics of Flutter") {
		t.Errorf("missing part heading:\n%s", text)
	}
	if strings.Index(text, "Chapter 20:") > strings.Index(text, "Chapter 19:") {
		t.Error("chapters should follow declaration order")
	}

	text = resultText(t, call(t, srv.handleListParts, map[string]any{"locale": "ar"}))
	if !strings.Contains(text, "الآليات الأساسية لـ Flutter") {
		t.Error("arabic listing missing part title")
	}

	if !call(t, srv.handleListParts, map[string]any{"locale": "fr"}).IsError {
		t.Error("expected error for unsupported locale")
	}
}

func TestHandleGetPart(t *testing.T) {
	srv := newTestServer(t)

	text := resultText(t, call(t, srv.handleGetPart, map[string]any{"part_id": float64(2)}))
	if !strings.Contains(text, "Advanced Patterns and Architecture") {
		t.Errorf("unexpected part text:\n%s", text)
	}

	if !call(t, srv.handleGetPart, map[string]any{"part_id": float64(9)}).IsError {
		t.Error("expected error for unknown part")
	}
	if !call(t, srv.handleGetPart, map[string]any{}).IsError {
		t.Error("expected error for missing part_id")
	}
}

func TestHandleReadChapter(t *testing.T) {
	srv := newTestServer(t)

	t.Run("markdown", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleReadChapter, map[string]any{"chapter_id": float64(1)}))
		if !strings.Contains(text, "# Chapter 1: Beyond the Widget") || !strings.Contains(text, "```dart") {
			t.Errorf("unexpected markdown:\n%.300s", text)
		}
	})

	t.Run("html", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleReadChapter, map[string]any{"chapter_id": float64(1), "format": "html"}))
		if !strings.Contains(text, "<h1 style=") || !strings.Contains(text, "<pre") {
			t.Errorf("unexpected html:\n%.300s", text)
		}
	})

	t.Run("arabic", func(t *testing.T) {
		text := resultText(t, call(t, srv.handleReadChapter, map[string]any{"chapter_id": float64(1), "locale": "ar"}))
		if !strings.Contains(text, "ما وراء الـ Widget: فهم الأشجار الثلاث لـ Flutter") {
			t.Error("arabic chapter title missing")
		}
	})

	t.Run("unknown chapter", func(t *testing.T) {
		if !call(t, srv.handleReadChapter, map[string]any{"chapter_id": float64(99999)}).IsError {
			t.Error("expected error for unknown chapter")
		}
	})

	t.Run("bad format", func(t *testing.T) {
		if !call(t, srv.handleReadChapter, map[string]any{"chapter_id": float64(1), "format": "pdf"}).IsError {
			t.Error("expected error for unknown format")
		}
	})
}

func TestHandleAdjacentChapters(t *testing.T) {
	srv := newTestServer(t)

	text := resultText(t, call(t, srv.handleNextChapter, map[string]any{"chapter_id": float64(18)}))
	if !strings.Contains(text, "# Chapter 20:") {
		t.Errorf("next of 18 should be 20:\n%s", text)
	}
	text = resultText(t, call(t, srv.handlePreviousChapter, map[string]any{"chapter_id": float64(11)}))
	if !strings.Contains(text, "# Chapter 10:") || !strings.Contains(text, "**Part:** 1") {
		t.Errorf("previous of 11 should be chapter 10 of part 1:\n%s", text)
	}

	result := call(t, srv.handleNextChapter, map[string]any{"chapter_id": float64(19)})
	if result.IsError || !strings.Contains(resultText(t, result), "last chapter") {
		t.Error("chapter 19 should be reported as the last chapter")
	}
	result = call(t, srv.handlePreviousChapter, map[string]any{"chapter_id": float64(1)})
	if result.IsError || !strings.Contains(resultText(t, result), "first chapter") {
		t.Error("chapter 1 should be reported as the first chapter")
	}
}

func TestHandleSearchBook(t *testing.T) {
	srv := newTestServer(t)

	text := resultText(t, call(t, srv.handleSearchBook, map[string]any{"query": "platform channels"}))
	if !strings.Contains(text, "Chapter 4 (Part 1)") {
		t.Errorf("expected chapter 4 in results:\n%s", text)
	}

	result := call(t, srv.handleSearchBook, map[string]any{"query": "widget", "limit": float64(1)})
	if n := strings.Count(resultText(t, result), "\n"); n != 1 {
		t.Errorf("limit 1 returned %d lines", n)
	}

	if !call(t, srv.handleSearchBook, map[string]any{}).IsError {
		t.Error("expected error for missing query")
	}
}
