package mcp

import "github.com/mark3labs/mcp-go/mcp"

func localeArg() mcp.ToolOption {
	return mcp.WithString("locale",
		mcp.Description("Book language: 'en' for English (default), 'ar' for Arabic"),
		mcp.Enum("en", "ar"),
	)
}

// listPartsTool defines the list_parts MCP tool.
var listPartsTool = mcp.NewTool("list_parts",
	mcp.WithDescription("List the parts of the book with their chapters, in reading order."),
	localeArg(),
)

// getPartTool defines the get_part MCP tool.
var getPartTool = mcp.NewTool("get_part",
	mcp.WithDescription("Get one part of the book: its title, description and chapter list."),
	mcp.WithNumber("part_id",
		mcp.Required(),
		mcp.Description("Numeric part id"),
	),
	localeArg(),
)

// readChapterTool defines the read_chapter MCP tool.
var readChapterTool = mcp.NewTool("read_chapter",
	mcp.WithDescription("Read a chapter's full text. Chapters not yet written are reported as coming soon."),
	mcp.WithNumber("chapter_id",
		mcp.Required(),
		mcp.Description("Numeric chapter id"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default markdown)"),
		mcp.Enum("markdown", "html"),
	),
	localeArg(),
)

// nextChapterTool defines the next_chapter MCP tool.
var nextChapterTool = mcp.NewTool("next_chapter",
	mcp.WithDescription("Get the chapter that follows the given one in reading order, crossing part boundaries."),
	mcp.WithNumber("chapter_id",
		mcp.Required(),
		mcp.Description("Numeric id of the current chapter"),
	),
	localeArg(),
)

// previousChapterTool defines the previous_chapter MCP tool.
var previousChapterTool = mcp.NewTool("previous_chapter",
	mcp.WithDescription("Get the chapter that precedes the given one in reading order, crossing part boundaries."),
	mcp.WithNumber("chapter_id",
		mcp.Required(),
		mcp.Description("Numeric id of the current chapter"),
	),
	localeArg(),
)

// searchBookTool defines the search_book MCP tool.
var searchBookTool = mcp.NewTool("search_book",
	mcp.WithDescription("Find chapters whose title, sections or text mention a phrase (case-insensitive)."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Phrase to look for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of chapters to return (default 10)"),
	),
	localeArg(),
)
