package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func countDirectoryTool() mcp.Tool {
	return mcp.NewTool("count_directory",
		mcp.WithDescription("Recursively count SLOC, tokens and wideness (tokens per line) for every file of one language under a directory."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory (or single file) to scan")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language name, e.g. go, python, rust. See list_languages")),
		mcp.WithString("include", mcp.Description("Comma-separated doublestar globs relative to path; only matching files are counted")),
		mcp.WithString("exclude", mcp.Description("Comma-separated doublestar globs relative to path, e.g. vendor/**,**/*_test.go")),
	)
}

func countTextTool() mcp.Tool {
	return mcp.NewTool("count_text",
		mcp.WithDescription("Count SLOC, tokens and wideness for a snippet of source text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Source text to count")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language whose comment and string markers apply")),
	)
}

func listLanguagesTool() mcp.Tool {
	return mcp.NewTool("list_languages",
		mcp.WithDescription("List known languages with their extensions and comment/string markers. Languages without markers are listed but cannot be counted."),
	)
}
