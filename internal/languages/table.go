package languages

const (
	cLineComment  = "//"
	cBlockStart   = "/*"
	cBlockEnd     = "*/"
	hashComment   = "#"
	doubleQuote   = `"`
	singleQuote   = "'"
	dashedComment = "--"
)

// cFamily 生成 C 风格注释（// 与 /* */）的语言配置。
func cFamily(name string, extensions ...string) Profile {
	return Profile{
		Name:              name,
		Extensions:        extensions,
		LineComment:       cLineComment,
		BlockCommentStart: cBlockStart,
		BlockCommentEnd:   cBlockEnd,
		StringDelimiter:   doubleQuote,
	}
}

// hashFamily 生成只有 # 行注释的语言配置。
func hashFamily(name string, extensions ...string) Profile {
	return Profile{
		Name:            name,
		Extensions:      extensions,
		LineComment:     hashComment,
		StringDelimiter: doubleQuote,
	}
}

// extensionsOnly 生成只有后缀信息的条目。
// 这些语言可以被 language 命令列出，但查找时会返回 ConfigError。
func extensionsOnly(name string, extensions ...string) Profile {
	return Profile{Name: name, Extensions: extensions}
}

// builtinProfiles 返回内置语言表。
func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:              "python",
			Extensions:        []string{".py"},
			LineComment:       hashComment,
			BlockCommentStart: `"""`,
			BlockCommentEnd:   `"""`,
			StringDelimiter:   singleQuote,
		},
		cFamily("go", ".go"),
		cFamily("c++", ".cpp", ".hpp", ".c", ".h"),
		cFamily("rust", ".rs"),
		cFamily("java", ".java"),
		cFamily("c", ".c", ".h"),
		cFamily("javascript", ".js"),
		cFamily("typescript", ".ts"),
		cFamily("c#", ".cs"),
		cFamily("kotlin", ".kt"),
		cFamily("swift", ".swift"),
		cFamily("scala", ".scala"),
		cFamily("groovy", ".groovy"),
		cFamily("d", ".d"),
		cFamily("haxe", ".hx"),
		cFamily("odin", ".odin"),
		cFamily("php", ".php"),
		{
			Name:            "zig",
			Extensions:      []string{".zig"},
			LineComment:     cLineComment,
			StringDelimiter: doubleQuote,
		},
		hashFamily("ruby", ".rb"),
		hashFamily("elixir", ".ex"),
		hashFamily("crystal", ".cr"),
		hashFamily("nim", ".nim"),
		hashFamily("perl", ".pl"),
		hashFamily("tcl", ".tcl"),
		{
			Name:              "julia",
			Extensions:        []string{".jl"},
			LineComment:       hashComment,
			BlockCommentStart: "#=",
			BlockCommentEnd:   "=#",
			StringDelimiter:   doubleQuote,
		},
		{
			Name:              "haskell",
			Extensions:        []string{".hs"},
			LineComment:       dashedComment,
			BlockCommentStart: "{-",
			BlockCommentEnd:   "-}",
			StringDelimiter:   doubleQuote,
		},
		{
			Name:            "ada",
			Extensions:      []string{".ads", ".adb"},
			LineComment:     dashedComment,
			StringDelimiter: doubleQuote,
		},
		extensionsOnly("blade", ".b"),
		extensionsOnly("pascal", ".pas"),
		extensionsOnly("prolog", ".pl"),
		extensionsOnly("visual_basic", ".vb"),
		extensionsOnly("ocaml", ".ml"),
		extensionsOnly("fortran", ".F"),
		extensionsOnly("f#", ".fs"),
		extensionsOnly("clojure", ".cj"),
		extensionsOnly("smalltalk", ".st"),
		extensionsOnly("lisp", ".lisp"),
		extensionsOnly("objective-c", ".m", ".h"),
		extensionsOnly("racket", ".rkt"),
		extensionsOnly("erlang", ".erl"),
		extensionsOnly("sml", ".ml"),
		extensionsOnly("scheme", ".scm"),
		extensionsOnly("orng", ".orng"),
	}
}
