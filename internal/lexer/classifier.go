// Package lexer 实现与语法无关的近似词法分析：
// 把文件文本切成 token，再用一个四状态的状态机区分代码、注释和字符串，
// 从而统计有效行数（SLOC）和 token 数。
//
// 该实现不处理转义、不支持嵌套块注释，字符串只识别单一分隔符，这些近似是有意为之的。
package lexer

import (
	"strings"

	"toksloc/internal/languages"
)

// State 是状态机的当前位置。
type State uint8

const (
	StateCode State = iota
	StateLineComment
	StateBlockComment
	StateString
)

func (s State) String() string {
	switch s {
	case StateLineComment:
		return "line-comment"
	case StateBlockComment:
		return "block-comment"
	case StateString:
		return "string"
	default:
		return "code"
	}
}

// Counts 是一次扫描的计数结果。
type Counts struct {
	SLOC   int64
	Tokens int64
}

// Classifier 逐个消费 token 并维护扫描状态。
// 每个文件使用独立的 Classifier，不可在 goroutine 间共享。
type Classifier struct {
	profile     languages.Profile
	state       State
	prevNewline bool
	counts      Counts
}

// NewClassifier 创建处于代码状态的分类器。
// SLOC 从 1 开始，用于计入没有结尾换行的最后一行；
// 初始视为“上一个 token 是换行”，因此文件开头的换行不会增加行数。
func NewClassifier(profile languages.Profile) *Classifier {
	return &Classifier{
		profile:     profile,
		state:       StateCode,
		prevNewline: true,
		counts:      Counts{SLOC: 1},
	}
}

// State 返回当前状态。
func (c *Classifier) State() State {
	return c.state
}

// Counts 返回目前为止的计数。
func (c *Classifier) Counts() Counts {
	return c.counts
}

// Feed 处理一个 token。
//
// 优先级顺序：
//  1. 行注释中：遇到换行回到代码状态
//  2. 块注释中：遇到包含结束标记的 token 回到代码状态（子串匹配）
//  3. 字符串中：遇到包含分隔符的 token 回到代码状态
//  4. 代码状态：依次判断行注释、块注释、字符串，最后才是普通 token
//
// 注释与字符串内部的 token（包括结束 token）都不计数。
func (c *Classifier) Feed(token Token) {
	text := string(token)

	switch c.state {
	case StateLineComment:
		if token.IsNewline() {
			c.state = StateCode
		}
	case StateBlockComment:
		if strings.Contains(text, c.profile.BlockCommentEnd) {
			c.state = StateCode
		}
	case StateString:
		if strings.Contains(text, c.profile.StringDelimiter) {
			c.state = StateCode
		}
	default:
		c.feedCode(token)
	}

	c.prevNewline = token.IsNewline()
}

func (c *Classifier) feedCode(token Token) {
	text := string(token)
	marker := c.profile.LineComment

	switch {
	case strings.HasPrefix(text, marker) || strings.HasSuffix(text, marker):
		c.state = StateLineComment
	case c.profile.HasBlockComment() && strings.HasPrefix(text, c.profile.BlockCommentStart):
		// 起始标记用前缀匹配，结束标记用子串匹配，两者不对称。
		c.state = StateBlockComment
	case strings.HasPrefix(text, c.profile.StringDelimiter):
		// 每个字符串字面量只计一次，计在开引号上。
		c.state = StateString
		c.counts.Tokens++
	default:
		if !token.IsBlank() {
			c.counts.Tokens++
		}
		if token.IsNewline() && !c.prevNewline {
			c.counts.SLOC++
		}
	}
}

// Count 对整段文本执行切分与分类。
// 空文本没有第一行可言，返回零值。
func Count(text string, profile languages.Profile) Counts {
	if text == "" {
		return Counts{}
	}

	classifier := NewClassifier(profile)
	for token := range Tokens(text) {
		classifier.Feed(token)
	}
	return classifier.Counts()
}
