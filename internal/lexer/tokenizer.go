package lexer

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Token 是原文中的一段连续文本，所有 token 都直接切片自输入，不额外分配。
//
// 可能的形态：
// - 同一分类的连续非空白字符
// - 单个结构字符（包括 "\n"）
// - 空串：空白字符序列被吞掉后留下的边界
type Token string

// IsNewline 报告 token 是否恰好是一个换行。
func (t Token) IsNewline() bool {
	return t == "\n"
}

// IsBlank 报告 token 是否为空或只含空白。
func (t Token) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Tokens 把整段文本切分为 token 序列。
// 返回的序列可以重复遍历，每次遍历都从头开始；空输入不产生任何 token。
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if text == "" {
			return
		}

		// 第一个字符无条件作为首个 token 的内容，即使它是空白。
		first, width := utf8.DecodeRuneInString(text)
		start, end := 0, width
		prev := Classify(first)

		for i := width; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			current := Classify(r)

			if r == '\n' || !prev.Merges(current) {
				if !yield(Token(text[start:end])) {
					return
				}
				start, end = i, i
			}
			// 同一 token 内的字符分类相同，因此保留的字符总是连续的。
			if r == '\n' || current != ClassWhitespace {
				end = i + size
			}

			prev = current
			i += size
		}

		yield(Token(text[start:end]))
	}
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines 以文本模式的方式统一换行符。
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	return newlineReplacer.Replace(text)
}
