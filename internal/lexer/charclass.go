package lexer

import "unicode"

// Class 是字符的粗粒度分类。
type Class uint8

const (
	ClassIdentifier Class = iota // 字母、数字、下划线
	ClassWhitespace              // 除换行外的空白
	ClassStructural              // 换行、括号、引号
	ClassOther                   // 运算符与其他标点
)

// ASCII 查表，避免热路径上的 unicode 调用。
var asciiClass [128]Class

func init() {
	for i := 0; i < len(asciiClass); i++ {
		asciiClass[i] = classifySlow(rune(i))
	}
}

// Classify 返回单个字符的分类，无副作用。
func Classify(r rune) Class {
	if r >= 0 && r < rune(len(asciiClass)) {
		return asciiClass[r]
	}
	return classifySlow(r)
}

func classifySlow(r rune) Class {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
		return ClassIdentifier
	case isStructural(r):
		return ClassStructural
	case unicode.IsSpace(r):
		return ClassWhitespace
	default:
		return ClassOther
	}
}

func isStructural(r rune) bool {
	switch r {
	case '\n', '(', ')', '[', ']', '{', '}', '"', '\'', '`':
		return true
	}
	return false
}

// Merges 判断分类为 c 的字符与紧随其后、分类为 next 的字符能否归入同一个 token。
// 结构字符永远单独成 token，即使相邻的是同一个结构字符。
func (c Class) Merges(next Class) bool {
	return c == next && c != ClassStructural
}

func (c Class) String() string {
	switch c {
	case ClassIdentifier:
		return "identifier"
	case ClassWhitespace:
		return "whitespace"
	case ClassStructural:
		return "structural"
	default:
		return "other"
	}
}
