// Package model 定义 toksloc 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import (
	"math"
	"sort"
)

// FileResult 表示单文件扫描结果，创建后不再修改。
type FileResult struct {
	Path   string `json:"path"`
	SLOC   int64  `json:"sloc"`
	Tokens int64  `json:"tokens"`
}

// Wideness 返回每行平均 token 数；SLOC 为 0 时返回 0。
func (f FileResult) Wideness() float64 {
	if f.SLOC <= 0 {
		return 0
	}
	return float64(f.Tokens) / float64(f.SLOC)
}

// RoundedWideness 返回四舍六入五成双后的 wideness，用于报表展示。
func (f FileResult) RoundedWideness() int64 {
	return int64(math.RoundToEven(f.Wideness()))
}

// AggregateResult 是全部文件的汇总，随时可由 FileResult 列表重新计算。
//
// 注意：
// - Wideness 是各文件 tokens/sloc 之和（仅 SLOC > 0 的文件参与）
// - 平均 wideness 的分母是全部文件数，包含 SLOC 为 0 的空文件
type AggregateResult struct {
	Files    int64   `json:"files"`
	SLOC     int64   `json:"sloc"`
	Tokens   int64   `json:"tokens"`
	Wideness float64 `json:"wideness"`
}

// Add 将一个文件的结果累加到汇总中。
func (a *AggregateResult) Add(file FileResult) {
	a.Files++
	a.SLOC += file.SLOC
	a.Tokens += file.Tokens
	if file.SLOC > 0 {
		a.Wideness += file.Wideness()
	}
}

// AverageWideness 返回平均 wideness（四舍六入五成双）；没有文件时返回 0。
func (a AggregateResult) AverageWideness() int64 {
	if a.Files == 0 {
		return 0
	}
	return int64(math.RoundToEven(a.Wideness / float64(a.Files)))
}

// Aggregate 从文件列表重新计算汇总。
func Aggregate(files []FileResult) AggregateResult {
	var total AggregateResult
	for _, file := range files {
		total.Add(file)
	}
	return total
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，失败的文件被跳过。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ScanResult 是一次扫描的完整输出。
type ScanResult struct {
	ScannedPath string          `json:"scanned_path"`
	Language    string          `json:"language"`
	Files       []FileResult    `json:"files"`
	Total       AggregateResult `json:"total"`
	Errors      []ScanError     `json:"errors"`
}

// Finalize 排序文件与错误，并重新计算汇总。
// 文件按 token 数降序排列，token 数相同时按路径升序，保证输出稳定。
func (r *ScanResult) Finalize() {
	sort.Slice(r.Files, func(i int, j int) bool {
		if r.Files[i].Tokens != r.Files[j].Tokens {
			return r.Files[i].Tokens > r.Files[j].Tokens
		}
		return r.Files[i].Path < r.Files[j].Path
	})

	sort.Slice(r.Errors, func(i int, j int) bool {
		return r.Errors[i].Path < r.Errors[j].Path
	})

	r.Total = Aggregate(r.Files)
}
