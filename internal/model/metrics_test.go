package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileResultWideness(t *testing.T) {
	assert.Equal(t, 2.5, FileResult{SLOC: 4, Tokens: 10}.Wideness())
	assert.Equal(t, 0.0, FileResult{SLOC: 0, Tokens: 0}.Wideness())

	// 与 Python 的 round 一致：恰好 .5 时取偶数。
	assert.Equal(t, int64(2), FileResult{SLOC: 4, Tokens: 10}.RoundedWideness())
	assert.Equal(t, int64(4), FileResult{SLOC: 2, Tokens: 7}.RoundedWideness())
	assert.Equal(t, int64(3), FileResult{SLOC: 3, Tokens: 10}.RoundedWideness())
}

func TestAggregate(t *testing.T) {
	files := []FileResult{
		{Path: "a.go", SLOC: 10, Tokens: 50},
		{Path: "b.go", SLOC: 4, Tokens: 6},
		{Path: "empty.go", SLOC: 0, Tokens: 0},
	}

	total := Aggregate(files)

	assert.Equal(t, int64(3), total.Files)
	assert.Equal(t, int64(14), total.SLOC)
	assert.Equal(t, int64(56), total.Tokens)
	assert.InDelta(t, 6.5, total.Wideness, 1e-9)
	// 6.5 / 3 ≈ 2.17，空文件也计入分母。
	assert.Equal(t, int64(2), total.AverageWideness())
}

func TestAggregateEmpty(t *testing.T) {
	total := Aggregate(nil)
	assert.Equal(t, AggregateResult{}, total)
	assert.Equal(t, int64(0), total.AverageWideness())
}

func TestScanResultFinalize(t *testing.T) {
	result := ScanResult{
		Files: []FileResult{
			{Path: "b.go", SLOC: 1, Tokens: 5},
			{Path: "c.go", SLOC: 2, Tokens: 9},
			{Path: "a.go", SLOC: 3, Tokens: 5},
		},
		Errors: []ScanError{
			{Path: "z.go", Error: "denied"},
			{Path: "m.go", Error: "denied"},
		},
	}

	result.Finalize()

	paths := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		paths = append(paths, file.Path)
	}
	assert.Equal(t, []string{"c.go", "a.go", "b.go"}, paths)
	assert.Equal(t, "m.go", result.Errors[0].Path)
	assert.Equal(t, int64(19), result.Total.Tokens)
	assert.Equal(t, int64(3), result.Total.Files)
}
