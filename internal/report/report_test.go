package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toksloc/internal/model"
)

func sampleResult() model.ScanResult {
	result := model.ScanResult{
		ScannedPath: "/tmp/project",
		Language:    "go",
		Files: []model.FileResult{
			{Path: "main.go", SLOC: 2, Tokens: 10},
			{Path: "pkg/empty.go", SLOC: 0, Tokens: 0},
			{Path: "pkg/util.go", SLOC: 4, Tokens: 10},
		},
		Errors: []model.ScanError{
			{Path: "locked.go", Error: "permission denied"},
		},
	}
	result.Finalize()
	return result
}

func TestPrintText(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintText(&buffer, sampleResult()))

	// (5 + 2.5 + 0) / 3 = 2.5，四舍六入五成双得到 2。
	expected := "" +
		"main.go      sloc: 2      tokens: 10     wideness: 5\n" +
		"pkg/util.go  sloc: 4      tokens: 10     wideness: 2\n" +
		"pkg/empty.go sloc: 0      tokens: 0      wideness: 0\n" +
		"total        sloc: 6      tokens: 20     wideness: 2\n" +
		"skipped: locked.go: permission denied\n"
	assert.Equal(t, expected, buffer.String())
}

func TestPrintTextWithoutFiles(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintText(&buffer, model.ScanResult{Language: "go"}))
	assert.Empty(t, buffer.String())
}

// TestPrintTextTotalLongerThanPaths 验证文件名比 total 短时不截断 total。
func TestPrintTextTotalLongerThanPaths(t *testing.T) {
	result := model.ScanResult{Files: []model.FileResult{{Path: "a.c", SLOC: 1, Tokens: 3}}}
	result.Finalize()

	var buffer bytes.Buffer
	require.NoError(t, PrintText(&buffer, result))
	assert.Equal(t,
		"a.c sloc: 1      tokens: 3      wideness: 3\n"+
			"total sloc: 1      tokens: 3      wideness: 3\n",
		buffer.String())
}

func TestPrintTable(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintTable(&buffer, sampleResult()))

	output := buffer.String()
	assert.Contains(t, output, "FILE")
	assert.Contains(t, output, "WIDENESS")
	assert.Contains(t, output, "TOTAL (3 files)")
	assert.Contains(t, output, "SKIPPED FILE")
	assert.Contains(t, output, "locked.go")
}

func TestPrintJSON(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintJSON(&buffer, sampleResult()))

	var decoded model.ScanResult
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	assert.Equal(t, "go", decoded.Language)
	assert.Equal(t, int64(3), decoded.Total.Files)
	assert.Equal(t, "main.go", decoded.Files[0].Path)
}

func TestWriteJSONFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "result.json")
	require.NoError(t, WriteJSONFile(path, sampleResult()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"scanned_path": "/tmp/project"`)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":       FormatText,
		"text":   FormatText,
		" JSON ": FormatJSON,
		"Table":  FormatTable,
	}
	for input, expected := range cases {
		format, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, format, input)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPrintDispatchesByFormat(t *testing.T) {
	var text, table bytes.Buffer
	require.NoError(t, Print(&text, FormatText, sampleResult()))
	require.NoError(t, Print(&table, FormatTable, sampleResult()))
	assert.NotEqual(t, text.String(), table.String())

	assert.ErrorIs(t, Print(&text, Format("xml"), sampleResult()), ErrUnknownFormat)
}
