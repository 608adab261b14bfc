package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toksloc/internal/languages"
	"toksloc/internal/model"
)

// runCommand 执行根命令并返回 stdout、stderr 与错误。
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("test")
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\nfunc main() {}\n")
	writeFile(t, filepath.Join(dir, "pkg", "util.go"), "package pkg\n")
	writeFile(t, filepath.Join(dir, "script.py"), "print(1)\n")
	return dir
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "toksloc version test\n", stdout)
}

func TestScanCommandText(t *testing.T) {
	dir := sampleProject(t)

	stdout, _, err := runCommand(t, "scan", dir, "go")
	require.NoError(t, err)

	expected := "" +
		"main.go     sloc: 3      tokens: 8      wideness: 3\n" +
		"pkg/util.go sloc: 2      tokens: 2      wideness: 1\n" +
		"total       sloc: 5      tokens: 10     wideness: 2\n"
	assert.Equal(t, expected, stdout)
}

func TestScanCommandLanguageIsCaseInsensitive(t *testing.T) {
	dir := sampleProject(t)

	stdout, _, err := runCommand(t, "scan", dir, " Python ")
	require.NoError(t, err)
	assert.Contains(t, stdout, "script.py")
	assert.NotContains(t, stdout, "main.go")
}

func TestScanCommandJSONExport(t *testing.T) {
	dir := sampleProject(t)
	output := filepath.Join(t.TempDir(), "out", "result.json")

	stdout, stderr, err := runCommand(t, "scan", dir, "go", "--format", "json", "--output", output, "--exclude", "pkg/**")
	require.NoError(t, err)
	assert.Contains(t, stderr, "JSON exported to")

	var printed model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &printed))
	require.Len(t, printed.Files, 1)
	assert.Equal(t, "main.go", printed.Files[0].Path)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t, stdout, string(content))
}

func TestScanCommandTable(t *testing.T) {
	stdout, _, err := runCommand(t, "scan", sampleProject(t), "go", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, stdout, "WIDENESS")
	assert.Contains(t, stdout, "TOTAL (2 files)")
}

func TestScanCommandErrors(t *testing.T) {
	dir := sampleProject(t)

	_, _, err := runCommand(t, "scan", dir, "cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, languages.ErrUnknownLanguage)
	assert.Equal(t, "unknown file-extensions for cobol", err.Error())

	_, _, err = runCommand(t, "scan", dir, "pascal")
	require.Error(t, err)
	assert.Equal(t, "unknown line comment token for pascal", err.Error())

	_, _, err = runCommand(t, "scan", dir, "rust")
	require.Error(t, err)
	assert.Equal(t, "no rust files found in directory `"+dir+"`", err.Error())

	_, _, err = runCommand(t, "scan", dir, "go", "--format", "xml")
	assert.Error(t, err)

	_, _, err = runCommand(t, "scan", dir, "go", "--workers", "0")
	assert.Error(t, err)

	_, _, err = runCommand(t, "scan", dir)
	assert.Error(t, err)
}

func TestLanguageCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "language")
	require.NoError(t, err)

	assert.Contains(t, stdout, "LANGUAGE")
	assert.Regexp(t, `(?m)^python\s+\.py\s+#\s+""" """\s+'$`, stdout)
	assert.Regexp(t, `(?m)^pascal\s+.*-\s+-\s+-$`, stdout)
}

func TestRootFlagsValidation(t *testing.T) {
	_, _, err := runCommand(t, "--log-level", "loud", "version")
	assert.Error(t, err)

	_, _, err = runCommand(t, "--log-format", "xml", "version")
	assert.Error(t, err)
}

func TestProfilesFlag(t *testing.T) {
	profiles := filepath.Join(t.TempDir(), "profiles.json")
	writeFile(t, profiles, `[{"name": "Lua", "extensions": [".lua"], "line_comment": "--", "string_delimiter": "\""}]`)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "init.lua"), "local x = 1 -- one\n")

	stdout, _, err := runCommand(t, "--profiles", profiles, "scan", dir, "lua")
	require.NoError(t, err)
	// 行尾注释中的换行不计入行数。
	assert.Equal(t, "init.lua sloc: 1      tokens: 4      wideness: 4\n"+
		"total    sloc: 1      tokens: 4      wideness: 4\n", stdout)

	_, _, err = runCommand(t, "--profiles", filepath.Join(t.TempDir(), "missing.json"), "language")
	assert.Error(t, err)
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	dir := sampleProject(t)

	stdout, stderr, err := runCommand(t, "--log-level", "debug", "--log-format", "json", "scan", dir, "go")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "scan started")
	assert.Contains(t, stderr, `"msg":"scan started"`)
}
