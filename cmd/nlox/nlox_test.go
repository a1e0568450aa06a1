package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/nlox/pkg/config"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var out, errOut bytes.Buffer
	var res result
	d := &driver{
		stdin:  strings.NewReader(stdin),
		stdout: &out,
		stderr: &errOut,
		exit:   func(code int) { res.code = code },
		cfg:    config.Default(),
	}
	cmd := newNloxCmd(d)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	res.stdout = out.String()
	res.stderr = errOut.String()
	return res
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.lox", "var total = 40;")
	second := writeFile(t, dir, "second.lox", "total = total + 2;\nprint total;")

	res := execute(t, "", "run", first, second)
	assert.Equal(t, result{stdout: "42\n"}, res)
}

func TestRunStdin(t *testing.T) {
	res := execute(t, `print "piped";`, "run", "-")
	assert.Equal(t, result{stdout: "piped\n"}, res)
}

func TestRunReportsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lox", "print 1;\nprint 1 + \"x\";\nprint 2;")

	res := execute(t, "", "run", path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "1\n", res.stdout)
	assert.Equal(t,
		"error[runtime] "+path+":2:8: type mismatch: operator '+' cannot be applied to int and string\n"+
			"   2 | print 1 + \"x\";\n"+
			"     |         ^\n",
		res.stderr)
}

func TestRunGas(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loop.lox", "while true { }")
	res := execute(t, "", "run", "--gas", "100", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "error[runtime] "+path+":1:11: gas exhausted")
}

func TestRunMissingFile(t *testing.T) {
	res := execute(t, "", "run", filepath.Join(t.TempDir(), "nope.lox"))
	assert.Equal(t, 1, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "error: reading "), res.stderr)
}

func TestRepl(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "quiet.yaml", "prompt: \"\"\nexcerpt: false\n")

	input := strings.Join([]string{
		"var a = 1;",
		"print a;",
		"var b = 2; print c;",
		"",
		":env",
		":reset",
		":env",
		"print a;",
		":quit",
		"print 99;",
	}, "\n")

	res := execute(t, input, "--config", cfg, "repl")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1\na = int(1)\nb = int(2)\n", res.stdout)
	assert.Equal(t,
		"error[runtime] 1:17: undefined variable 'c'\n"+
			"error[runtime] 1:6: undefined variable 'a'\n",
		res.stderr)
}

func TestRootStartsRepl(t *testing.T) {
	res := execute(t, "print 3;\n", "repl")
	assert.Equal(t, "> 3\n> \n", res.stdout)

	res = execute(t, "print 3;\n")
	assert.Equal(t, "> 3\n> \n", res.stdout)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lox", "var x = 1; print x;")
	bad := writeFile(t, dir, "bad.lox", "var = 1;")
	worse := writeFile(t, dir, "worse.lox", "print @;")

	res := execute(t, "", "--color", "never", "check", good, bad, worse)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, good+": ok\n", res.stdout)
	assert.Contains(t, res.stderr, "error[parse] "+bad+":1:4: identifier expected")
	assert.Contains(t, res.stderr, "error[scan] "+worse+":1:6: unexpected character '@'")
}

func TestTokensAndAST(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.lox", "print 1 + 2 * 3;")

	res := execute(t, "", "ast", path)
	assert.Equal(t, result{stdout: "(print (+ 1 (* 2 3)))\n"}, res)

	res = execute(t, "", "tokens", path)
	assert.Equal(t, 0, res.code)
	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "integer 1")
	assert.Contains(t, lines[1], "int(1)")
	assert.True(t, strings.HasPrefix(lines[7], "1:16"))
	assert.Contains(t, lines[7], "end of input")
}

func TestVersion(t *testing.T) {
	res := execute(t, "", "version")
	assert.True(t, strings.HasPrefix(res.stdout, "nlox dev ("), res.stdout)
}

func TestBadColorFlag(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	d := newDriver()
	d.stdout, d.stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newNloxCmd(d)
	cmd.SetArgs([]string{"--color", "sometimes", "version"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color mode")
}
