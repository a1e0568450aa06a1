// Package engine is the embedding surface of nlox: it ties the scanner,
// parser and interpreter together behind a few entry points.
package engine

import (
	"errors"
	"io"

	"github.com/golang/glog"

	"github.com/agenthands/nlox/pkg/compiler/ast"
	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/compiler/parser"
	"github.com/agenthands/nlox/pkg/interpreter"
)

// Phases reported by Phase.
const (
	PhaseScan    = "scan"
	PhaseParse   = "parse"
	PhaseRuntime = "runtime"
)

// ScanAndParse turns source text into statements. The error, if any, is a
// *lexer.ScanError or a *parser.ParseError.
func ScanAndParse(src string) ([]ast.Statement, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	if glog.V(3) {
		glog.V(3).Infof("engine: scanned %d tokens", toks.Len())
	}
	return parser.Parse(toks)
}

// Run executes stmts against env, writing printed values to out. A nil env
// runs in a throwaway global scope.
func Run(stmts []ast.Statement, env *interpreter.Environment, out io.Writer) error {
	return interpreter.New(env, out).Run(stmts)
}

// Phase names the pipeline stage an error came from, or "" when err did not
// come from the pipeline.
func Phase(err error) string {
	var (
		serr *lexer.ScanError
		perr *parser.ParseError
		rerr *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &serr):
		return PhaseScan
	case errors.As(err, &perr):
		return PhaseParse
	case errors.As(err, &rerr):
		return PhaseRuntime
	}
	return ""
}
