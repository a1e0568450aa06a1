package engine

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/agenthands/nlox/pkg/interpreter"
)

// Session runs a sequence of source chunks against one environment, the way
// a REPL does. Bindings made by a chunk stay visible to later chunks, even
// when the chunk fails part way.
type Session struct {
	env    *interpreter.Environment
	out    io.Writer
	gas    int
	chunks int
}

func NewSession(out io.Writer) *Session {
	return &Session{env: interpreter.NewEnvironment(), out: out}
}

// Exec scans, parses and runs one chunk. Nothing runs if the chunk does not
// scan or parse.
func (s *Session) Exec(src string) error {
	s.chunks++
	stmts, err := ScanAndParse(src)
	if err != nil {
		if glog.V(3) {
			glog.V(3).Infof("session: chunk %d rejected in %s phase", s.chunks, Phase(err))
		}
		return err
	}
	in := interpreter.New(s.env, s.out)
	in.SetGasLimit(s.gas)
	if err := in.Run(stmts); err != nil {
		if glog.V(3) {
			glog.V(3).Infof("session: chunk %d failed after partial execution: %v", s.chunks, err)
		}
		return err
	}
	return nil
}

// ExecFile runs the contents of path as one chunk.
func (s *Session) ExecFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return s.Exec(string(src))
}

// SetGasLimit caps the statements each chunk may execute. Zero, the
// default, means unlimited.
func (s *Session) SetGasLimit(limit int) {
	s.gas = limit
}

func (s *Session) Environment() *interpreter.Environment {
	return s.env
}

// Reset forgets every binding.
func (s *Session) Reset() {
	s.env.Reset()
	s.chunks = 0
}
