package lexer

import "github.com/edwingeng/deque"

// Tokens is the parser's view of a scanned source: a finite, ordered stream
// that can be peeked one token ahead and consumed once.
type Tokens struct {
	queue deque.Deque
	eof   Token
}

// NewTokens queues toks. The final token is expected to be EOF; Next keeps
// returning it once the queue is drained.
func NewTokens(toks []Token) *Tokens {
	t := &Tokens{queue: deque.NewDeque()}
	for _, tok := range toks {
		t.queue.PushBack(tok)
	}
	if n := len(toks); n > 0 {
		t.eof = toks[n-1]
	}
	return t
}

// Peek returns the next token without consuming it.
func (t *Tokens) Peek() Token {
	if t.queue.Empty() {
		return t.eof
	}
	return t.queue.Front().(Token)
}

// Next consumes and returns the next token.
func (t *Tokens) Next() Token {
	if t.queue.Empty() {
		return t.eof
	}
	return t.queue.PopFront().(Token)
}

// Len is the number of tokens not yet consumed.
func (t *Tokens) Len() int {
	return t.queue.Len()
}

// Done reports whether only EOF remains.
func (t *Tokens) Done() bool {
	return t.Peek().Kind == KindEOF
}
