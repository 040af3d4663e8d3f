/*
Package scanner defines an interface for scanners to be used with the ll1
parsing package.

Parsers decide on token kinds only, so any lexer producing values with a
Kind() works. Two default scanner implementations are provided: (1) a thin
wrapper over the Go std lib 'text/scanner', and (2) an adapter for
lexmachine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 cache-nez

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/cache-nez/scallion"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scallion.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("scallion.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token kinds of the default tokenizer are replicated here for practical
// reasons.
const (
	EOF       rune = scanner.EOF
	Ident     rune = scanner.Ident
	Int       rune = scanner.Int
	Float     rune = scanner.Float
	Char      rune = scanner.Char
	String    rune = scanner.String
	RawString rune = scanner.RawString
	Comment   rune = scanner.Comment
)

// Tokenizer is a scanner interface. NextToken returns a token with kind EOF
// at the end of the input.
type Tokenizer interface {
	NextToken() scallion.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go
// language. Its token kinds are the rune constants above, plus the literal
// rune for single-character tokens.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() scallion.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   t.lastToken,
		lexeme: t.TokenText(),
		span:   scallion.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// Go tokenizer as well as the lexmachine scanner.
type DefaultToken struct {
	kind   scallion.Kind
	lexeme string
	Val    interface{}
	span   scallion.Span
}

func MakeDefaultToken(kind scallion.Kind, lexeme string, span scallion.Span) DefaultToken {
	return DefaultToken{
		kind:   kind,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) Kind() scallion.Kind {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() scallion.Span {
	return t.span
}

// --- Token streams ---------------------------------------------------------

// Stream adapts a Tokenizer to the TokenStream the parse loop consumes. The
// stream ends at the first token of kind eof.
func Stream(tz Tokenizer, eof scallion.Kind) scallion.TokenStream {
	return &tokenizerStream{tz: tz, eof: eof}
}

// GoStream is Stream for the GoTokenizer's end-of-input kind.
func GoStream(tz Tokenizer) scallion.TokenStream {
	return Stream(tz, EOF)
}

type tokenizerStream struct {
	tz   Tokenizer
	eof  scallion.Kind
	done bool
}

func (s *tokenizerStream) Next() (scallion.Token, bool) {
	if s.done {
		return nil, false
	}
	tok := s.tz.NextToken()
	if tok.Kind() == s.eof {
		s.done = true
		return nil, false
	}
	return tok, true
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

const (
	optionSkipComments uint = 1 << 1 // do not pass comments
	optionUnifyStrings uint = 1 << 2 // treat raw strings and single chars as strings
)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

func (t *DefaultTokenizer) hasmode(m uint) bool {
	if m == optionUnifyStrings {
		return t.unifyStrings
	}
	return t.Mode&m > 0
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
