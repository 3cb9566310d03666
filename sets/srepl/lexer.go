package main

import (
	"strings"
	"sync"

	"github.com/npillmayer/refsets"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of command lines.
const (
	tokWord int = iota + 1
	tokNumber
	tokString
)

// token is a lexeme of a command line.
type token struct {
	typ    int
	lexeme string
}

func (t token) String() string {
	return t.lexeme
}

var lexer *lexmachine.Lexer
var lexerErr error
var initOnce sync.Once // monitors one-time initialization

// commandLexer returns the lexer for command lines, compiling it on first use.
func commandLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`#[^\n]*\n?`), skip) // skip comments
		lexer.Add([]byte(`\"[^"]*\"`), makeToken(tokString))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-|\.)*`), makeToken(tokWord))
		lexer.Add([]byte(`[\+\-]?[0-9]+(\.[0-9]+)?`), makeToken(tokNumber))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), skip)
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

// tokenize splits a command line into tokens. Quotes are stripped from strings.
// Input which cannot be tokenized results in an error of category
// refsets.InvalidArgument.
func tokenize(line string) ([]token, error) {
	lx, err := commandLexer()
	if err != nil {
		return nil, refsets.Internal("command lexer unavailable: %v", err)
	}
	scanner, err := lx.Scanner([]byte(line))
	if err != nil {
		return nil, refsets.Errorf(refsets.InvalidArgument, "cannot scan %q: %v", line, err)
	}
	var tokens []token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, refsets.Errorf(refsets.InvalidArgument,
					"unexpected input at column %d", ui.StartTC+1)
			}
			return nil, refsets.Errorf(refsets.InvalidArgument, "%v", err)
		}
		t := tok.(*lexmachine.Token)
		lexeme := string(t.Lexeme)
		if t.Type == tokString {
			lexeme = strings.Trim(lexeme, `"`)
		}
		tokens = append(tokens, token{typ: t.Type, lexeme: lexeme})
	}
	tracer().Debugf("tokens = %v", tokens)
	return tokens, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}
