package smartcalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	// tokenNone is a rune that cannot start any token. The lexer returns a
	// LexError along with it.
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the line. The lexer never produces it;
	// the parser uses it as a sentinel.
	tokenEOF
	// tokenNum is a non-negative integer literal.
	tokenNum
	// tokenIdent is a variable name.
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	// tokenOpen and tokenClose are parentheses.
	tokenOpen
	tokenClose
	tokenEquals
	// tokenCommand is a whole /word line.
	tokenCommand
)

var tokenNames = [...]string{
	tokenNone:    "None",
	tokenEOF:     "EOF",
	tokenNum:     "Num",
	tokenIdent:   "Ident",
	tokenPlus:    "Plus",
	tokenMinus:   "Minus",
	tokenStar:    "Star",
	tokenSlash:   "Slash",
	tokenOpen:    "Open",
	tokenClose:   "Close",
	tokenEquals:  "Equals",
	tokenCommand: "Command",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// additive reports whether the token is + or -.
func (k tokenKind) additive() bool {
	return k == tokenPlus || k == tokenMinus
}

// multiplicative reports whether the token is * or /.
func (k tokenKind) multiplicative() bool {
	return k == tokenStar || k == tokenSlash
}

// Operators contains the runes which are single-rune tokens.
const Operators = "+-*/()="

var operkinds = [...]tokenKind{tokenPlus, tokenMinus, tokenStar, tokenSlash, tokenOpen, tokenClose, tokenEquals}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	// line is whether the lexer has not yet produced a token, so that a
	// slash starts a command.
	line bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
		line: true,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF. An invalid rune produces a tokenNone token holding the
// rune together with a *LexError; scanning may continue after it.
func (l *lexer) next() (lexToken, error) {
	defer l.buf.Reset()
	first := l.line
	l.line = false
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tok, io.EOF
			}
			return tok, err
		}
		switch {
		case isSpace(r):
			tok.pos++
			continue
		case first && r == '/':
			l.buf.WriteRune(r)
			if err := l.scanCommand(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenCommand
			return tok, nil
		case isDigit(r):
			l.unreadRune()
			if err := l.scanWhile(isDigit); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case isLetter(r):
			l.unreadRune()
			if err := l.scanWhile(isLetter); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = Operators[k : k+1]
				tok.kind = operkinds[k]
				return tok, nil
			}
			// Keep the rune so that it shows up in the error message.
			tok.text = string(r)
			l.buf.WriteRune(r)
			return tok, l.error(tok.pos)
		}
	}
}

// scanWhile writes runes to the buffer as long as ok accepts them.
func (l *lexer) scanWhile(ok func(rune) bool) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides the token kind, so we
				// have scanned at least one rune.
				return nil
			}
			return err
		}
		if !ok(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// scanCommand writes the rest of the line to the buffer, less trailing
// whitespace.
func (l *lexer) scanCommand() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		l.buf.WriteRune(r)
	}
	s := strings.TrimRightFunc(l.buf.String(), isSpace)
	l.buf.Reset()
	l.buf.WriteString(s)
	return nil
}

func (l *lexer) error(col int) error {
	return &LexError{
		Text: l.buf.String(),
		Col:  col,
	}
}

// lexAll scans all tokens of a line. Invalid runes appear as tokenNone
// tokens and the error is the first *LexError among them; any other error is
// from reading src and leaves the tokens incomplete. end is the position just
// past the last rune.
func lexAll(src io.RuneScanner) (toks []lexToken, end int, err error) {
	scan := lex(src)
	for {
		tok, e := scan.next()
		if errors.Is(e, io.EOF) {
			return toks, scan.rune, err
		}
		if e != nil {
			var le *LexError
			if !errors.As(e, &le) {
				return toks, scan.rune, e
			}
			if err == nil {
				err = e
			}
		}
		toks = append(toks, tok)
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// IsIdentifier reports whether s is a valid variable name, i.e. one or more
// Latin letters.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}
