package smartcalc

import (
	"errors"
	"io"
	"math/big"
	"strings"
)

// Line = Assignment | Expr
// Assignment = name '=' [ '+' | '-' ] num | name '=' name
// Expr = Term { ( '+' | '-' ) Term }
// Term = Signed { ( '*' | '/' ) Signed }
// Signed = [ '+' | '-' ] Factor
// Factor = num | name | '(' Expr ')'
//
// Runs of + and - are normalized before parsing, so Signed never sees more
// than one sign.

// Expr is a parsed expression that can be evaluated with a store.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

func newExpr(n *node) *Expr {
	m := make(map[string]bool)
	n.names(m)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(m)),
	}
	for k := range m {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex
}

// Assignment is a parsed assignment. Its source is a single integer literal
// or a single variable name, never a full expression.
type Assignment struct {
	// Name is the variable to assign.
	Name string
	// src is a nodeNum or nodeName.
	src *node
}

// String formats the assignment as name = source.
func (a *Assignment) String() string {
	if a.src.kind == nodeName {
		return a.Name + " = " + a.src.name
	}
	return a.Name + " = " + a.src.val.String()
}

// LineKind classifies an input line.
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota
	// LineCommand is a line starting with a slash.
	LineCommand
	// LineAssign is an assignment.
	LineAssign
	// LineExpr is an expression.
	LineExpr
)

// Line is one parsed input line.
type Line struct {
	Kind LineKind
	// Command is the command word including its slash, for LineCommand.
	Command string
	// Assign is the assignment, for LineAssign.
	Assign *Assignment
	// Expr is the expression, for LineExpr.
	Expr *Expr
}

// ParseLine classifies and parses one line of input. The line should not
// contain a newline except possibly at its end. Errors are of type
// *ExpressionError, *AssignmentError, or *IdentifierError.
func ParseLine(src string) (*Line, error) {
	toks, end, err := lexAll(strings.NewReader(src))
	if len(toks) == 0 {
		return &Line{Kind: LineBlank}, nil
	}
	if toks[0].kind == tokenCommand {
		return &Line{Kind: LineCommand, Command: toks[0].text}, nil
	}
	eq, eqs := -1, 0
	for i, tok := range toks {
		if tok.kind == tokenEquals {
			if eq < 0 {
				eq = i
			}
			eqs++
		}
	}
	if eqs > 0 {
		a, err := parseAssignment(toks, eq, end)
		if err != nil {
			return nil, err
		}
		return &Line{Kind: LineAssign, Assign: a}, nil
	}
	if err != nil {
		return nil, &ExpressionError{Err: err}
	}
	n, err := parseExpr(toks, end)
	if err != nil {
		return nil, &ExpressionError{Err: err}
	}
	return &Line{Kind: LineExpr, Expr: newExpr(n)}, nil
}

// Parse parses an expression so it can be evaluated with a store. The entire
// input is one expression. Errors other than those from reading src are of
// type *ExpressionError.
func Parse(src io.RuneScanner) (*Expr, error) {
	toks, end, err := lexAll(src)
	if err != nil {
		var le *LexError
		if !errors.As(err, &le) {
			return nil, err
		}
		return nil, &ExpressionError{Err: err}
	}
	n, err := parseExpr(toks, end)
	if err != nil {
		return nil, &ExpressionError{Err: err}
	}
	return newExpr(n), nil
}

// parseAssignment parses a line with an = at index eq.
func parseAssignment(toks []lexToken, eq, end int) (*Assignment, error) {
	for _, tok := range toks[eq+1:] {
		if tok.kind == tokenEquals {
			return nil, &AssignmentError{Err: &OperatorError{Col: tok.pos, Operator: tok.text}}
		}
	}
	lhs := toks[:eq]
	if len(lhs) != 1 || lhs[0].kind != tokenIdent {
		return nil, &IdentifierError{Name: joinText(lhs), Err: targetCause(lhs, toks[eq])}
	}
	rhs := toks[eq+1:]
	for _, tok := range rhs {
		if tok.kind == tokenNone {
			return nil, &AssignmentError{Err: &LexError{Text: tok.text, Col: tok.pos}}
		}
	}
	rhs, err := normalize(rhs)
	if err != nil {
		return nil, &AssignmentError{Err: err}
	}
	a := Assignment{Name: lhs[0].text}
	switch {
	case len(rhs) == 0:
		return nil, &AssignmentError{Err: &EmptyExpressionError{Col: end}}
	case len(rhs) == 1 && rhs[0].kind == tokenIdent:
		a.src = &node{kind: nodeName, name: rhs[0].text}
	case len(rhs) == 1 && rhs[0].kind == tokenNum:
		a.src = numnode(rhs[0])
	case len(rhs) == 2 && rhs[0].kind.additive() && rhs[1].kind == tokenNum:
		a.src = numnode(rhs[1])
		if rhs[0].kind == tokenMinus {
			a.src.val.Neg(a.src.val)
		}
	default:
		// Report the first token that makes the source more than one operand.
		bad := rhs[0]
		if len(rhs) > 1 && (bad.kind == tokenNum || bad.kind == tokenIdent || bad.kind.additive()) {
			bad = rhs[1]
		}
		return nil, &AssignmentError{Err: &TokenError{Col: bad.pos, Text: bad.text}}
	}
	return &a, nil
}

// targetCause describes why the tokens before an = are not a name.
func targetCause(lhs []lexToken, eq lexToken) error {
	if len(lhs) == 0 {
		return &EmptyExpressionError{Col: eq.pos, End: eq.text}
	}
	for _, tok := range lhs {
		if tok.kind == tokenNone {
			return &LexError{Text: tok.text, Col: tok.pos}
		}
	}
	if lhs[0].kind != tokenIdent {
		return &TokenError{Col: lhs[0].pos, Text: lhs[0].text}
	}
	return &TokenError{Col: lhs[1].pos, Text: lhs[1].text}
}

func joinText(toks []lexToken) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.text)
	}
	return b.String()
}

// numnode creates a literal node from a number token.
func numnode(tok lexToken) *node {
	v, ok := new(big.Int).SetString(tok.text, 10)
	if !ok {
		panic("smartcalc: invalid number token " + tok.String())
	}
	return &node{kind: nodeNum, val: v}
}

// parseExpr parses a complete expression from tokens that contain no
// invalid runes. end is the position just past the last rune of the line.
func parseExpr(toks []lexToken, end int) (*node, error) {
	if err := balance(toks, end); err != nil {
		return nil, err
	}
	toks, err := normalize(toks)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks, end: end}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &TokenError{Col: tok.pos, Text: tok.text}
	}
	return n, nil
}

// balance checks that parentheses match by counting depth.
func balance(toks []lexToken, end int) error {
	var open []int
	for _, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			open = append(open, tok.pos)
		case tokenClose:
			if len(open) == 0 {
				return &BracketError{Col: tok.pos, Right: tok.text}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return &BracketError{Col: open[len(open)-1], Left: "("}
	}
	return nil
}

type parser struct {
	toks []lexToken
	i    int
	end  int
}

// peek returns the next token without consuming it. Past the last token,
// the result is an EOF token.
func (p *parser) peek() lexToken {
	if p.i >= len(p.toks) {
		return lexToken{kind: tokenEOF, pos: p.end}
	}
	return p.toks[p.i]
}

func (p *parser) advance() lexToken {
	tok := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return tok
}

func (p *parser) expr() (*node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var k nodeKind
		switch p.peek().kind {
		case tokenPlus:
			k = nodeAdd
		case tokenMinus:
			k = nodeSub
		default:
			return n, nil
		}
		p.advance()
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		n = &node{kind: k, left: n, right: rhs}
	}
}

func (p *parser) term() (*node, error) {
	n, err := p.signed()
	if err != nil {
		return nil, err
	}
	for {
		var k nodeKind
		switch p.peek().kind {
		case tokenStar:
			k = nodeMul
		case tokenSlash:
			k = nodeDiv
		default:
			return n, nil
		}
		p.advance()
		rhs, err := p.signed()
		if err != nil {
			return nil, err
		}
		n = &node{kind: k, left: n, right: rhs}
	}
}

func (p *parser) signed() (*node, error) {
	sign := p.peek()
	if !sign.kind.additive() {
		return p.factor()
	}
	p.advance()
	n, err := p.factor()
	if err != nil {
		return nil, err
	}
	if sign.kind == tokenPlus {
		return n, nil
	}
	if n.kind == nodeNum {
		// Fold the sign into the literal.
		n.val.Neg(n.val)
		return n, nil
	}
	return &node{kind: nodeNeg, left: n}, nil
}

func (p *parser) factor() (*node, error) {
	tok := p.advance()
	switch tok.kind {
	case tokenNum:
		return numnode(tok), nil
	case tokenIdent:
		return &node{kind: nodeName, name: tok.text}, nil
	case tokenOpen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		end := p.advance()
		switch end.kind {
		case tokenClose:
			return n, nil
		case tokenEOF:
			return nil, &BracketError{Col: tok.pos, Left: tok.text}
		default:
			return nil, &TokenError{Col: end.pos, Text: end.text}
		}
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	case tokenPlus, tokenMinus, tokenStar, tokenSlash:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	default:
		return nil, &TokenError{Col: tok.pos, Text: tok.text}
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}
