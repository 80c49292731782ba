package smartcalc

import (
	"errors"
	"math/big"
	"strconv"
)

// LexError indicates a rune that cannot appear in any token. It implements
// InputError.
type LexError struct {
	// Text is the invalid rune.
	Text string
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator where the parser cannot
// accept it. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator text. For a repeated multiplicative operator,
	// it is the entire run, e.g. "**".
	Operator string
	// Repeated is whether the operator is a run of multiplicative operators.
	Repeated bool
}

func (err *OperatorError) Error() string {
	if err.Repeated {
		return errpos(err.Col, "repeated operator "+strconv.Quote(err.Operator))
	}
	return errpos(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, or empty if a close has no open.
	Left string
	// Right is the closing parenthesis, or empty if an open is never closed.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token following a complete
// expression, e.g. the second operand in "2 3".
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error describing
// where a line is malformed implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
)

// ExpressionError is a malformed expression line.
type ExpressionError struct {
	Err error
}

func (err *ExpressionError) Error() string {
	return "invalid expression: " + err.Err.Error()
}

func (err *ExpressionError) Unwrap() error {
	return err.Err
}

// AssignmentError is an assignment line with more than one = or with a
// right-hand side that is not a single integer or variable name.
type AssignmentError struct {
	Err error
}

func (err *AssignmentError) Error() string {
	return "invalid assignment: " + err.Err.Error()
}

func (err *AssignmentError) Unwrap() error {
	return err.Err
}

// IdentifierError is an assignment to something other than a name made of
// Latin letters.
type IdentifierError struct {
	// Name is the text of the assignment target.
	Name string
	// Err is the positional cause, if any.
	Err error
}

func (err *IdentifierError) Error() string {
	if err.Err != nil {
		return "invalid identifier " + strconv.Quote(err.Name) + ": " + err.Err.Error()
	}
	return "invalid identifier " + strconv.Quote(err.Name)
}

func (err *IdentifierError) Unwrap() error {
	return err.Err
}

// NameError is an error from a lookup for a variable that is missing from the
// store.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "unknown variable: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain, i.e. division by zero.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Int
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// CommandError is a /word that is not a known command.
type CommandError struct {
	// Word is the command as typed, including the slash.
	Word string
	// Suggest is the closest known command, or empty if none is close.
	Suggest string
}

func (err *CommandError) Error() string {
	return "unknown command " + strconv.Quote(err.Word)
}

// ErrTerminated is returned by a Session that has processed /exit.
var ErrTerminated = errors.New("smartcalc: session terminated")
