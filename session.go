package smartcalc

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/fatih/color"
)

// Messages printed for each kind of error.
const (
	MsgUnknownCommand    = "Unknown command"
	MsgUnknownVariable   = "Unknown variable"
	MsgInvalidExpression = "Invalid expression"
	MsgInvalidAssignment = "Invalid assignment"
	MsgInvalidIdentifier = "Invalid identifier"
)

// Session is one calculator session. It reads lines, updates its variables,
// and writes results and error messages. A session ends when it executes
// /exit. It is not safe to use a Session concurrently.
type Session struct {
	vars    *Store
	out     io.Writer
	help    string
	verbose bool
	errc    *color.Color
	done    bool
}

// SessionOption is an option used when creating a session.
type SessionOption func(*Session)

// Verbose makes error lines include the reason and position of the error.
func Verbose(v bool) SessionOption {
	return func(s *Session) {
		s.verbose = v
	}
}

// Color sets whether error lines are written in color.
func Color(on bool) SessionOption {
	return func(s *Session) {
		if on {
			s.errc.EnableColor()
		} else {
			s.errc.DisableColor()
		}
	}
}

// Help replaces the text written for /help.
func Help(text string) SessionOption {
	return func(s *Session) {
		s.help = text
	}
}

// NewSession creates a session writing to w with an empty store. Without
// options, errors are not colored and not verbose.
func NewSession(w io.Writer, opts ...SessionOption) *Session {
	s := Session{
		vars: NewStore(),
		out:  w,
		help: HelpText,
		errc: color.New(color.FgRed),
	}
	s.errc.DisableColor()
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// Store returns the session's variables.
func (s *Session) Store() *Store {
	return s.vars
}

// Terminated returns whether the session has executed /exit.
func (s *Session) Terminated() bool {
	return s.done
}

// Exec executes one line. Invalid input results in an error message written
// to the output, not an error. The result is ErrTerminated for /exit and for
// any line after it, or the error from writing output.
func (s *Session) Exec(line string) error {
	if s.done {
		return ErrTerminated
	}
	l, err := ParseLine(line)
	if err != nil {
		return s.fail(err)
	}
	switch l.Kind {
	case LineBlank:
		return nil
	case LineCommand:
		return s.command(l.Command)
	case LineAssign:
		v, err := l.Assign.Eval(s.vars)
		if err != nil {
			return s.fail(err)
		}
		s.vars.Set(l.Assign.Name, v)
		return nil
	case LineExpr:
		v, err := l.Expr.Eval(s.vars)
		if err != nil {
			return s.fail(err)
		}
		return s.println(v.String())
	default:
		panic("smartcalc: invalid line kind " + strconv.Itoa(int(l.Kind)))
	}
}

// Run executes lines from r until /exit or the end of the input. The result
// is nil in either case, unless reading or writing fails.
func (s *Session) Run(r io.Reader) error {
	if s.done {
		return ErrTerminated
	}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if err := s.Exec(line); err != nil {
				if errors.Is(err, ErrTerminated) {
					return nil
				}
				return err
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Session) println(text string) error {
	_, err := io.WriteString(s.out, text+"\n")
	return err
}

// fail writes the message for an error.
func (s *Session) fail(err error) error {
	msg := Message(err)
	var ce *CommandError
	if errors.As(err, &ce) && ce.Suggest != "" {
		msg += " (did you mean " + ce.Suggest + "?)"
	}
	if s.verbose {
		msg += ": " + detail(err)
	}
	_, werr := s.errc.Fprintln(s.out, msg)
	return werr
}

// Message returns the message a session prints for an error.
func Message(err error) string {
	var (
		ce *CommandError
		ne *NameError
		ie *IdentifierError
		ae *AssignmentError
		ee *ExpressionError
		de *DomainError
	)
	switch {
	case errors.As(err, &ce):
		return MsgUnknownCommand
	case errors.As(err, &ne):
		return MsgUnknownVariable
	case errors.As(err, &ie):
		return MsgInvalidIdentifier
	case errors.As(err, &ae):
		return MsgInvalidAssignment
	case errors.As(err, &ee), errors.As(err, &de):
		return MsgInvalidExpression
	default:
		return err.Error()
	}
}

// detail describes an error without repeating its category.
func detail(err error) string {
	switch err := err.(type) {
	case *NameError:
		return strconv.Quote(err.Name)
	case *CommandError:
		return strconv.Quote(err.Word)
	case *IdentifierError:
		if err.Err == nil {
			return strconv.Quote(err.Name)
		}
		return strconv.Quote(err.Name) + ": " + err.Err.Error()
	case *DomainError:
		return err.Error()
	}
	if u := errors.Unwrap(err); u != nil {
		return u.Error()
	}
	return err.Error()
}
