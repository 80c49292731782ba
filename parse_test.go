package smartcalc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseExpr(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"big", "33000000000000000000", "(33000000000000000000)"},
		{"name", "x", "(x)"},
		{"spaces", "  c   ", "(c)"},
		{"neg-name", "-x", "(-[x])"},
		{"neg-num", "-5", "(-5)"},
		{"plus", "+5", "(5)"},
		{"add", "1+2", "([1] + [2])"},
		{"sub-left", "1-2-3", "([(1) - (2)] - [3])"},
		{"mul-binds", "1+2*3", "([1] + [(2) * (3)])"},
		{"div-binds", "6/2-1", "([(6) / (2)] - [1])"},
		{"parens", "(1+2)*3", "([(1) + (2)] * [3])"},
		{"neg-factor", "2 * -3", "([2] * [-3])"},
		{"collapse", "5 --- 2", "([5] - [2])"},
		{"neg-parens", "-(a+b)", "(-[(a) + (b)])"},
		{"nested", "((x))", "(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := ParseLine(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if l.Kind != LineExpr {
				t.Fatalf("%q parsed as kind %d, not an expression", c.src, l.Kind)
			}
			if got := l.Expr.String(); got != c.want {
				t.Errorf("wrong parse: want %s, got %s", c.want, got)
			}
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want InputError
	}{
		{"unclosed", "8 * (2 + 3", &BracketError{Col: 5, Left: "("}},
		{"unopened", "4 + 5)", &BracketError{Col: 6, Right: ")"}},
		{"reversed", ")1(", &BracketError{Col: 1, Right: ")"}},
		{"stars", "2 ************ 2", &OperatorError{Col: 4, Operator: "************", Repeated: true}},
		{"slashes", "2 // 2", &OperatorError{Col: 4, Operator: "//", Repeated: true}},
		{"empty-parens", "()", &EmptyExpressionError{Col: 2, End: ")"}},
		{"trailing-op", "1 +", &EmptyExpressionError{Col: 4}},
		{"juxtaposed", "2 3", &TokenError{Col: 3, Text: "3"}},
		{"call", "(1)(2)", &TokenError{Col: 4, Text: "("}},
		{"leading-star", "* 2", &OperatorError{Col: 1, Operator: "*"}},
		{"sub-star", "2 - * 3", &OperatorError{Col: 5, Operator: "*"}},
		{"lex", "1 $ 2", &LexError{Col: 3, Text: "$"}},
		{"decimal", "1.5", &LexError{Col: 2, Text: "."}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := ParseLine(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %s, expected error", c.src, l.Expr)
			}
			var ee *ExpressionError
			if !errors.As(err, &ee) {
				t.Fatalf("wrong error type: want *ExpressionError, got %T", err)
			}
			if !reflect.DeepEqual(ee.Err, c.want) {
				t.Errorf("wrong cause: want %#v, got %#v", c.want, ee.Err)
			}
			var ie InputError
			if !errors.As(err, &ie) || ie.Pos() != c.want.Pos() {
				t.Errorf("wrong position: want %d, got %v", c.want.Pos(), ie)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"n = 32", "n = 32"},
		{"c = n", "c = n"},
		{" a= 7 ", "a = 7"},
		{"a = -5", "a = -5"},
		{"a = --5", "a = 5"},
		{"a = +5", "a = 5"},
		{"Big = 2000000000000000000000", "Big = 2000000000000000000000"},
	}
	for _, c := range cases {
		l, err := ParseLine(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if l.Kind != LineAssign {
			t.Errorf("%q parsed as kind %d, not an assignment", c.src, l.Kind)
			continue
		}
		if got := l.Assign.String(); got != c.want {
			t.Errorf("wrong parse of %q: want %s, got %s", c.src, c.want, got)
		}
	}
}

func TestParseAssignmentErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		ident bool
		want  error
	}{
		{"digit-name", "var1 = 1", true, &IdentifierError{Name: "var1", Err: &TokenError{Col: 4, Text: "1"}}},
		{"number-name", "1 = 2", true, &IdentifierError{Name: "1", Err: &TokenError{Col: 1, Text: "1"}}},
		{"no-name", "= 2", true, &IdentifierError{Name: "", Err: &EmptyExpressionError{Col: 1, End: "="}}},
		{"bad-name", "$ = 2", true, &IdentifierError{Name: "$", Err: &LexError{Col: 1, Text: "$"}}},
		{"two-names", "a b = 2", true, &IdentifierError{Name: "ab", Err: &TokenError{Col: 3, Text: "b"}}},
		{"bad-value", "var = 2a", false, &AssignmentError{Err: &TokenError{Col: 8, Text: "a"}}},
		{"two-equals", "c = 7 - 1 = 5", false, &AssignmentError{Err: &OperatorError{Col: 11, Operator: "="}}},
		{"double-equals", "a == 1", false, &AssignmentError{Err: &OperatorError{Col: 4, Operator: "="}}},
		{"no-value", "a = ", false, &AssignmentError{Err: &EmptyExpressionError{Col: 5}}},
		{"expression", "a = 1 + 2", false, &AssignmentError{Err: &TokenError{Col: 7, Text: "+"}}},
		{"lex", "a = b $", false, &AssignmentError{Err: &LexError{Col: 7, Text: "$"}}},
		{"repeated", "a = 2 ** 3", false, &AssignmentError{Err: &OperatorError{Col: 8, Operator: "**", Repeated: true}}},
		{"parens", "a = (1)", false, &AssignmentError{Err: &TokenError{Col: 5, Text: "("}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLine(c.src)
			if err == nil {
				t.Fatalf("%q parsed, expected error", c.src)
			}
			var ie *IdentifierError
			if got := errors.As(err, &ie); got != c.ident {
				t.Errorf("wrong error category for %v", err)
			}
			if !reflect.DeepEqual(err, c.want) {
				t.Errorf("wrong error: want %#v, got %#v", c.want, err)
			}
		})
	}
}

func TestParseLineKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind LineKind
		cmd  string
	}{
		{"", LineBlank, ""},
		{" \t \n", LineBlank, ""},
		{"/exit", LineCommand, "/exit"},
		{"  /help  \n", LineCommand, "/help"},
		{"/start", LineCommand, "/start"},
		{"a = 1", LineAssign, ""},
		{"a", LineExpr, ""},
		{"1 + 1", LineExpr, ""},
	}
	for _, c := range cases {
		l, err := ParseLine(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if l.Kind != c.kind {
			t.Errorf("%q: want kind %d, got %d", c.src, c.kind, l.Kind)
		}
		if l.Command != c.cmd {
			t.Errorf("%q: want command %q, got %q", c.src, c.cmd, l.Command)
		}
	}
}

func TestParseReader(t *testing.T) {
	a, err := Parse(strings.NewReader("a + b * a + C"))
	if err != nil {
		t.Fatal(err)
	}
	if v := a.Vars(); !reflect.DeepEqual(v, []string{"C", "a", "b"}) {
		t.Errorf("wrong vars: want [C a b], got %v", v)
	}
	_, err = Parse(strings.NewReader("x = 1"))
	var ee *ExpressionError
	if !errors.As(err, &ee) {
		t.Errorf("assignment through Parse should be an expression error, got %v", err)
	}
	_, err = Parse(strings.NewReader(""))
	var empty *EmptyExpressionError
	if !errors.As(err, &empty) {
		t.Errorf("empty input should be an empty expression error, got %v", err)
	}
}
