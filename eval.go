package smartcalc

import (
	"io"
	"math/big"
	"strings"
)

// Eval evaluates the expression using variable values from vars, which it
// does not modify. A variable missing from vars gives a *NameError, and
// division by zero gives a *DomainError. Division truncates toward zero.
func (e *Expr) Eval(vars *Store) (*big.Int, error) {
	return e.n.eval(vars)
}

// Eval resolves the source of the assignment using vars. The result is the
// value to store; the caller decides whether to store it.
func (a *Assignment) Eval(vars *Store) (*big.Int, error) {
	return a.src.eval(vars)
}

// eval computes the node's value. The result is always a new value.
func (n *node) eval(vars *Store) (*big.Int, error) {
	switch n.kind {
	case nodeNum:
		return new(big.Int).Set(n.val), nil
	case nodeName:
		v := vars.Lookup(n.name)
		if v == nil {
			return nil, &NameError{Name: n.name}
		}
		return v, nil
	case nodeNeg:
		l, err := n.left.eval(vars)
		if err != nil {
			return nil, err
		}
		return l.Neg(l), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		l, err := n.left.eval(vars)
		if err != nil {
			return nil, err
		}
		r, err := n.right.eval(vars)
		if err != nil {
			return nil, err
		}
		switch n.kind {
		case nodeAdd:
			l.Add(l, r)
		case nodeSub:
			l.Sub(l, r)
		case nodeMul:
			l.Mul(l, r)
		case nodeDiv:
			if r.Sign() == 0 {
				return nil, &DomainError{X: r, Func: "/"}
			}
			l.Quo(l, r)
		}
		return l, nil
	default:
		panic("smartcalc: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, vars *Store) (*big.Int, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return a.Eval(vars)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, vars *Store) (*big.Int, error) {
	return Eval(strings.NewReader(src), vars)
}
