// Package smartcalc implements an arbitrary-precision integer calculator
// session.
//
// Each input line is a blank line, a command like /help or /exit, an
// assignment like "n = 32" or "c = n", or an expression using + - * / and
// parentheses. Runs of additive operators collapse by sign, so "5 --- 2"
// is "5 - 2", while runs of multiplicative operators like "2 ** 2" are
// invalid. Variables hold integers of any size and names are
// case-sensitive Latin letters.
//
package smartcalc
