package smartcalc

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// HelpText is the default response to /help.
const HelpText = `This calculator evaluates expressions on integers of any size.
It supports addition (+), subtraction (-), multiplication (*), integer
division (/) and parentheses. Unary minus is allowed, and a sequence of
+ and - acts as a single operator:
  1 + 1 results in 2
  2 - 3 - 4 results in -5
  9 +++ 10 -- 8 results in 27
  3 --- 5 results in -2
  7 + 3 * ((4 + 3) * 7 + 1) - 6 / (2 + 1) results in 155
A sequence of * or / like 2 ** 2 is invalid. Division rounds toward zero.
Variables are named with Latin letters only, and case matters:
  n = 32
  c = n
  c * 2 results in 64
Enter a variable name alone to print its value.
Enter /exit to quit.`

// Farewell is printed on /exit.
const Farewell = "Bye!"

type command int8

const (
	cmdNone command = iota
	cmdExit
	cmdHelp
)

var commands = map[string]command{
	"/exit": cmdExit,
	"/help": cmdHelp,
}

// commandNames is the command table's keys in the order suggestions prefer.
var commandNames = []string{"/exit", "/help"}

// suggest finds the known command closest to word, or the empty string if
// none is close.
func suggest(word string) string {
	ranks := fuzzy.RankFindFold(word, commandNames)
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}

// command runs a command line.
func (s *Session) command(word string) error {
	switch commands[word] {
	case cmdExit:
		s.done = true
		if err := s.println(Farewell); err != nil {
			return err
		}
		return ErrTerminated
	case cmdHelp:
		return s.println(s.help)
	default:
		return s.fail(&CommandError{Word: word, Suggest: suggest(word)})
	}
}
