package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/smartcalc"
)

const usage = `usage: smartcalc [-hvC] [-g name=value]... [-i file] [line...]
  -g name=value  assign a variable before reading input (any number of times)
  -i file        input file (default stdin if no lines given; - for stdin)
  -v             explain errors
  -C             never color errors
  -h             show this help`

func main() {
	log.SetFlags(0)
	var (
		inname           string
		given            []string
		verbose, nocolor bool
	)
	opts, optind, err := getopt.Getopts(os.Args, "hvCg:i:")
	if err != nil {
		log.Fatalln(err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			fmt.Println(usage)
			return
		case 'v':
			verbose = true
		case 'C':
			nocolor = true
		case 'g':
			given = append(given, opt.Value)
		case 'i':
			inname = opt.Value
		}
	}
	args := os.Args[optind:]

	fd := os.Stdout.Fd()
	colored := !nocolor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	s := smartcalc.NewSession(os.Stdout, smartcalc.Verbose(verbose), smartcalc.Color(colored))
	for _, g := range given {
		if err := define(s.Store(), g); err != nil {
			log.Fatalf("setting %s: %v", g, err)
		}
	}

	for _, arg := range args {
		if err := s.Exec(arg); err != nil {
			if errors.Is(err, smartcalc.ErrTerminated) {
				return
			}
			log.Fatal(err)
		}
	}

	f, err := infile(inname, len(args) == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f == nil {
		return
	}
	defer f.Close()
	if err := s.Run(f); err != nil {
		log.Fatal(err)
	}
}

// define applies a name=value option to the store.
func define(vars *smartcalc.Store, def string) error {
	l, err := smartcalc.ParseLine(def)
	if err != nil {
		return err
	}
	if l.Kind != smartcalc.LineAssign {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, def)
	}
	v, err := l.Assign.Eval(vars)
	if err != nil {
		return err
	}
	vars.Set(l.Assign.Name, v)
	return nil
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
