// Released under an MIT license. See LICENSE.

// Package options parses privsh's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	command     string
	debug       bool
	interactive bool
	script      string
	usage       = `privsh - explore priv scopes interactively

Usage:
  privsh [-d] [SCRIPT]
  privsh [-d] -c COMMAND
  privsh -h
  privsh -v

Arguments:
  SCRIPT  Path to a privsh script. Evaluated line by line.

Options:
  -c, --command=COMMAND  Evaluate the specified command and exit.
  -d, --debug            Log engine events to stderr.
  -h, --help             Display this help.
  -v, --version          Print privsh version.

If privsh's stdin is a TTY and no script or command was given, privsh reads
commands interactively. Otherwise commands are read from stdin.
`
)

func Command() string {
	return command
}

func Debug() bool {
	return debug
}

func Interactive() bool {
	return interactive
}

func Parse(version string) {
	opts, err := docopt.ParseArgs(usage, nil, version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")
	debug, _ = opts.Bool("--debug")
	script, _ = opts.String("SCRIPT")

	if command == "" && script == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
	}
}

func Script() string {
	return script
}
