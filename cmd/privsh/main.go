// Released under an MIT license. See LICENSE.

// Privsh is an interactive explorer for priv scopes.
package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/privscope/priv"
	"github.com/privscope/priv/internal/options"
	"github.com/privscope/priv/internal/repl"
)

const version = "privsh 0.2.0"

func main() {
	options.Parse(version)

	logger := zap.NewNop()
	if options.Debug() {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		logger = l
	}

	reg := priv.NewRegistry(priv.WithLogger(logger))
	session := repl.New(os.Stdout, reg)

	switch {
	case options.Command() != "":
		commands := strings.ReplaceAll(options.Command(), ";", "\n")

		err := session.Run(strings.NewReader(commands))
		exit(err)
	case options.Script() != "":
		f, err := os.Open(options.Script())
		if err != nil {
			exit(err)
		}

		err = session.Run(f)

		f.Close()
		exit(err)
	case options.Interactive():
		repl.Interact(session)
	default:
		exit(session.Run(os.Stdin))
	}
}

func exit(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	os.Exit(0)
}
