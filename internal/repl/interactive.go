// Released under an MIT license. See LICENSE.

package repl

import (
	"errors"
	"fmt"

	"github.com/peterh/liner"

	"github.com/privscope/priv/internal/history"
)

// Interact prompts for commands until EOF or exit.
func Interact(s *Session) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	// No history file yet is fine.
	_ = history.Load(cli.ReadHistory)

	defer func() {
		_ = history.Save(cli.WriteHistory)
	}()

	for {
		line, err := cli.Prompt("priv> ")

		switch err {
		case nil:
			if line != "" {
				cli.AppendHistory(line)
			}

			err = s.Eval(line)
			if errors.Is(err, ErrExit) {
				return
			}

			if err != nil {
				fmt.Fprintf(s.out, "error: %s\n", err)
			}
		case liner.ErrPromptAborted:
			continue
		default:
			return
		}
	}
}
