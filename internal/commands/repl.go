package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-assistant/internal/config"
)

// Run drives the interactive loop: read one line, dispatch, print, repeat.
// All commands run to completion before the next line is read. The loop ends
// on exit/close, on EOF, or when ctx is cancelled.
func (h *Handler) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, h.Loc.Msg(config.TKeyWelcome))

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompCommands)
			return nil
		}

		fmt.Fprint(out, config.Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			// EOF: finish the prompt line, then leave politely.
			fmt.Fprintln(out)
			fmt.Fprintln(out, h.Loc.Msg(config.TKeyGoodbye))
			return nil
		}

		command, args := Parse(scanner.Text())
		if command == "" {
			continue
		}

		slog.Debug(config.MsgCmdDispatch,
			config.LogKeyComponent, config.CompCommands,
			config.LogKeyCommand, command,
		)

		reply, quit := h.Execute(ctx, command, args)
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
		if quit {
			return nil
		}
	}
}
