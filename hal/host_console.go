//go:build !tinygo

package hal

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// parseConsoleLine maps a console command to the buttons it presses.
func parseConsoleLine(line string) ([]string, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "state":
		return []string{PinStateButton}, true
	case "x", "send":
		return []string{PinSendButton}, true
	case "b", "both":
		return []string{PinStateButton, PinSendButton}, true
	default:
		return nil, false
	}
}

func readConsole(ctx context.Context, r io.Reader, logger Logger) <-chan []string {
	ch := make(chan []string, 8)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			names, ok := parseConsoleLine(line)
			if !ok {
				logger.WriteLineString("console: unknown command " + `"` + line + `"` + " (use s|x|b)")
				continue
			}
			select {
			case ch <- names:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
