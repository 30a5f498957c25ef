package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

type keyAction int

const (
	keyNone keyAction = iota
	keyToggle
	keyStop
	keyQuit
)

const ctrlC = 3

func actionFor(b byte) keyAction {
	switch b {
	case 'p', 'P', ' ':
		return keyToggle
	case 's', 'S':
		return keyStop
	case 'q', 'Q', ctrlC:
		return keyQuit
	default:
		return keyNone
	}
}

// watchKeys applies every recognised key read from in until the reader
// fails or ctx is done. A quit key ends the loop.
func watchKeys(ctx context.Context, in io.Reader, apply func(keyAction)) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil || ctx.Err() != nil {
			return
		}
		if n == 0 {
			continue
		}
		a := actionFor(buf[0])
		if a == keyNone {
			continue
		}
		apply(a)
		if a == keyQuit {
			return
		}
	}
}

// rawTerminal switches f to raw mode when it is a terminal.
// The restore function is never nil.
func rawTerminal(f *os.File) (restore func(), ok bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, false
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, false
	}
	return func() { _ = term.Restore(fd, state) }, true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of w, or fallback.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		return cols
	}
	return fallback
}

// crlfWriter turns "\n" into "\r\n"; a terminal in raw mode does not.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
