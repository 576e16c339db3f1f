// Package clip writes text to the system clipboard, falling back
// from the native clipboard to the OSC52 terminal escape when the
// host is headless or sandboxed. There is no silent fallback to
// disk: if no clipboard backend works the caller gets an error and
// decides what to tell the user.
package clip

import (
	"errors"
	"fmt"
	"os"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Method identifies which backend accepted the write.
type Method string

const (
	MethodNative Method = "native" // OS clipboard via github.com/atotto/clipboard
	MethodOSC52  Method = "osc52"  // terminal clipboard via OSC52 escape sequence
)

// These vars exist for testability.
var (
	nativeWriteAll = func(text string) error { return atotto.WriteAll(text) }
	osc52WriteAll  = writeAllOSC52
)

// Conservative default; terminals can have strict OSC52 limits.
const osc52LimitBytes = 100_000

// Write copies text to the clipboard, trying the native backend
// first and OSC52 second. The returned error joins both causes when
// everything fails.
func Write(text string) (Method, error) {
	nativeErr := nativeWriteAll(text)
	if nativeErr == nil {
		return MethodNative, nil
	}

	osc52Err := osc52WriteAll(text)
	if osc52Err == nil {
		return MethodOSC52, nil
	}

	return "", errors.Join(
		fmt.Errorf("native clipboard: %w", nativeErr),
		fmt.Errorf("osc52: %w", osc52Err),
	)
}

func writeAllOSC52(text string) error {
	if text == "" {
		return errors.New("empty clipboard text")
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("stderr is not a terminal")
	}
	// Avoid sending huge OSC52 payloads that terminals may drop or block.
	if len(text) > osc52LimitBytes {
		return fmt.Errorf("text too large for OSC52 (%d bytes > %d)", len(text), osc52LimitBytes)
	}

	seq := osc52.New(text).Limit(osc52LimitBytes)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}

	// Use stderr so stdout output of the host stays clean.
	_, err := seq.WriteTo(os.Stderr)
	return err
}
