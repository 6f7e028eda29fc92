// Package cli implements the process-level IO contract shared by all
// assetfeed commands: input comes from an argument or piped stdin, exactly
// one JSON document goes to stdout, and diagnostics go to stderr. A caller
// parsing stdout must never see anything but valid JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ReadPayload returns the raw input payload for a command: the first
// argument when present, otherwise the contents of stdin when stdin is a
// pipe or file. The second return value is false when no input is available.
func ReadPayload(args []string) (string, bool) {
	if len(args) > 0 {
		return args[0], true
	}

	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		// Interactive terminal or unreadable stdin: nothing to consume.
		return "", false
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read stdin", "error", err)
		return "", false
	}
	return string(data), true
}

// WriteJSON marshals v and writes it to stdout followed by a newline.
// Marshal failure degrades to an empty object so stdout stays parseable.
func WriteJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal output", "error", err)
		data = []byte("{}")
	}
	fmt.Println(string(data))
}

// WriteError emits the unified error envelope to stdout.
func WriteError(format string, a ...any) {
	WriteJSON(map[string]string{"error": fmt.Sprintf(format, a...)})
}
