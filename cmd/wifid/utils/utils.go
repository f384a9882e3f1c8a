package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// systemd sets INVOCATION_ID for every unit it starts.
func UnderSystemd() bool {
	return os.Getenv("INVOCATION_ID") != ""
}

// ExitBad exits 255 under systemd so RestartPreventExitStatus= can
// tell a config error apart from a crash.
func ExitBad(isSystemd bool) {
	if isSystemd {
		os.Exit(255)
		return
	}

	os.Exit(1)
}

func PrintJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
