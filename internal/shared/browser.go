package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommands maps GOOS values to the launcher used for cover art URLs.
var browserCommands = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"cmd", "/c", "start"},
}

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser hands the URL to the platform launcher without waiting for it to exit.
func OpenBrowser(url string) error {
	launcher, ok := browserCommands[getRuntime()]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", getRuntime())
	}

	args := append(launcher[1:], url)
	if err := exec.Command(launcher[0], args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
