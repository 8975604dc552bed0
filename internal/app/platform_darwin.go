//go:build darwin

package app

import "os/exec"

// platformOpen opens a tab's path using the macOS 'open' command.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}
