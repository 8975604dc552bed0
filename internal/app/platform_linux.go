//go:build linux

package app

import "os/exec"

// platformOpen opens a tab's path with the desktop's default application
func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}
