//go:build !linux && !darwin && !windows

package app

import "errors"

func platformOpen(path string) error {
	return errors.New("opening files is not supported on this platform")
}
