//go:build !windows

package platform

// SetupExternalDrop is a no-op: other platforms do not report file drops
// to the application yet.
func SetupExternalDrop(view uintptr, handler DropHandler) {}

// CleanupExternalDrop is a no-op on this platform
func CleanupExternalDrop(view uintptr) {}
