//go:build !windows

package app

import "gioui.org/io/event"

func (w *Window) handlePlatformEvent(e event.Event) {}
