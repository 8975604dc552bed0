//go:build windows

package platform

// File drops arrive as WM_DROPFILES after DragAcceptFiles. The window is
// subclassed with comctl32 so no COM IDropTarget or cgo is needed.

import (
	"image"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/justyntemme/tabdeck/internal/debug"
)

const wmDropFiles = 0x0233

// dropSubclassID identifies our subclass in the window's chain
const dropSubclassID = 1

var (
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	comctl32 = windows.NewLazySystemDLL("comctl32.dll")

	procDragAcceptFiles      = shell32.NewProc("DragAcceptFiles")
	procDragQueryFileW       = shell32.NewProc("DragQueryFileW")
	procDragQueryPoint       = shell32.NewProc("DragQueryPoint")
	procDragFinish           = shell32.NewProc("DragFinish")
	procSetWindowSubclass    = comctl32.NewProc("SetWindowSubclass")
	procRemoveWindowSubclass = comctl32.NewProc("RemoveWindowSubclass")
	procDefSubclassProc      = comctl32.NewProc("DefSubclassProc")

	// Callbacks are never freed, so one is shared by every window
	subclassOnce     sync.Once
	subclassCallback uintptr
)

// dropSubclassProc is the SUBCLASSPROC for every window accepting drops
func dropSubclassProc(hwnd uintptr, msg uint32, wParam, lParam, idSubclass, refData uintptr) uintptr {
	if msg == wmDropFiles {
		paths, at := readDrop(wParam)
		deliver(hwnd, paths, at)
		return 0
	}
	ret, _, _ := procDefSubclassProc.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

// readDrop extracts the file paths and client drop point from an HDROP and
// releases it
func readDrop(hDrop uintptr) ([]string, image.Point) {
	defer procDragFinish.Call(hDrop)

	var pt struct{ X, Y int32 }
	procDragQueryPoint.Call(hDrop, uintptr(unsafe.Pointer(&pt)))

	count, _, _ := procDragQueryFileW.Call(hDrop, 0xFFFFFFFF, 0, 0)
	debug.Log(debug.APP, "[Windows DnD] WM_DROPFILES with %d files at %d,%d", count, pt.X, pt.Y)
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		size, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		if size == 0 {
			continue
		}
		buf := make([]uint16, size+1)
		procDragQueryFileW.Call(hDrop, i, uintptr(unsafe.Pointer(&buf[0])), size+1)
		paths = append(paths, windows.UTF16ToString(buf))
	}
	return paths, image.Pt(int(pt.X), int(pt.Y))
}

// SetupExternalDrop makes the window accept files dropped from Explorer
// and routes them to handler
func SetupExternalDrop(hwnd uintptr, handler DropHandler) {
	if hwnd == 0 {
		return
	}
	subclassOnce.Do(func() {
		subclassCallback = syscall.NewCallback(dropSubclassProc)
	})
	register(hwnd, handler)

	procDragAcceptFiles.Call(hwnd, 1)
	ret, _, err := procSetWindowSubclass.Call(hwnd, subclassCallback, dropSubclassID, 0)
	if ret == 0 {
		debug.Log(debug.APP, "[Windows DnD] SetWindowSubclass failed: %v", err)
		unregister(hwnd)
		return
	}
	debug.Log(debug.APP, "[Windows DnD] Accepting drops on hwnd=0x%x", hwnd)
}

// CleanupExternalDrop stops routing drops for the window
func CleanupExternalDrop(hwnd uintptr) {
	if !unregister(hwnd) {
		return
	}
	procDragAcceptFiles.Call(hwnd, 0)
	procRemoveWindowSubclass.Call(hwnd, subclassCallback, dropSubclassID)
}
