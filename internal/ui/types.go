package ui

import (
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

type UIAction int

const (
	ActionNone UIAction = iota
	// Tab actions
	ActionNewTab
	ActionCloseTab // Uses ID
	ActionSwitchTab
	ActionOpenTab // Open the tab's path externally (uses ID)
	ActionNextTab
	ActionPrevTab
	ActionToggleGroup // Collapse or expand a group (uses ID)
	// Drag actions
	ActionDropped       // A drag was committed (uses Outcome, Err)
	ActionDragCancelled // Escape or pointer cancel ended a drag
	// Keyboard reordering
	ActionMoveTab   // Move the active element by Step
	ActionPinTab    // Toggle pinning of the active element
	ActionDetachTab // Move the active element to a new window
	ActionGroupTab  // Put the active tab in a new group
	// Settings
	ActionToggleTheme
	ActionToggleReduceMotion
	ActionExternalDrop // Files dropped from the OS were opened (uses Outcome, Err)
)

// UIEvent is what the renderer reports to the orchestrator after a frame
type UIEvent struct {
	Action  UIAction
	ID      string
	Step    int
	Outcome tabstrip.Outcome
	Err     error
}
