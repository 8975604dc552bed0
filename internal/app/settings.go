package app

import (
	"log"

	"github.com/justyntemme/tabdeck/internal/ui"
)

// toggleTheme flips between the light and dark theme and saves the choice
func (w *Window) toggleTheme() {
	theme := "dark"
	if w.o.config.IsDarkMode() {
		theme = "light"
	}
	if err := w.o.config.SetTheme(theme); err != nil {
		log.Printf("Config: failed to save theme: %v", err)
		w.ui.Toast.ShowError("Could not save theme: " + err.Error())
	}
	w.o.broadcastConfig()
}

// toggleReduceMotion turns reflow animations off or back on
func (w *Window) toggleReduceMotion() {
	on := !w.o.config.Get().UI.ReduceMotion
	if err := w.o.config.SetReduceMotion(on); err != nil {
		log.Printf("Config: failed to save reduce motion: %v", err)
		w.ui.Toast.ShowError("Could not save setting: " + err.Error())
	}
	msg := "Animations on"
	if on {
		msg = "Animations off"
	}
	w.ui.Toast.Show(msg, ui.ToastInfo)
	w.o.broadcastConfig()
}
