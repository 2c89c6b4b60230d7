// ==============================================================================================
// FILE: driver/driver.go
// ==============================================================================================
// PACKAGE: driver
// PURPOSE: Terminal metrics preseeded onto the root scope's globals before execution starts.
// ==============================================================================================

package driver

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"zen/scope"
	"zen/value"
)

// PreseedGlobals sets ekrangenişliği/ekranyüksekliği on the root scope to the current
// terminal's width/height. Both default to 0 when stdout is not a terminal.
func PreseedGlobals(mgr *scope.Manager) {
	width, height := 0, 0
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		if w, h, err := term.GetSize(int(fd)); err == nil {
			width, height = w, h
		}
	}
	mgr.SetGlobal("ekrangenişliği", value.Num(float64(width)))
	mgr.SetGlobal("ekranyüksekliği", value.Num(float64(height)))
}
