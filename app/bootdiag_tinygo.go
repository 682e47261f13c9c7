//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync/atomic"
	"time"

	"sparkwidgets/hal"
)

var bootStep atomic.Value // string

func bootDiagSetStep(msg string) { bootStep.Store(msg) }

// bootDiagStart repeats the current boot step on the UART and USB CDC every 250ms,
// so a hang during bring-up shows where it stopped.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()
	go func() {
		for {
			step, _ := bootStep.Load().(string)
			if step == "" {
				step = "<empty>"
			}
			line := "boot: " + step
			if l != nil {
				l.WriteLineString(line)
			}
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte(line + "\r\n"))
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
