// Package app wires the kernel, services and widgets into a running system.
package app

import (
	"errors"

	"sparkwidgets/hal"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
	"sparkwidgets/sparkos/services/consolemux"
	"sparkwidgets/sparkos/services/logger"
	"sparkwidgets/sparkos/services/termkbd"
	"sparkwidgets/sparkos/tasks/calc"
	"sparkwidgets/sparkos/tasks/convert"
	"sparkwidgets/sparkos/tasks/convert/rates"
	"sparkwidgets/sparkos/tasks/home"
	"sparkwidgets/sparkos/tasks/timer"
)

// ErrKernelPanic is returned by the step function once a task has panicked.
var ErrKernelPanic = errors.New("kernel panic")

type Config struct {
	// InitialApp is opened right after boot. AppNone stays on the home page.
	InitialApp proto.AppID
	// Arg is passed to InitialApp as its select argument (a key script).
	Arg string
	// Rates overrides the built-in currency table.
	Rates *rates.Table
}

type system struct {
	k *kernel.Kernel
}

// New starts the system with the default config and returns its step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the system and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

// NewWithConfig starts the system. The returned step function reports ErrKernelPanic
// after any task panicked; runners stop on it.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return func() error {
		if s.k.InPanicMode() {
			return ErrKernelPanic
		}
		return nil
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	bootDiagStart(h)
	bootScreen(h, "kernel")

	k := kernel.New()
	installPanicHandler(k, h)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	muxEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	homeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	convertEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timerEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	logCap := logEP.Restrict(kernel.RightSend)
	muxCap := muxEP.Restrict(kernel.RightSend)

	bootScreen(h, "services")
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(consolemux.New(
		muxEP.Restrict(kernel.RightRecv),
		muxCap,
		logCap,
		homeEP.Restrict(kernel.RightSend),
		map[proto.AppID]kernel.Capability{
			proto.AppCalc:    calcEP.Restrict(kernel.RightSend),
			proto.AppConvert: convertEP.Restrict(kernel.RightSend),
			proto.AppTimer:   timerEP.Restrict(kernel.RightSend),
		},
	))
	k.AddTask(termkbd.New(h.Input(), muxCap))

	bootScreen(h, "widgets")
	disp := h.Display()
	k.AddTask(calc.New(disp, calcEP.Restrict(kernel.RightRecv), logCap))
	k.AddTask(convert.New(disp, convertEP.Restrict(kernel.RightRecv), logCap, cfg.Rates))
	k.AddTask(timer.New(disp, timerEP.Restrict(kernel.RightRecv), logCap))

	launcher := home.New(disp, homeEP.Restrict(kernel.RightRecv), logCap, muxCap)
	launcher.OpenAtStart(cfg.InitialApp, cfg.Arg)
	k.AddTask(launcher)

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
