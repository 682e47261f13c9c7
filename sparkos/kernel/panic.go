package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

type panicState struct {
	active  atomic.Bool
	once    sync.Once
	handler atomic.Value // func(PanicInfo)
}

// InPanicMode reports whether any task of k has panicked.
func (k *Kernel) InPanicMode() bool {
	return k.panic.active.Load()
}

// SetPanicHandler installs the handler for the first task panic.
//
// The handler is invoked at most once. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panic.handler.Store(fn)
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panic.once.Do(func() {
		k.panic.active.Store(true)
		info.Stack = captureStack()
		if v := k.panic.handler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
