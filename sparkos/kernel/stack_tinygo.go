//go:build tinygo

package kernel

// TinyGo cannot walk goroutine stacks at runtime.
func captureStack() []byte { return nil }
