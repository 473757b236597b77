package module

import "sync"

// process-wide registry for cross wiring ports during bootstrap.
// single process composition only; guarded for tests
var (
	regMu    sync.RWMutex
	registry = map[string]any{}
)

// Register stores the port set published under a module name.
// Registering the same name again replaces the previous entry
func Register(name string, ports any) {
	regMu.Lock()
	registry[name] = ports
	regMu.Unlock()
}

// PortsAs looks up name and asserts the entry to T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	v, ok := registry[name]
	regMu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry for tests
func Reset() {
	regMu.Lock()
	registry = map[string]any{}
	regMu.Unlock()
}
