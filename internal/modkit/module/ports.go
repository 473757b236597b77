package module

import "reflect"

// PortSet marks module-defined port bundles.
// Modules define concrete interface types and return them from Ports
type PortSet = any

// PortsOf extracts an interface T from a module's Ports() bundle without
// going through the registry. The bundle may implement T directly or carry
// it in an exported struct field; ok is false when neither holds
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, direct := p.(T); direct {
		return v, true
	}

	// walk exported struct fields only
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, found := f.Interface().(T); found {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf panics when the module does not expose the requested port
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return v
}
