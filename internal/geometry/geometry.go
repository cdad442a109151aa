// Package geometry describes where page sections sit relative to the
// viewport. The host (a browser, a terminal pager) measures; the core only
// reads through Provider.
package geometry

// Rect is a viewport-relative vertical box in pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Provider measures a section by id. ok is false while the section is
// unresolved (not yet laid out, or unknown to the host).
type Provider interface {
	Measure(id string) (r Rect, ok bool)
}

// Snapshot is a Provider backed by one batch of measurements.
type Snapshot map[string]Rect

// Measure implements Provider.
func (s Snapshot) Measure(id string) (Rect, bool) {
	r, ok := s[id]
	return r, ok
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(id string) (Rect, bool)

// Measure implements Provider.
func (f ProviderFunc) Measure(id string) (Rect, bool) { return f(id) }

// Unresolved never resolves any section.
var Unresolved Provider = ProviderFunc(func(string) (Rect, bool) { return Rect{}, false })
