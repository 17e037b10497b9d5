package theme

import "sync"

// registry keeps palettes in the order they were registered. That order is
// what Available lists and CycleTheme walks.
type registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Theme
	active int
}

var themes = &registry{byName: make(map[string]Theme), active: -1}

// RegisterTheme adds t under name. The first registered theme becomes the
// active one; registering an existing name replaces its palette in place.
func RegisterTheme(name string, t Theme) {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	if _, ok := themes.byName[name]; !ok {
		themes.order = append(themes.order, name)
	}
	themes.byName[name] = t
	if themes.active < 0 {
		themes.active = 0
	}
}

// SetTheme activates a registered theme and reports whether name was known.
func SetTheme(name string) bool {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	idx := themes.indexOf(name)
	if idx < 0 {
		return false
	}
	themes.active = idx
	return true
}

// Current returns the active theme, or nil when nothing is registered.
func Current() Theme {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	if themes.active < 0 {
		return nil
	}
	return themes.byName[themes.order[themes.active]]
}

// CurrentName returns the active theme's name.
func CurrentName() string {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	if themes.active < 0 {
		return ""
	}
	return themes.order[themes.active]
}

// Available lists theme names in registration order.
func Available() []string {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	return append([]string(nil), themes.order...)
}

// CycleTheme activates the theme registered after the current one, wrapping
// to the first, and returns its name.
func CycleTheme() string {
	themes.mu.Lock()
	defer themes.mu.Unlock()
	if len(themes.order) == 0 {
		return ""
	}
	themes.active = (themes.active + 1) % len(themes.order)
	return themes.order[themes.active]
}

func (r *registry) indexOf(name string) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}
