package clock

import (
	"github.com/go-drift/analogclock/pkg/errors"
	"github.com/go-drift/analogclock/pkg/rendering"
)

// Surface looks up elements by selector. It returns nil when nothing matches.
type Surface interface {
	QuerySelector(selector string) *rendering.Element
}

// Selectors names the elements the clock binds to.
type Selectors struct {
	Hour   string
	Minute string
	Second string
	// Face lists candidate selectors for the face container, tried in order.
	Face []string
}

// DefaultSelectors returns the class selectors used by the stock face.
func DefaultSelectors() Selectors {
	return Selectors{
		Hour:   ".hour-hand",
		Minute: ".min-hand",
		Second: ".second-hand",
		Face:   []string{".outer-clock-face", ".clock"},
	}
}

// ElementHandles holds the bound elements. A nil field means the element
// was not found; every operation skips nil handles.
type ElementHandles struct {
	Hour   *rendering.Element
	Minute *rendering.Element
	Second *rendering.Element
	Face   *rendering.Element
}

// Missing returns the roles that could not be bound.
func (h ElementHandles) Missing() []string {
	var missing []string
	if h.Hour == nil {
		missing = append(missing, "hour-hand")
	}
	if h.Minute == nil {
		missing = append(missing, "min-hand")
	}
	if h.Second == nil {
		missing = append(missing, "second-hand")
	}
	if h.Face == nil {
		missing = append(missing, "clock-face")
	}
	return missing
}

// Complete reports whether all four elements were bound.
func (h ElementHandles) Complete() bool {
	return len(h.Missing()) == 0
}

// Bind resolves the clock's elements from s. Missing elements are reported
// as a KindMissingElement diagnostic and left nil; Bind never fails.
func Bind(s Surface, sel Selectors) ElementHandles {
	h := ElementHandles{
		Hour:   query(s, sel.Hour),
		Minute: query(s, sel.Minute),
		Second: query(s, sel.Second),
	}
	for _, f := range sel.Face {
		if h.Face = query(s, f); h.Face != nil {
			break
		}
	}

	if missing := h.Missing(); len(missing) > 0 {
		errors.Report(&errors.ClockError{
			Op:   "clock.Bind",
			Kind: errors.KindMissingElement,
			Err:  &errors.MissingElementError{Roles: missing},
		})
	}
	return h
}

func query(s Surface, selector string) *rendering.Element {
	if s == nil || selector == "" {
		return nil
	}
	return s.QuerySelector(selector)
}
