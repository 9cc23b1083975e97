package calibrate

import "tradedeadline/internal/geo"

// PointerKind distinguishes pointer events delivered during a drag
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerRelease
)

// PointerEvent is a pointer position in the input source's coordinate space
type PointerEvent struct {
	Kind PointerKind
	Pos  geo.Point
}

// PointerInputSource delivers pointer events to subscribers until they unsubscribe
type PointerInputSource interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}
