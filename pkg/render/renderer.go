package render

import (
	"errors"
)

// ErrRenderTargetUnavailable is returned while no drawing surface is
// mounted. Callers defer drawing until a renderer is attached instead
// of treating it as fatal.
var ErrRenderTargetUnavailable = errors.New("render target unavailable")

// Renderer is the boundary between the view core and the concrete
// drawing technology. Implementations draw one complete scene per
// frame. Per-element failures inside Draw must skip the element, never
// abort the frame.
type Renderer interface {
	Draw(scene *Scene) error
}
