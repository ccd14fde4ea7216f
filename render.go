package halcyon

import "github.com/halcyon-ui/halcyon/geom"

// ============================================================================
// Render Surface
// ============================================================================

// Color is an sRGB color with straight alpha.
type Color struct {
	R, G, B, A uint8
}

// Primitive is one filled rectangle a widget draws, in the widget's local
// coordinate space. The clipped frame translates and clips it before the
// renderer sees it.
type Primitive struct {
	Rect  geom.Rect
	Color Color
}

// Frame receives the window-space primitives of one redraw pass.
type Frame interface {
	// UploadPrimitives hands over the primitives one widget produced,
	// already translated to window space and clipped.
	UploadPrimitives(id WidgetID, prims []Primitive)
}

// Renderer is the injected drawing backend. The driver brackets every redraw
// in BeginFrame/EndFrame and feeds widget output through the returned Frame.
type Renderer interface {
	BeginFrame(size geom.Size) Frame
	EndFrame()
}

// RenderWidget is implemented by widgets that draw. Widgets without it are
// layout-only and contribute nothing to the frame.
type RenderWidget interface {
	Widget
	Render(frame ClippedFrame)
}

// ============================================================================
// Clipped Frame
// ============================================================================

// ClippedFrame is the drawing handle a widget receives during redraw: it
// knows the widget's window rectangle and visible region, translates the
// widget's local primitives into window space, and drops whatever falls
// outside the clip.
type ClippedFrame struct {
	frame Frame
	id    WidgetID
	rect  geom.Rect
	clip  geom.Rect
}

// Rect returns the widget's rectangle in window coordinates.
func (c ClippedFrame) Rect() geom.Rect { return c.rect }

// Clip returns the widget's visible region in window coordinates.
func (c ClippedFrame) Clip() geom.Rect { return c.clip }

// Size returns the widget's drawable extent.
func (c ClippedFrame) Size() geom.Size { return c.rect.Size() }

// Upload translates local-space primitives to window space, clips them, and
// forwards the survivors to the renderer.
func (c ClippedFrame) Upload(prims ...Primitive) {
	out := make([]Primitive, 0, len(prims))
	for _, p := range prims {
		r, ok := p.Rect.Translate(c.rect.Origin()).Intersect(c.clip)
		if !ok {
			continue
		}
		p.Rect = r
		out = append(out, p)
	}
	if len(out) > 0 {
		c.frame.UploadPrimitives(c.id, out)
	}
}
