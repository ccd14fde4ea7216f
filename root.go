package halcyon

import (
	"sort"
	"time"

	"github.com/halcyon-ui/halcyon/geom"
	"github.com/halcyon-ui/halcyon/internal/debug"
)

// ============================================================================
// Root Driver
// ============================================================================

// Root drives one widget tree: it mirrors the live widgets into the virtual
// tree, feeds window events through the translator, and runs the relayout,
// redraw, timer, and message passes the embedding loop asks for.
//
// All methods must be called from the one goroutine that owns the tree.
type Root struct {
	opts   Options
	widget Widget
	tree   *VirtualTree
	state  *UpdateState
	tr     *Translator
	pool   *StackPool
}

// NewRoot wraps w as the root of a tree filling a window of the given size.
func NewRoot(w Widget, size geom.Size, opts Options) *Root {
	if opts.DebugLog != "" {
		debug.Init(opts.DebugLog)
	}
	w.SetRect(geom.R(0, 0, size.W, size.H))

	r := &Root{
		opts:   opts,
		widget: w,
		tree:   NewVirtualTree(widgetID(w)),
		state:  NewUpdateState(),
		tr:     NewTranslator(opts),
		pool:   NewStackPool(),
	}
	w.Tag().attach(r.state)
	r.syncTree()
	return r
}

// Widget returns the live root widget.
func (r *Root) Widget() Widget { return r.widget }

// Tree returns the virtual tree. Read-only for callers; the driver keeps it
// in sync with the live widgets.
func (r *Root) Tree() *VirtualTree { return r.tree }

// Hover returns the widget under the cursor, zero when none.
func (r *Root) Hover() WidgetID { return r.tr.Hover() }

// Focus returns the keyboard-focused widget, zero when none.
func (r *Root) Focus() WidgetID { return r.tr.Focus() }

// DrainActions returns the actions widgets emitted since the last drain.
func (r *Root) DrainActions() []any { return r.tr.DrainActions() }

// NeedsRedraw reports whether any widget requested a repaint.
func (r *Root) NeedsRedraw() bool { return r.state.NeedsRedraw() }

// NeedsRelayout reports whether any widget requested a relayout.
func (r *Root) NeedsRelayout() bool { return r.state.NeedsRelayout() }

// TakeCursorRequests drains pending cursor warp/icon requests for the
// embedding window layer to honor.
func (r *Root) TakeCursorRequests() (*geom.Point, *CursorIcon) {
	return r.state.TakeCursorRequests()
}

// ============================================================================
// Tree Synchronization
// ============================================================================

// syncTree walks the live widgets and reconciles the virtual tree with what
// it finds: new widgets are inserted and attached, moved widgets follow
// their live parents, and IDs no longer reachable are removed.
func (r *Root) syncTree() {
	seen := map[WidgetID]struct{}{r.tree.RootID(): {}}
	r.syncChildren(r.widget, seen)

	var stale []WidgetID
	r.tree.AllNodes(func(id WidgetID, _ WidgetData) LoopFlow {
		if _, ok := seen[id]; !ok {
			stale = append(stale, id)
		}
		return Continue
	})
	for _, id := range stale {
		r.tree.Remove(id)
		r.state.removeWidget(id)
	}
}

func (r *Root) syncChildren(w Widget, seen map[WidgetID]struct{}) {
	p, ok := AsParent(w)
	if !ok {
		return
	}
	parentID := widgetID(w)
	p.Children(func(c ChildInfo) LoopFlow {
		id := widgetID(c.Widget)
		seen[id] = struct{}{}
		if err := r.tree.Insert(parentID, id, c.Index, c.Ident); err != nil {
			debug.Logf("sync: insert %v under %v: %v", id, parentID, err)
			return Continue
		}
		c.Widget.Tag().attach(r.state)
		r.syncChildren(c.Widget, seen)
		return Continue
	})
}

// ============================================================================
// Passes
// ============================================================================

// ProcessEvent feeds one window event through translation and delivers
// everything it implied. Structural changes widgets made while handling
// events are reconciled before the call returns.
func (r *Root) ProcessEvent(we WindowEvent) {
	if resize, ok := we.(WindowResize); ok {
		r.widget.SetRect(geom.R(0, 0, resize.Size.W, resize.Size.H))
		r.widget.Tag().RequestRelayout()
		return
	}

	r.syncTree()
	r.tr.TranslateWindowEvent(we, r.widget, r.tree)
	r.tr.DispatchEvents(r.widget, r.tree, r.pool, r.state)
	r.syncTree()
}

// relayoutPassLimit bounds how often a relayout may trigger further relayout
// requests before the driver gives up for this frame.
const relayoutPassLimit = 16

// Relayout runs pending child-layout requests, shallowest widgets first so a
// parent resizing its children settles before the children lay out their
// own. Layouts that request further relayouts are honored within the pass
// limit.
func (r *Root) Relayout() {
	for pass := 0; pass < relayoutPassLimit; pass++ {
		ids := r.state.TakeRelayout()
		if len(ids) == 0 {
			return
		}
		sort.Slice(ids, func(i, j int) bool {
			di, _ := r.tree.Data(ids[i])
			dj, _ := r.tree.Data(ids[j])
			return di.Depth() < dj.Depth()
		})

		stack := r.pool.Use(r.widget)
		for _, id := range ids {
			ow, err := stack.MoveTo(r.tree, id)
			if err != nil {
				continue
			}
			if p, ok := ow.AsParent(); ok {
				p.UpdateChildLayout()
			}
		}
		stack.Release()
		r.syncTree()
	}
	debug.Logf("relayout: pass limit reached with requests still pending")
}

// Redraw walks the visible tree and feeds drawing widgets to the renderer.
// A no-op unless some widget requested a repaint.
func (r *Root) Redraw(renderer Renderer) {
	if !r.state.NeedsRedraw() {
		return
	}
	r.state.TakeRedraw()

	frame := renderer.BeginFrame(r.widget.Rect().Size())
	r.redrawWidget(frame, NewOffsetWidget(r.widget, geom.Vec{}, nil))
	renderer.EndFrame()
}

func (r *Root) redrawWidget(frame Frame, ow OffsetWidget) {
	clip, visible := ow.RectClipped()
	if !visible {
		return
	}
	if rw, ok := ow.Inner().(RenderWidget); ok {
		rw.Render(ClippedFrame{frame: frame, id: ow.ID(), rect: ow.Rect(), clip: clip})
	}
	if op, ok := ow.AsParent(); ok {
		op.Children(func(c OffsetChildInfo) LoopFlow {
			r.redrawWidget(frame, c.Widget)
			return Continue
		})
	}
}

// ProcessTimers delivers a TimerTick to every widget timer due at now.
func (r *Root) ProcessTimers(now time.Time) {
	r.syncTree()
	visitWidgets(r.widget, func(w Widget) {
		tag := w.Tag()
		for id, timer := range tag.timers {
			if !timer.ready(now) {
				continue
			}
			timer.LastTriggered = now
			timer.Times++
			tag.timers[id] = timer
			r.tr.QueueDirect(tag.ID(), TimerTick{Timer: id, Times: timer.Times})
		}
	})
	r.tr.DispatchEvents(r.widget, r.tree, r.pool, r.state)
	r.syncTree()
}

// DeliverMessages drains the message bus, running registered handlers.
// Handlers may send further messages; those are delivered in the same call.
func (r *Root) DeliverMessages() {
	for len(r.state.messages) > 0 {
		msgs := r.state.messages
		r.state.messages = nil

		for _, m := range msgs {
			if m.target == nil {
				visitWidgets(r.widget, func(w Widget) {
					dispatchMessage(w, m.message)
				})
				continue
			}
			stack := r.pool.Use(r.widget)
			ow, err := stack.MoveTo(r.tree, m.target.Widget)
			if err != nil {
				debug.Logf("message: drop %T for %v: %v", m.message, m.target.Widget, err)
			} else {
				dispatchMessage(ow.Inner(), m.message)
			}
			stack.Release()
		}
	}
}

// visitWidgets walks the live tree depth first, parents before children.
func visitWidgets(w Widget, fn func(Widget)) {
	fn(w)
	if p, ok := AsParent(w); ok {
		p.Children(func(c ChildInfo) LoopFlow {
			visitWidgets(c.Widget, fn)
			return Continue
		})
	}
}
