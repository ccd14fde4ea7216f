package halcyon

import (
	"time"

	"github.com/halcyon-ui/halcyon/geom"
	"github.com/halcyon-ui/halcyon/internal/debug"
)

// ============================================================================
// Input Tracking
// ============================================================================

// inputTracker is the dispatcher's model of global input: where the cursor
// is, what is held down, and which widgets currently own hover and keyboard
// focus. Positions are window space.
type inputTracker struct {
	mousePos    *geom.Point
	buttonsDown []HeldButton
	keysDown    []Key
	modifiers   Modifiers

	hover WidgetID
	focus WidgetID
}

func (in *inputTracker) heldFor(b MouseButton) (HeldButton, bool) {
	for _, h := range in.buttonsDown {
		if h.Button == b {
			return h, true
		}
	}
	return HeldButton{}, false
}

func (in *inputTracker) pushButton(b MouseButton, pos geom.Point) {
	if _, held := in.heldFor(b); held {
		return
	}
	in.buttonsDown = append(in.buttonsDown, HeldButton{Button: b, DownPos: pos})
}

func (in *inputTracker) releaseButton(b MouseButton) {
	for i, h := range in.buttonsDown {
		if h.Button == b {
			in.buttonsDown = append(in.buttonsDown[:i], in.buttonsDown[i+1:]...)
			return
		}
	}
}

func (in *inputTracker) hasKey(k Key) bool {
	for _, held := range in.keysDown {
		if held == k {
			return true
		}
	}
	return false
}

func (in *inputTracker) addKey(k Key) {
	if !in.hasKey(k) {
		in.keysDown = append(in.keysDown, k)
	}
}

func (in *inputTracker) removeKey(k Key) {
	for i, held := range in.keysDown {
		if held == k {
			in.keysDown = append(in.keysDown[:i], in.keysDown[i+1:]...)
			return
		}
	}
}

// clickTracker counts consecutive presses of the same button within the
// configured time and distance window.
type clickTracker struct {
	button MouseButton
	pos    geom.Point
	at     time.Time
	count  int
}

func (c *clickTracker) press(b MouseButton, pos geom.Point, now time.Time, opts Options) int {
	if b == c.button && c.count > 0 &&
		now.Sub(c.at) <= opts.doubleClickWindow() &&
		pos.Dist(c.pos) <= opts.DoubleClickDistance {
		c.count++
	} else {
		c.count = 1
	}
	c.button, c.pos, c.at = b, pos, now
	return c.count
}

// ============================================================================
// Translator
// ============================================================================

// Translator turns raw window events into targeted widget events and runs
// the delivery loop. It owns the event queue, the input model, and the
// emitted-action buffer; it borrows the virtual tree, the stack pool, and
// the update state from the driver on each call.
type Translator struct {
	opts Options
	now  func() time.Time

	input  inputTracker
	clicks clickTracker
	queue  eventQueue

	// pressTargets remembers which widget each held button's MouseDown was
	// originally delivered to, so the matching MouseUp targets it even after
	// the cursor moved away.
	pressTargets map[MouseButton]WidgetID

	actions []any
}

// NewTranslator creates a translator with the given tuning.
func NewTranslator(opts Options) *Translator {
	return &Translator{
		opts:         opts,
		now:          time.Now,
		pressTargets: make(map[MouseButton]WidgetID),
	}
}

// Hover returns the widget currently under the cursor, zero when none.
func (tr *Translator) Hover() WidgetID { return tr.input.hover }

// Focus returns the keyboard-focused widget, zero when none.
func (tr *Translator) Focus() WidgetID { return tr.input.focus }

// InputState returns the current window-space input snapshot.
func (tr *Translator) InputState() InputState {
	return InputState{
		MousePos:    tr.input.mousePos,
		ButtonsDown: tr.input.buttonsDown,
		KeysDown:    tr.input.keysDown,
		Modifiers:   tr.input.modifiers,
	}
}

// DrainActions returns the actions widgets emitted since the last drain.
func (tr *Translator) DrainActions() []any {
	out := tr.actions
	tr.actions = nil
	return out
}

// QueueDirect enqueues a widget event for dest without any input-model
// bookkeeping. The driver uses it for synthesized events such as timer
// ticks.
func (tr *Translator) QueueDirect(dest WidgetID, event WidgetEvent) {
	tr.queue.push(queuedEvent{dest: dest, event: event})
}

// ============================================================================
// Window Event Translation
// ============================================================================

// TranslateWindowEvent updates the input model from a raw window event and
// enqueues the widget events it implies. Nothing is delivered until
// DispatchEvents runs.
func (tr *Translator) TranslateWindowEvent(we WindowEvent, root Widget, tree *VirtualTree) {
	switch e := we.(type) {
	case WindowMouseMove:
		old := e.Pos
		if tr.input.mousePos != nil {
			old = *tr.input.mousePos
		}
		pos := e.Pos
		tr.input.mousePos = &pos
		if tr.input.hover != 0 {
			if _, ok := tree.Data(tr.input.hover); !ok {
				// The hovered widget vanished since the last event; re-derive
				// hover from the root as if the cursor had just entered.
				tr.input.hover = 0
			}
		}
		if tr.input.hover == 0 {
			if !root.Rect().Contains(e.Pos) {
				return
			}
			tr.input.hover = tree.RootID()
			tr.queue.push(queuedEvent{dest: tree.RootID(), event: MouseEnter{}})
		}
		tr.queue.push(queuedEvent{
			dest:  tr.input.hover,
			event: MouseMove{Old: old, New: e.Pos, InWidget: true},
		})

	case WindowMouseExit:
		if tr.input.hover != 0 {
			tr.queue.push(queuedEvent{dest: tr.input.hover, event: MouseExit{}, clearHover: true})
		}
		// While a button is held the last tracked position stays valid so a
		// release outside the window still resolves where the cursor was.
		if len(tr.input.buttonsDown) == 0 {
			tr.input.mousePos = nil
		}

	case WindowMouseDown:
		if tr.input.mousePos == nil || tr.input.hover == 0 {
			return
		}
		pos := *tr.input.mousePos
		clicks := tr.clicks.press(e.Button, pos, tr.now(), tr.opts)
		tr.input.pushButton(e.Button, pos)
		tr.queue.push(queuedEvent{
			dest:  tr.input.hover,
			event: MouseDown{Pos: pos, Button: e.Button, Clicks: clicks},
		})

	case WindowMouseUp:
		held, ok := tr.input.heldFor(e.Button)
		if !ok {
			return
		}
		pos := held.DownPos
		if tr.input.mousePos != nil {
			pos = *tr.input.mousePos
		}
		dest := tr.pressTargets[e.Button]
		if dest == 0 {
			dest = tr.input.hover
		}
		tr.input.releaseButton(e.Button)
		if dest == 0 {
			return
		}
		tr.queue.push(queuedEvent{
			dest: dest,
			event: MouseUp{
				Pos:     pos,
				DownPos: held.DownPos,
				Button:  e.Button,
				Clicks:  tr.clicks.count,
			},
		})

	case WindowScrollLines:
		if tr.input.hover != 0 {
			tr.queue.push(queuedEvent{dest: tr.input.hover, event: ScrollLines{Dir: e.Dir}})
		}

	case WindowScrollPx:
		if tr.input.hover != 0 {
			tr.queue.push(queuedEvent{dest: tr.input.hover, event: ScrollPx{Dir: e.Dir}})
		}

	case WindowKeyDown:
		tr.input.modifiers = e.Mods
		if tr.input.hasKey(e.Key) {
			// Auto-repeat.
			return
		}
		tr.input.addKey(e.Key)
		tr.queue.push(queuedEvent{dest: tr.keyDest(tree), event: KeyDown{Key: e.Key, Mods: e.Mods}})

	case WindowKeyUp:
		tr.input.modifiers = e.Mods
		if !tr.input.hasKey(e.Key) {
			// Release for a key whose press was never tracked, e.g. one held
			// across window focus changes.
			return
		}
		tr.input.removeKey(e.Key)
		tr.queue.push(queuedEvent{dest: tr.keyDest(tree), event: KeyUp{Key: e.Key, Mods: e.Mods}})

	case WindowChar:
		dest := tr.focusIn(tree)
		if dest == 0 {
			debug.Logf("translate: drop char %q: no focus", e.Char)
			return
		}
		tr.queue.push(queuedEvent{dest: dest, event: CharInput{Char: e.Char}})

	case WindowResize:
		// The driver resizes the root directly; no widget event to queue.
	}
}

// keyDest is where key events land: the focus widget, or the root when
// nothing holds focus.
func (tr *Translator) keyDest(tree *VirtualTree) WidgetID {
	if f := tr.focusIn(tree); f != 0 {
		return f
	}
	return tree.RootID()
}

// focusIn returns the focus widget if it is still in the tree, clearing a
// focus left dangling by a removal.
func (tr *Translator) focusIn(tree *VirtualTree) WidgetID {
	if tr.input.focus == 0 {
		return 0
	}
	if _, ok := tree.Data(tr.input.focus); !ok {
		tr.input.focus = 0
	}
	return tr.input.focus
}

// ============================================================================
// Delivery
// ============================================================================

// DispatchEvents drains the event queue, delivering each event to its
// destination through a borrowed widget stack. Deliveries may enqueue
// further events; the drain continues until the queue is empty.
func (tr *Translator) DispatchEvents(root Widget, tree *VirtualTree, pool *StackPool, state *UpdateState) {
	if tr.queue.len() == 0 {
		return
	}
	stack := pool.Use(root)
	defer stack.Release()

	for {
		qe, ok := tr.queue.pop()
		if !ok {
			return
		}
		tr.deliverOne(tree, stack, state, qe)
	}
}

func (tr *Translator) deliverOne(tree *VirtualTree, stack *WidgetStack, state *UpdateState, qe queuedEvent) {
	ow, err := stack.MoveTo(tree, qe.dest)
	if err != nil {
		// Target removed between queue and delivery; drop the event and
		// forget the target so later events re-derive hover and focus.
		debug.Logf("dispatch: drop %T for %v: %v", qe.event, qe.dest, err)
		if qe.dest == tr.input.hover {
			tr.input.hover = 0
		}
		if qe.dest == tr.input.focus {
			tr.input.focus = 0
		}
		for b, id := range tr.pressTargets {
			if id == qe.dest {
				delete(tr.pressTargets, b)
			}
		}
		return
	}

	ev := qe.event
	switch e := ev.(type) {
	case MouseMove:
		var done bool
		ev, done = tr.prepareMove(tree, ow, qe.dest, e)
		if done {
			return
		}
	case MouseDown:
		e.InWidget = ow.Rect().Contains(e.Pos)
		ev = e
	case MouseUp:
		tag := ow.Tag()
		if held, ok := tagHeld(tag, e.Button); ok {
			e.DownPos = held.DownPos
		}
		e.PressedInWidget = tag.holdsButton(e.Button)
		e.InWidget = ow.Rect().Contains(e.Pos)
		ev = e
	}

	ops := ow.DeliverEvent(ev, qe.bubbleSource, tr.InputState())

	switch e := ev.(type) {
	case MouseEnter:
		tr.input.hover = qe.dest
	case MouseExit:
		tr.finishExit(tree, qe)
	case MouseDown:
		// Only the original target records the press; ancestors seeing the
		// bubbled event never observe the matching release.
		if len(qe.bubbleSource) == 0 {
			ow.Tag().pushButton(e.Button, e.Pos)
			tr.pressTargets[e.Button] = qe.dest
		}
	case MouseUp:
		ow.Tag().releaseButton(e.Button)
		if tr.pressTargets[e.Button] == qe.dest {
			delete(tr.pressTargets, e.Button)
		}
	}

	tr.performOps(tree, qe.dest, ev, ops, state, qe.bubbleSource)
}

// prepareMove resolves where a mouse move actually lands. While a button is
// held the hover widget keeps the implicit grab and sees every move; with no
// buttons down a move outside the widget cascades an exit toward the root,
// and a move over a child descends one level per delivery.
func (tr *Translator) prepareMove(tree *VirtualTree, ow OffsetWidget, dest WidgetID, e MouseMove) (WidgetEvent, bool) {
	contains := ow.Rect().Contains(e.New)
	if len(tr.input.buttonsDown) > 0 {
		e.InWidget = contains
		return e, false
	}

	if !contains && dest != tree.RootID() {
		if parent, err := tree.Parent(dest); err == nil {
			tr.queue.push(queuedEvent{dest: dest, event: MouseExit{}})
			tr.queue.push(queuedEvent{dest: parent, event: e})
			return nil, true
		}
	}

	e.InWidget = contains
	if contains {
		if op, ok := ow.AsParent(); ok {
			if child, hit := hitChild(op, e.New); hit {
				e.InWidget = false
				tr.queue.push(queuedEvent{dest: child, event: MouseEnter{}})
				tr.queue.push(queuedEvent{dest: child, event: MouseMove{Old: e.Old, New: e.New, InWidget: true}})
			}
		}
	}
	return e, false
}

// finishExit updates hover after a MouseExit delivery: a window exit forgets
// hover outright unless a held button keeps the grab, a cascade exit hands
// hover to the parent.
func (tr *Translator) finishExit(tree *VirtualTree, qe queuedEvent) {
	if qe.clearHover {
		if len(tr.input.buttonsDown) == 0 {
			tr.input.hover = 0
		}
		return
	}
	if parent, err := tree.Parent(qe.dest); err == nil {
		tr.input.hover = parent
	} else {
		tr.input.hover = 0
	}
}

// hitChild returns the first child whose visible rectangle contains p.
func hitChild(op OffsetParent, p geom.Point) (WidgetID, bool) {
	var id WidgetID
	hit := false
	op.Children(func(c OffsetChildInfo) LoopFlow {
		if r, ok := c.Widget.RectClipped(); ok && r.Contains(p) {
			id = c.Widget.ID()
			hit = true
			return Break
		}
		return Continue
	})
	return id, hit
}

func tagHeld(t *WidgetTag, b MouseButton) (HeldButton, bool) {
	for _, h := range t.heldButtons {
		if h.Button == b {
			return h, true
		}
	}
	return HeldButton{}, false
}

// performOps applies the ops a widget returned from OnEvent. Every delivery
// path funnels through here, so actions, focus moves, cursor requests, and
// bubbling behave identically regardless of event kind.
func (tr *Translator) performOps(tree *VirtualTree, dest WidgetID, ev WidgetEvent, ops EventOps, state *UpdateState, source []Ident) {
	if ops.Action != nil {
		tr.actions = append(tr.actions, ops.Action)
	}
	if ops.CursorPos != nil {
		state.requestCursorPos(*ops.CursorPos)
	}
	if ops.Cursor != nil {
		state.requestCursorIcon(*ops.Cursor)
	}
	if ops.Focus != FocusNone {
		tr.applyFocus(tree, dest, ops.Focus)
	}
	if ops.Bubble && bubbles(ev) && dest != tree.RootID() {
		if parent, err := tree.Parent(dest); err == nil {
			data, _ := tree.Data(dest)
			src := append([]Ident{data.Ident}, source...)
			tr.queue.push(queuedEvent{dest: parent, event: ev, bubbleSource: src})
		}
	}
}

// bubbles reports whether an event kind may propagate to ancestors. Hover,
// focus, and timer events are strictly targeted.
func bubbles(ev WidgetEvent) bool {
	switch ev.(type) {
	case MouseDown, MouseUp, ScrollLines, ScrollPx, KeyDown, KeyUp, CharInput:
		return true
	}
	return false
}

// applyFocus resolves a FocusChange relative to the widget that requested it
// and, when the focus actually moves, notifies both sides through the queue.
func (tr *Translator) applyFocus(tree *VirtualTree, dest WidgetID, fc FocusChange) {
	target := tr.input.focus
	switch fc {
	case FocusTake:
		target = dest
	case FocusRemove:
		target = 0
	case FocusParent:
		p, err := tree.Parent(dest)
		if err != nil {
			return
		}
		target = p
	case FocusNext:
		s, ok := tree.SiblingWrapping(dest, 1)
		if !ok {
			return
		}
		target = s
	case FocusPrev:
		s, ok := tree.SiblingWrapping(dest, -1)
		if !ok {
			return
		}
		target = s
	}
	if target == tr.input.focus {
		return
	}
	if old := tr.input.focus; old != 0 {
		tr.queue.push(queuedEvent{dest: old, event: FocusLost{}})
	}
	tr.input.focus = target
	if target != 0 {
		tr.queue.push(queuedEvent{dest: target, event: FocusGained{}})
	}
}
