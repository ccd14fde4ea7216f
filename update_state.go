package halcyon

import "github.com/halcyon-ui/halcyon/geom"

// ============================================================================
// Shared Update State
// ============================================================================

// UpdateState aggregates the update requests of every widget in one tree:
// which widgets need a repaint, which need their children re-laid-out, whose
// timer registrations changed, plus at most one cursor override per dispatch
// pass. Widget tags hold a non-owning reference to it and only ever set
// flags, so request order never matters; the driver consumes everything
// before the next frame.
type UpdateState struct {
	redraw       map[WidgetID]struct{}
	relayout     map[WidgetID]struct{}
	updateTimers map[WidgetID]struct{}

	cursorPos  *geom.Point
	cursorIcon *CursorIcon

	messages []queuedMessage
}

// NewUpdateState creates an empty update aggregation state.
func NewUpdateState() *UpdateState {
	return &UpdateState{
		redraw:       make(map[WidgetID]struct{}),
		relayout:     make(map[WidgetID]struct{}),
		updateTimers: make(map[WidgetID]struct{}),
	}
}

func (s *UpdateState) requestRedraw(id WidgetID)       { s.redraw[id] = struct{}{} }
func (s *UpdateState) requestRelayout(id WidgetID)     { s.relayout[id] = struct{}{} }
func (s *UpdateState) requestUpdateTimers(id WidgetID) { s.updateTimers[id] = struct{}{} }

func (s *UpdateState) requestCursorPos(pos geom.Point) {
	p := pos
	s.cursorPos = &p
}

func (s *UpdateState) requestCursorIcon(icon CursorIcon) {
	i := icon
	s.cursorIcon = &i
}

// removeWidget forgets every pending request for a widget that is gone.
func (s *UpdateState) removeWidget(id WidgetID) {
	delete(s.redraw, id)
	delete(s.relayout, id)
	delete(s.updateTimers, id)
}

func (s *UpdateState) widgetNeedsUpdate(id WidgetID) bool {
	if _, ok := s.redraw[id]; ok {
		return true
	}
	if _, ok := s.relayout[id]; ok {
		return true
	}
	_, ok := s.updateTimers[id]
	return ok
}

// NeedsRedraw reports whether any widget requested a repaint.
func (s *UpdateState) NeedsRedraw() bool { return len(s.redraw) > 0 }

// NeedsRelayout reports whether any widget requested a relayout.
func (s *UpdateState) NeedsRelayout() bool { return len(s.relayout) > 0 }

// TakeRedraw drains and returns the set of widgets needing a repaint.
func (s *UpdateState) TakeRedraw() []WidgetID {
	ids := make([]WidgetID, 0, len(s.redraw))
	for id := range s.redraw {
		ids = append(ids, id)
	}
	clear(s.redraw)
	return ids
}

// TakeRelayout drains and returns the set of widgets needing a relayout.
func (s *UpdateState) TakeRelayout() []WidgetID {
	ids := make([]WidgetID, 0, len(s.relayout))
	for id := range s.relayout {
		ids = append(ids, id)
	}
	clear(s.relayout)
	return ids
}

// TakeCursorRequests drains the cursor overrides requested this pass. Either
// value is nil when nothing asked for it.
func (s *UpdateState) TakeCursorRequests() (pos *geom.Point, icon *CursorIcon) {
	pos, icon = s.cursorPos, s.cursorIcon
	s.cursorPos, s.cursorIcon = nil, nil
	return pos, icon
}
