package halcyon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ui/halcyon/geom"
)

func TestTagBuffersRequestsUntilAttach(t *testing.T) {
	tag := NewWidgetTag()
	tag.RequestRedraw()
	tag.RequestRelayout()

	state := NewUpdateState()
	assert.False(t, state.NeedsRedraw())

	tag.attach(state)
	assert.True(t, state.NeedsRedraw())
	assert.True(t, state.NeedsRelayout())
	assert.True(t, tag.needsUpdate())

	// Re-attaching to the same state changes nothing.
	state.TakeRedraw()
	state.TakeRelayout()
	tag.attach(state)
	assert.False(t, state.NeedsRedraw())
}

func TestTagReattachMovesBetweenStates(t *testing.T) {
	tag := NewWidgetTag()
	first := NewUpdateState()
	tag.attach(first)
	tag.RequestRedraw()
	require.True(t, first.NeedsRedraw())

	second := NewUpdateState()
	tag.attach(second)
	assert.False(t, first.widgetNeedsUpdate(tag.ID()), "old state forgets the widget")
	assert.False(t, tag.needsUpdate())

	tag.RequestRedraw()
	assert.True(t, second.NeedsRedraw())
}

func TestTagRelease(t *testing.T) {
	tag := NewWidgetTag()
	state := NewUpdateState()
	tag.attach(state)
	tag.RequestRelayout()

	tag.Release()
	assert.False(t, state.NeedsRelayout())

	// Requests after release buffer again.
	tag.RequestRedraw()
	assert.False(t, state.NeedsRedraw())
	assert.True(t, tag.pendingRedraw)
}

func TestTagHeldButtons(t *testing.T) {
	tag := NewWidgetTag()
	tag.pushButton(ButtonLeft, geom.Pt(1, 2))
	tag.pushButton(ButtonLeft, geom.Pt(9, 9)) // duplicate press ignored
	tag.pushButton(ButtonRight, geom.Pt(3, 4))

	assert.True(t, tag.holdsButton(ButtonLeft))
	require.Len(t, tag.heldButtons, 2)
	assert.Equal(t, geom.Pt(1, 2), tag.heldButtons[0].DownPos)

	tag.releaseButton(ButtonLeft)
	assert.False(t, tag.holdsButton(ButtonLeft))
	assert.True(t, tag.holdsButton(ButtonRight))
	tag.releaseButton(ButtonMiddle) // never held; no-op
	assert.Len(t, tag.heldButtons, 1)
}

func TestUpdateStateTakeSets(t *testing.T) {
	state := NewUpdateState()
	a, b := NewWidgetID(), NewWidgetID()
	state.requestRedraw(a)
	state.requestRedraw(b)
	state.requestRelayout(a)

	assert.ElementsMatch(t, []WidgetID{a, b}, state.TakeRedraw())
	assert.Empty(t, state.TakeRedraw())
	assert.Equal(t, []WidgetID{a}, state.TakeRelayout())

	state.requestUpdateTimers(b)
	assert.True(t, state.widgetNeedsUpdate(b))
	state.removeWidget(b)
	assert.False(t, state.widgetNeedsUpdate(b))
}
