package halcyon

import (
	"fmt"
	"strings"

	"github.com/halcyon-ui/halcyon/geom"
)

// eventLog collects every delivery across a test tree in order.
type eventLog struct {
	events []recordedEvent
}

type recordedEvent struct {
	widget string
	event  WidgetEvent
	source []Ident
	state  InputState
}

func (l *eventLog) take() []recordedEvent {
	out := l.events
	l.events = nil
	return out
}

// names renders the pending log as "widget/EventType" strings and clears it.
func (l *eventLog) names() []string {
	events := l.take()
	out := make([]string, len(events))
	for i, e := range events {
		kind := strings.TrimPrefix(fmt.Sprintf("%T", e.event), "halcyon.")
		out[i] = e.widget + "/" + kind
	}
	return out
}

// testWidget is a leaf widget that records everything delivered to it. An
// optional ops hook decides what OnEvent returns per event.
type testWidget struct {
	name string
	tag  *WidgetTag
	rect geom.Rect
	log  *eventLog
	ops  func(event WidgetEvent) EventOps
}

func newTestWidget(name string, r geom.Rect, log *eventLog) *testWidget {
	return &testWidget{name: name, tag: NewWidgetTag(), rect: r, log: log}
}

func (w *testWidget) Tag() *WidgetTag     { return w.tag }
func (w *testWidget) Rect() geom.Rect     { return w.rect }
func (w *testWidget) SetRect(r geom.Rect) { w.rect = r }

func (w *testWidget) OnEvent(event WidgetEvent, source []Ident, state InputState) EventOps {
	w.log.events = append(w.log.events, recordedEvent{
		widget: w.name,
		event:  event,
		source: source,
		state:  state,
	})
	if w.ops != nil {
		return w.ops(event)
	}
	return EventOps{}
}

func (w *testWidget) SizeBounds() SizeBounds { return DefaultSizeBounds() }

// testParent is testWidget plus children held in a Fields container.
type testParent struct {
	testWidget
	kids Fields
}

func newTestParent(name string, r geom.Rect, log *eventLog, kids Fields) *testParent {
	return &testParent{
		testWidget: testWidget{name: name, tag: NewWidgetTag(), rect: r, log: log},
		kids:       kids,
	}
}

func (p *testParent) NumChildren() int                     { return p.kids.NumChildren() }
func (p *testParent) Child(ident Ident) (ChildInfo, bool)  { return p.kids.Child(ident) }
func (p *testParent) ChildByIndex(i int) (ChildInfo, bool) { return p.kids.ChildByIndex(i) }
func (p *testParent) Children(v func(ChildInfo) LoopFlow)  { p.kids.Children(v) }
func (p *testParent) UpdateChildLayout()                   {}

// testTree is the standard fixture: a 500x500 root holding a two-child
// column on the left and a tall widget on the right.
//
//	root (0,0)-(500,500)
//	├── left (10,10)-(240,490)
//	│   ├── tl (10,10)-(220,230)    window (20,20)-(230,240)
//	│   └── bl (10,250)-(220,470)   window (20,260)-(230,480)
//	└── right (260,10)-(490,490)
type testTree struct {
	log   *eventLog
	root  *testParent
	left  *testParent
	right *testWidget
	tl    *testWidget
	bl    *testWidget
	r     *Root
}

func newTestTree() *testTree {
	log := &eventLog{}
	tl := newTestWidget("tl", geom.R(10, 10, 220, 230), log)
	bl := newTestWidget("bl", geom.R(10, 250, 220, 470), log)
	left := newTestParent("left", geom.R(10, 10, 240, 490), log, Fields{
		{Name: "tl", Widget: tl},
		{Name: "bl", Widget: bl},
	})
	right := newTestWidget("right", geom.R(260, 10, 490, 490), log)
	root := newTestParent("root", geom.R(0, 0, 500, 500), log, Fields{
		{Name: "left", Widget: left},
		{Name: "right", Widget: right},
	})

	return &testTree{
		log: log, root: root, left: left, right: right, tl: tl, bl: bl,
		r: NewRoot(root, geom.Sz(500, 500), DefaultOptions()),
	}
}

func (tt *testTree) id(w Widget) WidgetID { return w.Tag().ID() }
