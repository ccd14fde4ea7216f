package halcyon

import (
	"fmt"
	"reflect"
)

// ============================================================================
// Message Bus
// ============================================================================

// Widgets can register typed message handlers on their tag; application code
// (or other widgets) broadcast message values through the shared update
// state, and the driver delivers each message to every widget that registered
// a handler for its type. Delivery uses checked runtime type tags rather than
// unchecked casts.

// MessageTarget restricts a sent message to one widget.
type MessageTarget struct {
	Widget WidgetID
}

type queuedMessage struct {
	message any
	target  *MessageTarget
}

type messageHandler struct {
	widgetType reflect.Type
	fn         reflect.Value
}

// RegisterMessage registers fn, which must have the signature
// func(widget *W, message M), to run whenever a message of type M is
// delivered to this widget. The widget argument receives the live widget so
// handlers can mutate it. Panics on a malformed handler signature: that is a
// programming error, not a runtime condition.
func (t *WidgetTag) RegisterMessage(fn any) {
	v := reflect.ValueOf(fn)
	ft := v.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() != 2 || ft.NumOut() != 0 {
		panic(fmt.Sprintf("halcyon: message handler must be func(widget, message), got %T", fn))
	}

	msgType := ft.In(1)
	h := messageHandler{widgetType: ft.In(0), fn: v}
	if t.handlers == nil {
		t.handlers = make(map[reflect.Type][]messageHandler)
	}
	t.handlers[msgType] = append(t.handlers[msgType], h)
}

// BroadcastMessage queues a message for every widget in the tree that
// registered a handler for its type. Fails with ErrTagUnattached before the
// widget joins a tree.
func (t *WidgetTag) BroadcastMessage(message any) error {
	if t.shared == nil {
		return ErrTagUnattached
	}
	t.shared.messages = append(t.shared.messages, queuedMessage{message: message})
	return nil
}

// SendMessageTo queues a message for a single widget. Fails with
// ErrTagUnattached before the widget joins a tree.
func (t *WidgetTag) SendMessageTo(message any, target MessageTarget) error {
	if t.shared == nil {
		return ErrTagUnattached
	}
	t.shared.messages = append(t.shared.messages, queuedMessage{message: message, target: &target})
	return nil
}

// dispatchMessage runs the widget's registered handlers for the message's
// type. Handlers whose widget parameter doesn't match the live widget's type
// are skipped; a registered handler is expected to match the widget it was
// registered on.
func dispatchMessage(w Widget, message any) {
	tag := w.Tag()
	handlers := tag.handlers[reflect.TypeOf(message)]
	if len(handlers) == 0 {
		return
	}

	wv := reflect.ValueOf(w)
	mv := reflect.ValueOf(message)
	for _, h := range handlers {
		if !wv.Type().AssignableTo(h.widgetType) {
			continue
		}
		h.fn.Call([]reflect.Value{wv, mv})
	}
}
