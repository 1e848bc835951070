// internal/event/event.go
package event

// EventType names a kind of event; the full list lives in types.go.
type EventType string

// Event carries one of the payload structs from types.go in Data.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher delivers events synchronously, in subscription order. One
// dispatcher belongs to one match.
type Dispatcher struct {
	byType map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.Reset()
	return d
}

// Subscribe appends l to the listeners of t.
func (d *Dispatcher) Subscribe(t EventType, l Listener) {
	d.byType[t] = append(d.byType[t], l)
}

// Unsubscribe removes the first registration of l for t. Listeners must be comparable.
func (d *Dispatcher) Unsubscribe(t EventType, l Listener) {
	subs := d.byType[t]
	for i := range subs {
		if subs[i] != l {
			continue
		}
		d.byType[t] = append(subs[:i:i], subs[i+1:]...)
		return
	}
}

// Reset drops every subscription.
func (d *Dispatcher) Reset() {
	d.byType = make(map[EventType][]Listener)
}

func (d *Dispatcher) Dispatch(e Event) {
	// снимок: обработчик может подписываться/отписываться во время рассылки
	subs := append([]Listener(nil), d.byType[e.Type]...)
	for _, l := range subs {
		l.OnEvent(e)
	}
}
