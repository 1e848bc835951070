package event

import (
	"slices"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) OnEvent(e Event) {
	*r.log = append(*r.log, r.name+":"+string(e.Type))
}

func TestDispatchInSubscriptionOrder(t *testing.T) {
	var log []string
	d := NewDispatcher()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	d.Subscribe(WaveStarted, a)
	d.Subscribe(WaveStarted, b)
	d.Subscribe(WaveCompleted, a)

	d.Dispatch(Event{Type: WaveStarted})
	d.Dispatch(Event{Type: WaveCompleted})
	d.Dispatch(Event{Type: Victory})

	want := []string{"a:WaveStarted", "b:WaveStarted", "a:WaveCompleted"}
	if !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestUnsubscribeAndReset(t *testing.T) {
	var log []string
	d := NewDispatcher()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)

	d.Unsubscribe(EnemyKilled, a)
	d.Dispatch(Event{Type: EnemyKilled})
	if !slices.Equal(log, []string{"b:EnemyKilled"}) {
		t.Errorf("after unsubscribe log = %v", log)
	}

	d.Reset()
	d.Dispatch(Event{Type: EnemyKilled})
	if len(log) != 1 {
		t.Errorf("listener called after Reset: %v", log)
	}
}

func TestListenerMaySubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	late := ListenerFunc(func(Event) { calls++ })
	d.Subscribe(GridChanged, ListenerFunc(func(Event) {
		d.Subscribe(GridChanged, late)
	}))

	d.Dispatch(Event{Type: GridChanged})
	if calls != 0 {
		t.Errorf("listener added mid-dispatch ran in the same dispatch")
	}
	d.Dispatch(Event{Type: GridChanged})
	if calls != 1 {
		t.Errorf("late listener calls = %d, want 1", calls)
	}
}
