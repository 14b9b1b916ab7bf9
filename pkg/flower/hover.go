package flower

import (
	"slices"
	"sync"
)

// HoverState is a snapshot of the two hover tracks.
type HoverState struct {
	Label    string   `json:"label,omitempty"`
	HasLabel bool     `json:"has_label"`
	Types    []string `json:"types"`
}

// Idle reports whether nothing is hovered.
func (s HoverState) Idle() bool {
	return !s.HasLabel && len(s.Types) == 0
}

// Matches reports whether an element with the given label and types is
// focused: its label is the hovered label, or its types intersect the hovered
// types.
func (s HoverState) Matches(label string, types []string) bool {
	if s.HasLabel && label == s.Label {
		return true
	}
	for _, t := range types {
		if slices.Contains(s.Types, t) {
			return true
		}
	}
	return false
}

// Opacity returns 1 for focused elements, and for every element while idle.
// Other elements render at dim.
func (s HoverState) Opacity(label string, types []string, dim float64) float64 {
	if s.Idle() || s.Matches(label, types) {
		return 1
	}
	return dim
}

// TypeOpacity is the opacity of a legend entry or root for type t. Only the
// type track focuses types.
func (s HoverState) TypeOpacity(t string, dim float64) float64 {
	if s.Idle() || slices.Contains(s.Types, t) {
		return 1
	}
	return dim
}

// Coordinator holds the hover state shared by every renderer of one graph.
//
// Writers call the Enter/Leave methods; a later Enter preempts an earlier one
// without an intervening Leave. Subscribers are notified synchronously, in
// subscription order, after each change and outside the lock. Writes that do
// not change a track do not notify.
type Coordinator struct {
	mu      sync.Mutex
	state   HoverState
	nextID  int
	subs    []subscriber
	onLabel func(label string, ok bool)
	onTypes func(types []string)
}

type subscriber struct {
	id int
	fn func(HoverState)
}

// NewCoordinator returns an idle coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{state: HoverState{Types: []string{}}}
}

// OnLabel sets the callback invoked when the label track changes. ok is false
// when the label was cleared. A nil fn removes the callback.
func (c *Coordinator) OnLabel(fn func(label string, ok bool)) {
	c.mu.Lock()
	c.onLabel = fn
	c.mu.Unlock()
}

// OnTypes sets the callback invoked with the new type set when the type track
// changes. A nil fn removes the callback.
func (c *Coordinator) OnTypes(fn func(types []string)) {
	c.mu.Lock()
	c.onTypes = fn
	c.mu.Unlock()
}

// Subscribe registers fn for every state change and returns a function that
// cancels the subscription.
func (c *Coordinator) Subscribe(fn func(HoverState)) (cancel func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber) bool { return s.id == id })
	}
}

// State returns a copy of the current state.
func (c *Coordinator) State() HoverState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// EnterLabel makes label the hovered label.
func (c *Coordinator) EnterLabel(label string) {
	c.update(func(s *HoverState) { s.Label, s.HasLabel = label, true })
}

// LeaveLabel clears the hovered label.
func (c *Coordinator) LeaveLabel() {
	c.update(func(s *HoverState) { s.Label, s.HasLabel = "", false })
}

// EnterTypes replaces the hovered type set.
func (c *Coordinator) EnterTypes(types []string) {
	cp := append([]string{}, types...)
	c.update(func(s *HoverState) { s.Types = cp })
}

// LeaveTypes resets the hovered type set to empty.
func (c *Coordinator) LeaveTypes() {
	c.update(func(s *HoverState) { s.Types = []string{} })
}

// Enter hovers a petal: its label and its types at once.
func (c *Coordinator) Enter(label string, types []string) {
	cp := append([]string{}, types...)
	c.update(func(s *HoverState) {
		s.Label, s.HasLabel = label, true
		s.Types = cp
	})
}

// Leave resets both tracks.
func (c *Coordinator) Leave() {
	c.update(func(s *HoverState) {
		s.Label, s.HasLabel = "", false
		s.Types = []string{}
	})
}

// Apply sets both tracks to s, as when restoring a preset.
func (c *Coordinator) Apply(s HoverState) {
	cp := append([]string{}, s.Types...)
	c.update(func(cur *HoverState) {
		cur.Label, cur.HasLabel = s.Label, s.HasLabel
		if !s.HasLabel {
			cur.Label = ""
		}
		cur.Types = cp
	})
}

func (c *Coordinator) update(mutate func(*HoverState)) {
	c.mu.Lock()
	prev := c.snapshot()
	mutate(&c.state)
	next := c.snapshot()
	labelChanged := prev.HasLabel != next.HasLabel || prev.Label != next.Label
	typesChanged := !slices.Equal(prev.Types, next.Types)
	onLabel, onTypes := c.onLabel, c.onTypes
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	if labelChanged && onLabel != nil {
		onLabel(next.Label, next.HasLabel)
	}
	if typesChanged && onTypes != nil {
		onTypes(slices.Clone(next.Types))
	}
	if labelChanged || typesChanged {
		for _, s := range subs {
			s.fn(next)
		}
	}
}

func (c *Coordinator) snapshot() HoverState {
	s := c.state
	s.Types = slices.Clone(s.Types)
	if s.Types == nil {
		s.Types = []string{}
	}
	return s
}
