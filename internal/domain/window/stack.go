package window

import (
	"fmt"
	"slices"
)

// ApplicationID names a virtual application ("Projects", "Terminal", ...).
type ApplicationID string

// Window is an open application: identity, frame and host content.
type Window struct {
	ID       ApplicationID `json:"id"`
	Geometry Geometry      `json:"geometry"`
	Content  any           `json:"content,omitempty"`
}

// Stack is the ordered set of open applications. The last element is the
// topmost window and, when anything is focused, the focused one.
type Stack struct {
	order   []ApplicationID
	windows map[ApplicationID]*Window
	focused ApplicationID
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{windows: make(map[ApplicationID]*Window)}
}

// Len returns the number of open windows.
func (s *Stack) Len() int {
	return len(s.order)
}

// Contains reports whether id is open.
func (s *Stack) Contains(id ApplicationID) bool {
	_, ok := s.windows[id]
	return ok
}

// Window returns the open window for id.
func (s *Stack) Window(id ApplicationID) (*Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// Order returns a copy of the stacking order, bottom first.
func (s *Stack) Order() []ApplicationID {
	return slices.Clone(s.order)
}

// Focused returns the focused application, or "" when nothing is focused.
func (s *Stack) Focused() ApplicationID {
	return s.focused
}

// Raise moves an open id to the top and focuses it. Unknown ids are ignored.
func (s *Stack) Raise(id ApplicationID) bool {
	if !s.Contains(id) {
		return false
	}
	if i := slices.Index(s.order, id); i != len(s.order)-1 {
		s.order = append(slices.Delete(s.order, i, i+1), id)
	}
	s.focused = id
	return true
}

// Push adds a new window on top and focuses it. If the id is already open
// the existing window is raised instead and w is dropped.
func (s *Stack) Push(w *Window) bool {
	if s.Contains(w.ID) {
		s.Raise(w.ID)
		return false
	}
	s.order = append(s.order, w.ID)
	s.windows[w.ID] = w
	s.focused = w.ID
	return true
}

// Remove drops id from the stack. Focus is cleared if id held it; it does
// not pass to the window underneath.
func (s *Stack) Remove(id ApplicationID) bool {
	if !s.Contains(id) {
		return false
	}
	s.order = slices.DeleteFunc(s.order, func(o ApplicationID) bool { return o == id })
	delete(s.windows, id)
	if s.focused == id {
		s.focused = ""
	}
	return true
}

// Check verifies the stack invariants: unique ids, one window per id, and
// focus either empty or on the topmost window.
func (s *Stack) Check() error {
	seen := make(map[ApplicationID]struct{}, len(s.order))
	for i, id := range s.order {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("stack: duplicate %q at index %d", id, i)
		}
		seen[id] = struct{}{}
		w, ok := s.windows[id]
		if !ok {
			return fmt.Errorf("stack: %q has no window", id)
		}
		if w.ID != id {
			return fmt.Errorf("stack: window for %q is labelled %q", id, w.ID)
		}
	}
	if len(s.windows) != len(s.order) {
		return fmt.Errorf("stack: %d windows for %d ids", len(s.windows), len(s.order))
	}
	if s.focused != "" && (len(s.order) == 0 || s.order[len(s.order)-1] != s.focused) {
		return fmt.Errorf("stack: focused %q is not on top", s.focused)
	}
	return nil
}
