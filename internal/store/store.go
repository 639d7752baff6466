package store

// Store holds every window record and the active window id.
//
// Store does no locking. The window manager owns the only instance and
// serializes access to it.
type Store struct {
	windows []Window
	index   map[string]int
	active  string
	maxZ    int
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Insert adds w. It returns false if a window with the same id exists.
func (s *Store) Insert(w Window) bool {
	if _, ok := s.index[w.ID]; ok {
		return false
	}
	s.index[w.ID] = len(s.windows)
	s.windows = append(s.windows, w.clone())
	s.noteZ(w.ZIndex)
	return true
}

// Upsert applies patch to the window with the given id. It is a no-op
// returning false when the id is absent.
func (s *Store) Upsert(id string, patch func(*Window)) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	patch(&s.windows[i])
	s.windows[i].ID = id
	s.noteZ(s.windows[i].ZIndex)
	return true
}

func (s *Store) noteZ(z int) {
	if z > s.maxZ {
		s.maxZ = z
	}
}

// MaxZ returns the highest z value any window has held, including
// windows that have since been removed. It never decreases.
func (s *Store) MaxZ() int { return s.maxZ }

// Remove deletes the window with the given id, clearing the active id
// if it pointed at it.
func (s *Store) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.windows = append(s.windows[:i], s.windows[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.windows); j++ {
		s.index[s.windows[j].ID] = j
	}
	if s.active == id {
		s.active = ""
	}
	return true
}

// Get returns a copy of the window with the given id.
func (s *Store) Get(id string) (Window, bool) {
	i, ok := s.index[id]
	if !ok {
		return Window{}, false
	}
	return s.windows[i].clone(), true
}

// Has reports whether id is present.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// All returns copies of every window in insertion order.
func (s *Store) All() []Window {
	out := make([]Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = w.clone()
	}
	return out
}

// Len returns the number of windows.
func (s *Store) Len() int { return len(s.windows) }

// Active returns the active window id, or "" for desktop focus.
func (s *Store) Active() string { return s.active }

// SetActive sets the active window id. Unknown ids clear focus.
func (s *Store) SetActive(id string) {
	if _, ok := s.index[id]; !ok {
		id = ""
	}
	s.active = id
}

// Each calls fn for every window in insertion order without copying.
// fn must not mutate the store.
func (s *Store) Each(fn func(w *Window)) {
	for i := range s.windows {
		fn(&s.windows[i])
	}
}
