package figure

import (
	"sort"
	"sync"
)

// Registry tracks open figures. It is safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	next int
	open map[int]*Figure
}

// Default is the process-wide registry used by New.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{open: make(map[int]*Figure)}
}

// New allocates and registers a figure.
func (r *Registry) New(options Options) (*Figure, error) {
	fig, err := newFigure(options)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	fig.id = r.next
	fig.registry = r
	r.open[fig.id] = fig
	return fig, nil
}

// Get returns an open figure by id.
func (r *Registry) Get(id int) (*Figure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fig, ok := r.open[id]
	return fig, ok
}

// Open returns the sorted ids of figures that were not closed.
func (r *Registry) Open() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.open))
	for id := range r.open {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of open figures.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// CloseAll closes every open figure.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	figures := make([]*Figure, 0, len(r.open))
	for _, fig := range r.open {
		figures = append(figures, fig)
	}
	r.mu.Unlock()

	for _, fig := range figures {
		_ = fig.Close()
	}
}

func (r *Registry) release(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, id)
}
