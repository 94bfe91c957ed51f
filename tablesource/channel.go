package tablesource

import (
	"slices"

	"github.com/FriedlDeGroote/opensim-core/timeseries"
)

// Channel is a named output endpoint bound to one column of the owning
// source's table. A channel stays valid until the table is replaced; a handle
// kept across a replacement resolves against the new column set and fails
// with UnknownColumnError if its column is gone.
type Channel[E timeseries.Element[E]] struct {
	label  string
	source *TableSource[E]
}

func (c *Channel[E]) Label() string {
	return c.label
}

// At evaluates the bound column at the given time.
func (c *Channel[E]) At(time float64) (E, error) {
	return c.source.ColumnAtTime(c.label, time)
}

// ChannelRegistry maps column labels to channels, in table column order. The
// owning source rebuilds it whenever its table is replaced, so the label set
// always mirrors the held table's column set.
type ChannelRegistry[E timeseries.Element[E]] struct {
	source  *TableSource[E]
	order   []string
	byLabel map[string]*Channel[E]
}

func newChannelRegistry[E timeseries.Element[E]](source *TableSource[E]) *ChannelRegistry[E] {
	return &ChannelRegistry[E]{
		source:  source,
		byLabel: make(map[string]*Channel[E]),
	}
}

// Clear removes all channels.
func (r *ChannelRegistry[E]) Clear() {
	r.order = r.order[:0]
	clear(r.byLabel)
}

// AddChannel registers a channel for label.
func (r *ChannelRegistry[E]) AddChannel(label string) error {
	if _, exists := r.byLabel[label]; exists {
		return timeseries.DuplicateChannelError{Label: label}
	}
	r.byLabel[label] = &Channel[E]{label: label, source: r.source}
	r.order = append(r.order, label)
	return nil
}

// Resolve returns the channel registered for label.
func (r *ChannelRegistry[E]) Resolve(label string) (*Channel[E], error) {
	ch, ok := r.byLabel[label]
	if !ok {
		return nil, timeseries.UnknownColumnError{Label: label}
	}
	return ch, nil
}

// Labels enumerates the registered labels in table column order.
func (r *ChannelRegistry[E]) Labels() []string {
	return slices.Clone(r.order)
}

func (r *ChannelRegistry[E]) Len() int {
	return len(r.order)
}
