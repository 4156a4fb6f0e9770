// Package registry holds the per-tenant ordered vocabulary of order statuses.
package registry

import (
	"slices"
	"sort"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

// Required lists the statuses every tenant registry must contain.
var Required = []string{model.StatusReadyForProduction, model.StatusDelivered}

// Guarded reports whether name is one of the Required statuses. Orders reach
// them only through payment confirmation or delivery.
func Guarded(name string) bool {
	return slices.Contains(Required, name)
}

// Snapshot is an immutable, sort_order ordered view of a tenant registry.
type Snapshot struct {
	statuses []model.OrderStatus
	index    map[string]int
}

// NewSnapshot orders statuses by sort order. Ties keep their input order.
func NewSnapshot(statuses []model.OrderStatus) Snapshot {
	ordered := make([]model.OrderStatus, len(statuses))
	copy(ordered, statuses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	index := make(map[string]int, len(ordered))
	for i, s := range ordered {
		if _, seen := index[s.Name]; !seen {
			index[s.Name] = i
		}
	}
	return Snapshot{statuses: ordered, index: index}
}

// Statuses returns a copy of the ordered entries.
func (s Snapshot) Statuses() []model.OrderStatus {
	out := make([]model.OrderStatus, len(s.statuses))
	copy(out, s.statuses)
	return out
}

// Names returns the status names in workflow order.
func (s Snapshot) Names() []string {
	names := make([]string, len(s.statuses))
	for i, st := range s.statuses {
		names[i] = st.Name
	}
	return names
}

// Len returns the number of statuses.
func (s Snapshot) Len() int {
	return len(s.statuses)
}

// Lookup finds a status by its exact name.
func (s Snapshot) Lookup(name string) (model.OrderStatus, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.OrderStatus{}, false
	}
	return s.statuses[i], true
}

// Contains reports whether name is a legal status.
func (s Snapshot) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Initial returns the status new orders start in.
func (s Snapshot) Initial() (model.OrderStatus, error) {
	if len(s.statuses) == 0 {
		return model.OrderStatus{}, domainErrors.ErrRequiredStatusMissing
	}
	return s.statuses[0], nil
}

// Validate returns ErrUnknownStatus when name is not in the registry.
func (s Snapshot) Validate(name string) error {
	if !s.Contains(name) {
		return domainErrors.ErrUnknownStatus
	}
	return nil
}

// Require fails with a MissingStatusError for the first absent name.
func (s Snapshot) Require(names ...string) error {
	for _, name := range names {
		if !s.Contains(name) {
			return &domainErrors.MissingStatusError{Name: name}
		}
	}
	return nil
}

// Missing lists the required statuses this registry lacks.
func (s Snapshot) Missing() []string {
	var missing []string
	for _, name := range Required {
		if !s.Contains(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
