package statesync

import "github.com/3lokai/icb-directory-backend/models"

// Price-range dragging keeps a purely local value during manipulation so the
// sync loop isn't flooded; the store only sees the range on release.

// BeginPriceDrag enters drag mode, starting from the store's current range.
func (s *Synchronizer) BeginPriceDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
	s.dragMin = s.spec.MinPrice
	s.dragMax = s.spec.MaxPrice
}

// UpdatePriceDrag records an interactive position. No store update, no URL
// write, no fetch.
func (s *Synchronizer) UpdatePriceDrag(min, max *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return
	}
	s.dragMin = min
	s.dragMax = max
}

// PriceRange returns the value the slider should render: the drag value
// while dragging, the store value otherwise (reconciling after commit).
func (s *Synchronizer) PriceRange() (min, max *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragging {
		return s.dragMin, s.dragMax
	}
	return s.spec.MinPrice, s.spec.MaxPrice
}

// EndPriceDrag leaves drag mode and commits the released range to the store.
func (s *Synchronizer) EndPriceDrag(min, max *int) {
	s.mu.Lock()
	s.dragging = false
	s.dragMin = nil
	s.dragMax = nil
	s.mu.Unlock()

	s.Apply(func(f *models.FilterSpec) {
		f.MinPrice = min
		f.MaxPrice = max
		f.Page = 1
	})
}
