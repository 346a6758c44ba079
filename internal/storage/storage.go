package storage

import (
	"sync"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
)

// ResultStore holds extraction results for the current server process, in
// processing order. Nothing persists across restarts.
type ResultStore struct {
	results []models.ExtractionResult
	byID    map[string]int
	mu      sync.RWMutex
}

func New() *ResultStore {
	return &ResultStore{
		byID: make(map[string]int),
	}
}

// Add appends a result, replacing any earlier result for the same image id.
func (s *ResultStore) Add(result models.ExtractionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, exists := s.byID[result.ImageID]; exists {
		s.results[idx] = result
		return
	}
	s.byID[result.ImageID] = len(s.results)
	s.results = append(s.results, result)
}

// Get returns the result for an image id.
func (s *ResultStore) Get(imageID string) (models.ExtractionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, exists := s.byID[imageID]
	if !exists {
		return models.ExtractionResult{}, false
	}
	return s.results[idx], true
}

// List returns all results in processing order.
func (s *ResultStore) List() []models.ExtractionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ExtractionResult, len(s.results))
	copy(out, s.results)
	return out
}

// Clear drops all results.
func (s *ResultStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.byID = make(map[string]int)
}
