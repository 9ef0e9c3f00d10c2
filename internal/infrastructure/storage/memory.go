package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mealsnap/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory meal log, keyed by user.
// Entries are copied on the way in and out, so callers can mutate what they
// hold without corrupting the store.
type MemoryStore struct {
	mealsByUser map[string][]domain.MealEntry
	mutex       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory meal store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mealsByUser: make(map[string][]domain.MealEntry),
	}
}

// SaveMeal implements domain.MealRepository
func (s *MemoryStore) SaveMeal(ctx context.Context, entry *domain.MealEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil meal entry", domain.ErrStorageFailure)
	}
	if entry.UserID == "" {
		return fmt.Errorf("%w: meal entry has no user", domain.ErrStorageFailure)
	}

	stored := *entry
	stored.Foods = append([]domain.RecognizedFoodItem(nil), entry.Foods...)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.mealsByUser[entry.UserID] = append(s.mealsByUser[entry.UserID], stored)
	return nil
}

// MealsByDate implements domain.MealRepository. Meals come back newest first.
func (s *MemoryStore) MealsByDate(ctx context.Context, userID string, day time.Time) ([]domain.MealEntry, error) {
	start, end := dayWindow(day)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	meals := make([]domain.MealEntry, 0)
	for _, entry := range s.mealsByUser[userID] {
		if entry.AteAt.Before(start) || !entry.AteAt.Before(end) {
			continue
		}
		copied := entry
		copied.Foods = append([]domain.RecognizedFoodItem(nil), entry.Foods...)
		meals = append(meals, copied)
	}

	sort.Slice(meals, func(i, j int) bool {
		return meals[i].AteAt.After(meals[j].AteAt)
	})

	return meals, nil
}

// DailySummary implements domain.MealRepository
func (s *MemoryStore) DailySummary(ctx context.Context, userID string, day time.Time) (*domain.DailySummary, error) {
	start, end := dayWindow(day)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := &domain.DailySummary{
		Date: start.Format("2006-01-02"),
	}
	for _, entry := range s.mealsByUser[userID] {
		if entry.AteAt.Before(start) || !entry.AteAt.Before(end) {
			continue
		}
		summary.MealCount++
		summary.Totals = summary.Totals.Add(entry.Totals)
	}

	return summary, nil
}

// Size returns the total number of stored meals (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, meals := range s.mealsByUser {
		total += len(meals)
	}
	return total
}

// Clear removes every stored meal
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mealsByUser = make(map[string][]domain.MealEntry)
}

// dayWindow returns the [start, end) bounds of the calendar day containing t,
// in t's location
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
