package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"recipebook-tracker/internal/bmi"
)

const dateLayout = "2006-01-02"

// RecentLimit is how many weight records the weight-data endpoint returns.
const RecentLimit = 10

var (
	ErrDuplicateIngredient = errors.New("ingredient already exists")
	ErrIngredientNotFound  = errors.New("ingredient not found")
)

// Store keeps one user's weight history and ingredient book in memory.
type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	profile     UserProfile
	records     []WeightRecord
	ingredients map[string]string // lower-cased key -> name as entered
}

// NewStore returns an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now, ingredients: make(map[string]string)}
}

// RecordBMI stores today's measurement, replacing any record for the same day.
func (s *Store) RecordBMI(m bmi.Measurement) WeightRecord {
	r := bmi.Compute(m)
	rec := WeightRecord{
		WeightKg: m.WeightKg,
		BMI:      bmi.Round2(r.BMI),
	}
	rec.Category = bmi.Classify(rec.BMI)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Date = s.now().Format(dateLayout)
	s.profile = UserProfile{HeightCm: m.HeightCm, WeightKg: m.WeightKg}
	s.putLocked(rec)
	return rec
}

// AddRecord stores a record as-is, replacing any record with the same date.
func (s *Store) AddRecord(rec WeightRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(rec)
}

func (s *Store) putLocked(rec WeightRecord) {
	for i, existing := range s.records {
		if existing.Date == rec.Date {
			s.records[i] = rec
			return
		}
	}
	s.records = append(s.records, rec)
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) []WeightRecord {
	s.mu.Lock()
	out := make([]WeightRecord, len(s.records))
	copy(out, s.records)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Profile returns the last submitted height and weight.
func (s *Store) Profile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// AddIngredient stores name. Names are unique ignoring case.
func (s *Store) AddIngredient(name string) error {
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ingredients[key]; ok {
		return ErrDuplicateIngredient
	}
	s.ingredients[key] = name
	return nil
}

// DeleteIngredient removes name, matching case-insensitively.
func (s *Store) DeleteIngredient(name string) error {
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ingredients[key]; !ok {
		return ErrIngredientNotFound
	}
	delete(s.ingredients, key)
	return nil
}

// Ingredients lists names ordered by name.
func (s *Store) Ingredients() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.ingredients))
	for _, name := range s.ingredients {
		out = append(out, name)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// Seed stores one record per day starting at start, all at heightCm.
func (s *Store) Seed(start time.Time, heightCm float64, weights []float64) {
	for i, w := range weights {
		r := bmi.Compute(bmi.Measurement{HeightCm: heightCm, WeightKg: w})
		v := bmi.Round2(r.BMI)
		s.AddRecord(WeightRecord{
			Date:     start.AddDate(0, 0, i).Format(dateLayout),
			WeightKg: w,
			BMI:      v,
			Category: bmi.Classify(v),
		})
	}
}
