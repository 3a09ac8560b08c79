package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// Dataset is the seed file layout.
type Dataset struct {
	Farmers         []agri.FarmerProfile  `yaml:"farmers"`
	Farms           []agri.Farm           `yaml:"farms"`
	Activities      []agri.Activity       `yaml:"activities"`
	Recommendations []agri.Recommendation `yaml:"recommendations"`
	Schemes         []agri.Scheme         `yaml:"schemes"`
	Officers        []agri.Officer        `yaml:"officers"`
}

// Store is an in-memory advisory store used for tests and local runs.
type Store struct {
	mu sync.RWMutex

	farmers         map[string]agri.FarmerProfile
	farms           map[string][]agri.Farm
	activities      map[string][]agri.Activity
	recommendations map[string][]agri.Recommendation
	schemes         []agri.Scheme
	officers        []agri.Officer
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		farmers:         make(map[string]agri.FarmerProfile),
		farms:           make(map[string][]agri.Farm),
		activities:      make(map[string][]agri.Activity),
		recommendations: make(map[string][]agri.Recommendation),
	}
}

// LoadSeed reads a YAML dataset into the store.
func (s *Store) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	s.Seed(ds)
	return nil
}

// Seed adds every record of the dataset. Records without an ID get one.
func (s *Store) Seed(ds Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range ds.Farmers {
		f.ID = ensureID(f.ID)
		s.farmers[f.ID] = f
	}
	for _, f := range ds.Farms {
		f.ID = ensureID(f.ID)
		s.farms[f.FarmerID] = append(s.farms[f.FarmerID], f)
	}
	for _, a := range ds.Activities {
		a.ID = ensureID(a.ID)
		s.activities[a.FarmerID] = append(s.activities[a.FarmerID], a)
	}
	for _, r := range ds.Recommendations {
		r.ID = ensureID(r.ID)
		s.recommendations[r.FarmerID] = append(s.recommendations[r.FarmerID], r)
	}
	for _, sc := range ds.Schemes {
		sc.ID = ensureID(sc.ID)
		s.schemes = append(s.schemes, sc)
	}
	for _, o := range ds.Officers {
		o.ID = ensureID(o.ID)
		s.officers = append(s.officers, o)
	}
}

// FarmerByID implements advisory.Store.
func (s *Store) FarmerByID(_ context.Context, farmerID string) (agri.FarmerProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.farmers[farmerID]
	return f, ok, nil
}

// FarmsByFarmer implements advisory.Store.
func (s *Store) FarmsByFarmer(_ context.Context, farmerID string) ([]agri.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]agri.Farm(nil), s.farms[farmerID]...), nil
}

// RecentActivities implements advisory.Store.
func (s *Store) RecentActivities(_ context.Context, farmerID string, limit int) ([]agri.Activity, error) {
	s.mu.RLock()
	out := append([]agri.Activity(nil), s.activities[farmerID]...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return limitTo(out, limit), nil
}

// RecentRecommendations implements advisory.Store.
func (s *Store) RecentRecommendations(_ context.Context, farmerID string, limit int) ([]agri.Recommendation, error) {
	s.mu.RLock()
	out := append([]agri.Recommendation(nil), s.recommendations[farmerID]...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitTo(out, limit), nil
}

// SchemesForState implements advisory.Store.
func (s *Store) SchemesForState(_ context.Context, state string, limit int) ([]agri.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var local, national []agri.Scheme
	for _, sc := range s.schemes {
		switch {
		case strings.EqualFold(sc.State, state):
			local = append(local, sc)
		case sc.State == agri.NationalSchemeState && sc.Category == agri.NationalSchemeCategory:
			national = append(national, sc)
		}
	}
	return limitTo(append(local, national...), limit), nil
}

// OfficersInState implements advisory.Store.
func (s *Store) OfficersInState(_ context.Context, state string, limit int) ([]agri.Officer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []agri.Officer
	for _, o := range s.officers {
		if strings.EqualFold(o.State, state) {
			out = append(out, o)
		}
	}
	return limitTo(out, limit), nil
}

func ensureID(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return uuid.NewString()
}

func limitTo[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

var _ advisory.Store = (*Store)(nil)
