package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"catalog/internal/models"
)

// MockStore is the shared in-memory state behind the mock repositories.
// One lock guards all three collections so cascades stay atomic.
type MockStore struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	groups     map[string]models.GroupCategory
	products   map[string]models.Product
	now        func() time.Time
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{
		categories: make(map[string]models.Category),
		groups:     make(map[string]models.GroupCategory),
		products:   make(map[string]models.Product),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *MockStore) categoryNameTaken(key, exceptID string) bool {
	for id, c := range s.categories {
		if id != exceptID && c.NameKey == key {
			return true
		}
	}
	return false
}

func (s *MockStore) groupNameTaken(key, exceptID string) bool {
	for id, g := range s.groups {
		if id != exceptID && g.NameKey == key {
			return true
		}
	}
	return false
}

func (s *MockStore) productNameTaken(key, exceptID string) bool {
	for id, p := range s.products {
		if id != exceptID && p.NameKey == key {
			return true
		}
	}
	return false
}

func (s *MockStore) categoriesExist(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.categories[id]; !ok {
			return false
		}
	}
	return true
}

func copyGroup(g models.GroupCategory) models.GroupCategory {
	g.Categories = append([]string{}, g.Categories...)
	return g
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}

// paginate sorts items the way the GORM repositories do and cuts one page.
// key returns the value ordering an item by the given API field.
func paginate[T any](items []T, q models.ListQuery, key func(T, string) any, id func(T) string) ([]T, int64) {
	sort.SliceStable(items, func(i, j int) bool {
		c := compareValues(key(items[i], q.SortBy), key(items[j], q.SortBy))
		if c == 0 {
			c = strings.Compare(id(items[i]), id(items[j]))
		}
		if q.SortOrder == "asc" {
			return c < 0
		}
		return c > 0
	})
	total := int64(len(items))
	start := q.Offset()
	if start < 0 || start >= len(items) {
		return []T{}, total
	}
	end := len(items)
	if q.Limit < end-start {
		end = start + q.Limit
	}
	return append([]T{}, items[start:end]...), total
}
