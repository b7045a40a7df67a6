package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func namedProduct(id int64, name string, category Category) Product {
	return Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(100),
		Category: category,
	}
}

func TestFilter_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	snapshot := []Product{
		namedProduct(3, "Phone C", CategoryPhones),
		namedProduct(2, "Phone B", CategoryPhones),
		namedProduct(1, "Phone A", CategoryPhones),
	}

	got := Filter(snapshot, "")

	assert.Equal(t, snapshot, got)
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	snapshot := []Product{
		namedProduct(1, "Phone A", CategoryPhones),
		namedProduct(2, "Ultrabook 14", CategoryLaptops),
		namedProduct(3, "phone b", CategoryPhones),
	}

	got := Filter(snapshot, "PHONE")

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilter_NoMatch(t *testing.T) {
	snapshot := []Product{namedProduct(1, "Phone A", CategoryPhones)}

	got := Filter(snapshot, "laptop")

	assert.Empty(t, got)
}

func TestFilter_PreservesOrder(t *testing.T) {
	snapshot := []Product{
		namedProduct(5, "Phone E", CategoryPhones),
		namedProduct(4, "Tablet S", CategoryTablets),
		namedProduct(3, "Phone C", CategoryPhones),
		namedProduct(1, "Phone A", CategoryPhones),
	}

	got := Filter(snapshot, "phone")

	var ids []int64
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{5, 3, 1}, ids)
}

func TestFilterAdmin_MatchesNameOrCategory(t *testing.T) {
	snapshot := []Product{
		namedProduct(1, "Phone A", CategoryPhones),
		namedProduct(2, "Ultrabook 14", CategoryLaptops),
		namedProduct(3, "Wireless Earbuds", CategoryAccessories),
	}

	byName := FilterAdmin(snapshot, "ultra")
	assert.Len(t, byName, 1)
	assert.Equal(t, int64(2), byName[0].ID)

	byCategory := FilterAdmin(snapshot, "access")
	assert.Len(t, byCategory, 1)
	assert.Equal(t, int64(3), byCategory[0].ID)
}

func TestFilterAdmin_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	snapshot := []Product{
		namedProduct(2, "Phone B", CategoryPhones),
		namedProduct(1, "Phone A", CategoryPhones),
	}

	assert.Equal(t, snapshot, FilterAdmin(snapshot, ""))
}
