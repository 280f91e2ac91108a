package filter_controller

import (
	"testing"

	"github.com/3lokai/icb-directory-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	cases := map[string]string{
		"SELECT c.id FROM catalog_coffees c WHERE TRUE": "SELECT c.id FROM catalog_coffees c WHERE TRUE",
		"c.name ILIKE ?":                        "c.name ILIKE $1",
		"c.roast_level IN (?,?) AND c.id IN (?)": "c.roast_level IN ($1,$2) AND c.id IN ($3)",
		"c.flavor_keys @> ?::jsonb":             "c.flavor_keys @> $1::jsonb",
	}

	for in, want := range cases {
		assert.Equal(t, want, rebind(in))
	}
}

func TestSortBucketsCountDescLabelAsc(t *testing.T) {
	buckets := []models.FacetBucket{
		{Value: "washed", Label: "Washed", Count: 3},
		{Value: "natural", Label: "Natural", Count: 8},
		{Value: "honey", Label: "Honey", Count: 3},
		{Value: "anaerobic", Label: "Anaerobic", Count: 3},
		{Value: "monsooned", Label: "Monsooned", Count: 12},
	}

	sortBuckets(buckets)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	// count descending, then label ascending within the 3-count tie
	assert.Equal(t, []string{"Monsooned", "Natural", "Anaerobic", "Honey", "Washed"}, labels)
}

func TestSortBucketsEmpty(t *testing.T) {
	buckets := []models.FacetBucket{}
	sortBuckets(buckets)
	assert.Empty(t, buckets)
}
