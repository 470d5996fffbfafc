package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/satish051/RealEstateApp/internal/property"
)

// ErrNotFound is returned by Recommend when the reference property is
// not in the supplied catalog snapshot.
var ErrNotFound = errors.New("property not found")

const (
	// DefaultMaxResults caps the recommendation list.
	DefaultMaxResults = 3
	// DefaultPriceBand is the symmetric price interval treated as
	// "similar": ±30% of the reference price.
	DefaultPriceBand = 0.3
)

// SelectionPolicy picks and orders up to max properties from the
// qualifying candidate set. Implementations must be deterministic
// given their own configuration; callers wanting per-request variety
// reseed a ShuffleSelection per request.
type SelectionPolicy interface {
	Select(candidates []*property.Property, ref *property.Property, max int) []*property.Property
}

// RecommendOptions configures Recommend. Zero values fall back to
// DefaultMaxResults, DefaultPriceBand, and PriceDistanceSelection.
type RecommendOptions struct {
	MaxResults int
	PriceBand  float64
	Policy     SelectionPolicy
}

// Recommend selects up to MaxResults properties similar to the
// reference: same listing type, price within the closed band
// [ref*(1-band), ref*(1+band)], never the reference itself. An empty
// candidate set is a valid result; the only failure is ErrNotFound
// when refID is absent from the catalog.
func Recommend(catalog []*property.Property, refID int64, opts RecommendOptions) ([]*property.Property, error) {
	var ref *property.Property
	for _, p := range catalog {
		if p.ID == refID {
			ref = p
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("recommending for property %d: %w", refID, ErrNotFound)
	}

	max := opts.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}
	band := opts.PriceBand
	if band <= 0 {
		band = DefaultPriceBand
	}
	policy := opts.Policy
	if policy == nil {
		policy = PriceDistanceSelection{}
	}

	low := float64(ref.Price) * (1 - band)
	high := float64(ref.Price) * (1 + band)

	var candidates []*property.Property
	for _, p := range catalog {
		if p.ID == ref.ID {
			continue
		}
		if p.ListingType != ref.ListingType {
			continue
		}
		if price := float64(p.Price); price < low || price > high {
			continue
		}
		candidates = append(candidates, p)
	}

	return policy.Select(candidates, ref, max), nil
}

// ShuffleSelection returns a policy that shuffles candidates with a
// seeded source before capping. The same seed over an unchanged
// candidate set yields the same result and order.
func ShuffleSelection(seed int64) SelectionPolicy {
	return shuffleSelection{seed: seed}
}

type shuffleSelection struct {
	seed int64
}

func (s shuffleSelection) Select(candidates []*property.Property, _ *property.Property, max int) []*property.Property {
	picked := make([]*property.Property, len(candidates))
	copy(picked, candidates)

	rng := rand.New(rand.NewSource(s.seed))
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	if len(picked) > max {
		picked = picked[:max]
	}
	return picked
}

// PriceDistanceSelection orders candidates by absolute price distance
// from the reference, breaking ties by id, then caps.
type PriceDistanceSelection struct{}

// Select implements SelectionPolicy.
func (PriceDistanceSelection) Select(candidates []*property.Property, ref *property.Property, max int) []*property.Property {
	picked := make([]*property.Property, len(candidates))
	copy(picked, candidates)

	sort.SliceStable(picked, func(i, j int) bool {
		di := priceDistance(picked[i].Price, ref.Price)
		dj := priceDistance(picked[j].Price, ref.Price)
		if di != dj {
			return di < dj
		}
		return picked[i].ID < picked[j].ID
	})

	if len(picked) > max {
		picked = picked[:max]
	}
	return picked
}

func priceDistance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
