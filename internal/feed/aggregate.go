package feed

import (
	"math"
)

// Snapshot is the pair of counters handed back after every reassembly step
type Snapshot struct {
	TotalRowCount   int
	RemovedRowCount int
}

// Aggregate holds the running statistics of a single feed run.
// It is owned by whoever drives the parser and is not safe for concurrent use
type Aggregate struct {
	// Every non-empty line seen, including malformed and removed ones
	TotalRowCount int

	// Lines dropped by a filter
	RemovedRowCount int

	// Lines that couldn't be decoded. These are counted in TotalRowCount only
	MalformedRowCount int

	AcceptedRowCount int

	// +Inf and -Inf until the first price is observed. Use PriceRange to tell
	MinPrice float64
	MaxPrice float64
}

func NewAggregate() *Aggregate {
	return &Aggregate{
		MinPrice: math.Inf(1),
		MaxPrice: math.Inf(-1),
	}
}

func (a *Aggregate) ObservePrice(price float64) {
	if price < a.MinPrice {
		a.MinPrice = price
	}

	if price > a.MaxPrice {
		a.MaxPrice = price
	}
}

// PriceRange returns the min and max observed prices. ok is false if no price
// has been observed yet, in which case min and max are meaningless
func (a *Aggregate) PriceRange() (min, max float64, ok bool) {
	if math.IsInf(a.MinPrice, 1) || math.IsInf(a.MaxPrice, -1) {
		return 0, 0, false
	}

	return a.MinPrice, a.MaxPrice, true
}

func (a *Aggregate) Snapshot() Snapshot {
	return Snapshot{
		TotalRowCount:   a.TotalRowCount,
		RemovedRowCount: a.RemovedRowCount,
	}
}
