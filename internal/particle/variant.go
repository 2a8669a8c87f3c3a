package particle

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Variant selects one of the four population behaviours.
type Variant int

const (
	StaticGrid Variant = iota
	Stream
	RepellingCloud
	TrailingCursor
)

func (v Variant) String() string {
	switch v {
	case StaticGrid:
		return "static-grid"
	case Stream:
		return "stream"
	case RepellingCloud:
		return "repelling-cloud"
	case TrailingCursor:
		return "trailing-cursor"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// SpawnRule says where a variant's new particles come from.
type SpawnRule int

const (
	SpawnNone          SpawnRule = iota // grid is laid out once at construction
	SpawnFixedOrigin                    // one per tick at a constant point
	SpawnRandomOrigin                   // one per tick at a uniformly drawn point
	SpawnPointerOrigin                  // one per tick at the pointer
)

// Policy holds everything that differs between variants.
type Policy struct {
	Decrement         float64
	Gravity           r2.Vec // initial acceleration of a spawned particle
	ResetAcceleration bool   // zero Acc after every integration
	Interacts         bool   // run the repulsion pass
	Culls             bool   // remove particles once life < 0
	FullSpread        bool   // spawn velocity Y drawn from [-1,1) instead of [-1,0)
	Spawn             SpawnRule
}

var policies = [...]Policy{
	StaticGrid: {
		Decrement: 2.0,
		Gravity:   r2.Vec{Y: Gravity},
		Spawn:     SpawnNone,
	},
	Stream: {
		Decrement: 1.5,
		Gravity:   r2.Vec{Y: Gravity},
		Culls:     true,
		Spawn:     SpawnFixedOrigin,
	},
	RepellingCloud: {
		Decrement:         0.5,
		ResetAcceleration: true,
		Interacts:         true,
		Culls:             true,
		FullSpread:        true,
		Spawn:             SpawnRandomOrigin,
	},
	TrailingCursor: {
		Decrement: 2.0,
		Gravity:   r2.Vec{Y: Gravity},
		Culls:     true,
		Spawn:     SpawnPointerOrigin,
	},
}

// PolicyFor returns the policy of v.
func PolicyFor(v Variant) Policy {
	if v < 0 || int(v) >= len(policies) {
		panic(fmt.Sprintf("particle: unknown variant %d", int(v)))
	}
	return policies[v]
}
