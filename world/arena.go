package world

import (
	"math"

	"arcstorm/combat"
	"arcstorm/vmath"
)

// Arena adapts the coordinator's enemy collection to the spatial-query
// contract the damage resolver consumes. Enemy bodies are spheres of a
// fixed hit radius centered on their positions.
//
// The arena is read-only with respect to enemy state: it never mutates
// the collection, only answers intersection questions about it.
type Arena struct {
	enemies   *combat.Coordinator
	hitRadius float64
}

// NewArena creates an arena over the given enemy collection
func NewArena(enemies *combat.Coordinator, hitRadius float64) *Arena {
	return &Arena{
		enemies:   enemies,
		hitRadius: hitRadius,
	}
}

// IntersectSphere returns every enemy body whose hit sphere overlaps the
// query sphere
func (a *Arena) IntersectSphere(center vmath.Vec3, radius float64) []combat.Body {
	var out []combat.Body
	reach := radius + a.hitRadius

	a.enemies.Each(func(e combat.Enemy) {
		if vmath.DistSq(center, e.Position) <= reach*reach {
			out = append(out, combat.Body{
				ID:       e.ID,
				Kind:     combat.BodyEnemy,
				Position: e.Position,
			})
		}
	})

	return out
}

// CastRay returns the nearest enemy body hit along the ray, using
// analytic ray-sphere intersection. dir need not be normalized.
func (a *Arena) CastRay(origin, dir vmath.Vec3, maxDist float64) (combat.Body, bool) {
	d := vmath.Normalize(dir)
	if d == (vmath.Vec3{}) {
		return combat.Body{}, false
	}

	var best combat.Body
	bestT := math.Inf(1)
	found := false

	a.enemies.Each(func(e combat.Enemy) {
		t, hit := raySphere(origin, d, e.Position, a.hitRadius)
		if !hit || t > maxDist {
			return
		}
		if t < bestT {
			bestT = t
			best = combat.Body{
				ID:       e.ID,
				Kind:     combat.BodyEnemy,
				Position: e.Position,
			}
			found = true
		}
	})

	return best, found
}

// raySphere returns the nearest non-negative ray parameter hitting the
// sphere, solving |origin + t*d - center|^2 = r^2 for unit d
func raySphere(origin, d, center vmath.Vec3, r float64) (float64, bool) {
	oc := vmath.Sub(origin, center)
	b := vmath.Dot(oc, d)
	c := vmath.MagSq(oc) - r*r

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t := -b - sqrtDisc
	if t < 0 {
		// Origin inside the sphere: take the exit point
		t = -b + sqrtDisc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
