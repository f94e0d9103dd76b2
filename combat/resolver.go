package combat

import (
	"math"

	"arcstorm/core"
	"arcstorm/event"
	"arcstorm/vmath"
)

// BodyKind classifies a body returned by spatial queries
type BodyKind int

const (
	BodyEnemy BodyKind = iota
	BodyObstacle
)

// Body is a spatial-query result: one physics body with its owner id
type Body struct {
	ID       core.Entity
	Kind     BodyKind
	Position vmath.Vec3
}

// SpatialQuery is the physics collaborator consumed by the resolver.
// Implementations are read-only during a single resolution pass.
type SpatialQuery interface {
	// IntersectSphere returns all bodies intersecting the given sphere
	IntersectSphere(center vmath.Vec3, radius float64) []Body

	// CastRay returns the first body hit along the ray, if any
	CastRay(origin, dir vmath.Vec3, maxDist float64) (Body, bool)
}

// ChainParams are the chain-variant numbers for one resolution pass
type ChainParams struct {
	BaseDamage int
	MaxTargets int
	Radius     float64
	Falloff    float64 // Multiplicative per hop, in (0, 1]
}

// ResolveSplash applies flat area damage: one EventEnemyHit per enemy body
// intersecting the sphere, each hit at most once (per-call visited set).
// excludeID suppresses the source enemy so a death explosion cannot
// double-hit its own corpse. Returns the number of enemies hit.
func ResolveSplash(q SpatialQuery, bus *event.Bus, center vmath.Vec3, radius float64, damage int, excludeID core.Entity) int {
	visited := make(map[core.Entity]struct{})
	hits := 0

	for _, body := range q.IntersectSphere(center, radius) {
		if body.Kind != BodyEnemy {
			continue
		}
		if body.ID == excludeID {
			continue
		}
		if _, seen := visited[body.ID]; seen {
			continue
		}
		visited[body.ID] = struct{}{}

		bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
			ID:       body.ID,
			Damage:   damage,
			Position: body.Position,
		})
		hits++
	}

	return hits
}

// ResolveChain resolves chain lightning from an aim ray.
//
// The initial target is the first enemy body on the ray; a miss (or a
// non-enemy hit) deals no damage and returns only the origin. Each
// subsequent hop queries a sphere around the current chain head and picks
// the nearest unvisited enemy by squared distance, ties broken by lowest
// id. Hop damage compounds multiplicatively (base x falloff^n) and is
// rounded to the nearest integer at emission.
//
// The returned positions (origin followed by each hit, in order) feed the
// arc-lightning visual; damage application does not depend on them.
func ResolveChain(q SpatialQuery, bus *event.Bus, origin, dir vmath.Vec3, maxDist float64, p ChainParams) []vmath.Vec3 {
	points := []vmath.Vec3{origin}

	first, ok := q.CastRay(origin, dir, maxDist)
	if !ok || first.Kind != BodyEnemy {
		return points
	}

	visited := map[core.Entity]struct{}{first.ID: {}}
	head := first.Position
	damage := float64(p.BaseDamage)

	bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
		ID:       first.ID,
		Damage:   roundDamage(damage),
		Position: first.Position,
	})
	points = append(points, first.Position)

	for hop := 1; hop < p.MaxTargets; hop++ {
		next, found := nearestUnvisited(q, head, p.Radius, visited)
		if !found {
			break
		}

		visited[next.ID] = struct{}{}
		damage *= p.Falloff

		bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
			ID:       next.ID,
			Damage:   roundDamage(damage),
			Position: next.Position,
		})

		head = next.Position
		points = append(points, next.Position)
	}

	return points
}

// nearestUnvisited picks the closest unvisited enemy body within radius of
// the chain head. Equal squared distances resolve to the lowest id, which
// keeps hop selection deterministic.
func nearestUnvisited(q SpatialQuery, head vmath.Vec3, radius float64, visited map[core.Entity]struct{}) (Body, bool) {
	var best Body
	bestDistSq := math.Inf(1)
	found := false

	for _, body := range q.IntersectSphere(head, radius) {
		if body.Kind != BodyEnemy {
			continue
		}
		if _, seen := visited[body.ID]; seen {
			continue
		}

		distSq := vmath.DistSq(head, body.Position)
		if !found || distSq < bestDistSq || (distSq == bestDistSq && body.ID < best.ID) {
			best = body
			bestDistSq = distSq
			found = true
		}
	}

	return best, found
}

// roundDamage rounds to the nearest integer at the point of emission
func roundDamage(d float64) int {
	return int(math.Round(d))
}
