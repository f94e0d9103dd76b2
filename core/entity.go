package core

// Entity is a stable identifier for a live game object (enemy, projectile)
// Ids are allocated monotonically and never reused within a session
type Entity uint64

// EntityNone is the zero value, never assigned to a live object
const EntityNone Entity = 0
