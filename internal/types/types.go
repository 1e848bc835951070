package types

// EntityID identifies an entity inside one match. Zero is never assigned.
type EntityID uint64
