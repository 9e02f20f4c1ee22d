package cardinality

// Provider tracks a set of uint64 values well enough to report how many distinct values it has seen.
type Provider interface {
	Add(values ...uint64)
	Clear()
	Cardinality() uint64
}

// Duplex is an exact Provider whose members can be tested and listed.
type Duplex interface {
	Provider

	Contains(value uint64) bool
	Slice() []uint64
}
