package cardinality

import (
	"encoding/binary"

	"github.com/axiomhq/hyperloglog"
)

type hyperLogLog64 struct {
	sketch *hyperloglog.Sketch
	buffer [8]byte
}

// NewHyperLogLog64 returns an estimating Provider backed by a dense 2^14 register HyperLogLog sketch. Memory use is
// fixed no matter how many values are added. It is not safe for concurrent use; see Synchronized.
func NewHyperLogLog64() Provider {
	return &hyperLogLog64{
		sketch: hyperloglog.NewNoSparse(),
	}
}

func (s *hyperLogLog64) Add(values ...uint64) {
	for _, value := range values {
		binary.LittleEndian.PutUint64(s.buffer[:], value)
		s.sketch.Insert(s.buffer[:])
	}
}

func (s *hyperLogLog64) Clear() {
	s.sketch = hyperloglog.NewNoSparse()
}

func (s *hyperLogLog64) Cardinality() uint64 {
	return s.sketch.Estimate()
}
