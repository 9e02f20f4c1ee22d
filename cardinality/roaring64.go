package cardinality

import "github.com/RoaringBitmap/roaring/v2/roaring64"

type bitmap64 struct {
	bitmap *roaring64.Bitmap
}

// NewBitmap64 returns an exact Duplex backed by a compressed roaring bitmap, holding the given initial values.
func NewBitmap64(values ...uint64) Duplex {
	duplex := bitmap64{
		bitmap: roaring64.New(),
	}

	duplex.Add(values...)
	return duplex
}

func (s bitmap64) Add(values ...uint64) {
	if len(values) == 1 {
		s.bitmap.Add(values[0])
	} else if len(values) > 1 {
		s.bitmap.AddMany(values)
	}
}

func (s bitmap64) Clear() {
	s.bitmap.Clear()
}

func (s bitmap64) Cardinality() uint64 {
	return s.bitmap.GetCardinality()
}

func (s bitmap64) Contains(value uint64) bool {
	return s.bitmap.Contains(value)
}

// Slice lists the members in ascending order.
func (s bitmap64) Slice() []uint64 {
	return s.bitmap.ToArray()
}
