package ordered

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// InsertBitmap merges the members of bm into s. A roaring bitmap iterates in
// ascending order without duplicates, so it feeds the sorted merge directly.
func InsertBitmap(s *Set[uint32, uint32], bm *roaring.Bitmap, c Conflict) error {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	return s.InsertSorted(bm.ToArray(), c)
}

// ToBitmap returns a bitmap holding every element of s.
func ToBitmap(s *Set[uint32, uint32]) *roaring.Bitmap {
	bm := roaring.New()
	bm.AddMany(s.Data())
	return bm
}
