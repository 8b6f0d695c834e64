package ordered

// Locate returns the position of k, or the position where k would be
// inserted. Each hint inside the current range either matches k or narrows
// the range before the final binary search.
func (s *Set[T, K]) Locate(k K, hints ...int) Result {
	return s.locate(k, 0, s.buf.Len(), hints)
}

// Find returns a pointer to the element with key k. The pointer is valid
// until the next operation that changes the set.
func (s *Set[T, K]) Find(k K, hints ...int) (*T, bool) {
	r := s.Locate(k, hints...)
	if !r.Found {
		return nil, false
	}
	return s.buf.Ptr(r.Pos), true
}

// Contains reports whether an element with key k exists.
func (s *Set[T, K]) Contains(k K, hints ...int) bool {
	return s.Locate(k, hints...).Found
}

func (s *Set[T, K]) locate(k K, lo, hi int, hints []int) Result {
	data := s.buf.Data()
	for _, h := range hints {
		if h < lo || h >= hi {
			continue
		}
		hk := s.key(&data[h])
		switch {
		case s.less(k, hk):
			hi = h
		case s.less(hk, k):
			lo = h + 1
		default:
			return Result{Pos: h, Found: true}
		}
	}
	return s.search(data, k, lo, hi)
}

// search is a binary search on [lo, hi). It stops at the first equal key it
// meets and otherwise returns the lower bound.
func (s *Set[T, K]) search(data []T, k K, lo, hi int) Result {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		mk := s.key(&data[mid])
		switch {
		case s.less(k, mk):
			hi = mid
		case s.less(mk, k):
			lo = mid + 1
		default:
			return Result{Pos: mid, Found: true}
		}
	}
	return Result{Pos: lo}
}

// CheckSorted reports ErrUnsortedInput unless the keys of vs are strictly
// ascending under less.
func CheckSorted[T, K any](vs []T, key func(*T) K, less func(a, b K) bool) error {
	for i := 1; i < len(vs); i++ {
		if !less(key(&vs[i-1]), key(&vs[i])) {
			return ErrUnsortedInput
		}
	}
	return nil
}
