package ordered

import "errors"

// ErrUnsortedInput is returned by CheckSorted when input is not in strictly
// ascending key order. The sorted insertion paths never check for it; feeding
// them unsorted input leaves the set in an unspecified order.
var ErrUnsortedInput = errors.New("input is not sorted")
