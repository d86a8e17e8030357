package hostapi

import (
	oaerrors "github.com/foundrytom/openassetio-go/errors"
)

// Result is one element of a variant-policy batch result: either a
// success value or the BatchElementError for that input index.
type Result[T any] struct {
	Value T
	Err   *oaerrors.BatchElementError
}

// IsError reports whether the element failed.
func (r Result[T]) IsError() bool {
	return r.Err != nil
}

// elementError is the first per-element error observed in
// callback-arrival order, used by the throwing result policies.
type elementError struct {
	index int
	err   oaerrors.BatchElementError
}

// runBatch is the single dispatch engine behind every result policy. It
// invokes dispatch with recording callbacks and materialises the
// results in input-index order, however the interface interleaves its
// callback deliveries. Elements the interface never reported stay at
// their zero value.
//
// The returned elementError is the first error in arrival order, or nil
// when every delivery succeeded. The error return carries whole-call
// failures from the interface itself.
func runBatch[T any](n int,
	dispatch func(onSuccess func(int, T), onError func(int, oaerrors.BatchElementError)) error,
) ([]Result[T], *elementError, error) {
	results := make([]Result[T], n)
	var first *elementError

	onSuccess := func(index int, value T) {
		if index < 0 || index >= n {
			return
		}
		results[index] = Result[T]{Value: value}
	}
	onError := func(index int, err oaerrors.BatchElementError) {
		if first == nil {
			first = &elementError{index: index, err: err}
		}
		if index < 0 || index >= n {
			return
		}
		results[index] = Result[T]{Err: &err}
	}

	if err := dispatch(onSuccess, onError); err != nil {
		return nil, nil, err
	}
	return results, first, nil
}

// throwing projects a batch outcome onto the throwing policy: the first
// observed error becomes a BatchElementException and any other
// deliveries are discarded.
func throwing[T any](results []Result[T], first *elementError,
	accessName string, entityForIndex func(int) string,
) ([]T, error) {
	if first != nil {
		entity := ""
		if entityForIndex != nil {
			entity = entityForIndex(first.index)
		}
		return nil, oaerrors.NewBatchElementException(first.index, first.err, accessName, entity)
	}
	values := make([]T, len(results))
	for i, result := range results {
		values[i] = result.Value
	}
	return values, nil
}

// singular projects a length-1 batch outcome onto the singular form.
func singular[T any](results []Result[T], first *elementError,
	accessName, entity string,
) (T, error) {
	if first != nil {
		var zero T
		if first.index != 0 {
			// An error for an index outside a single-element batch does
			// not belong to the sole input, so no entity is named.
			entity = ""
		}
		return zero, oaerrors.NewBatchElementException(first.index, first.err, accessName, entity)
	}
	return results[0].Value, nil
}
