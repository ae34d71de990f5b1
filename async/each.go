package async

// EachWith runs it over every element of items under s.
func EachWith[T any](s Strategy, items []T, it Iterator[T], cb Callback) *Events {
	return s.Run(len(items), func(i int, done Done) {
		it(items[i], done)
	}, cb)
}

// Each runs it over every element of items at once.
func Each[T any](items []T, it Iterator[T], cb Callback) *Events {
	return EachWith(Parallel(), items, it, cb)
}

// EachSeries runs it over items one element at a time, in order.
func EachSeries[T any](items []T, it Iterator[T], cb Callback) *Events {
	return EachWith(Series(), items, it, cb)
}

// EachLimit runs it over items with at most limit elements in flight.
func EachLimit[T any](items []T, limit int, it Iterator[T], cb Callback) *Events {
	return EachWith(Limit(limit), items, it, cb)
}

// ForEach is an alias for Each.
func ForEach[T any](items []T, it Iterator[T], cb Callback) *Events {
	return Each(items, it, cb)
}

// ForEachSeries is an alias for EachSeries.
func ForEachSeries[T any](items []T, it Iterator[T], cb Callback) *Events {
	return EachSeries(items, it, cb)
}

// ForEachLimit is an alias for EachLimit.
func ForEachLimit[T any](items []T, limit int, it Iterator[T], cb Callback) *Events {
	return EachLimit(items, limit, it, cb)
}
