package paging

// DefaultPageSize is the list window size; "load more" appends one window.
const DefaultPageSize = 50

func normalize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}

// Page returns the window [page*size, (page+1)*size) of items.
func Page[T any](items []T, page, size int) []T {
	size = normalize(size)
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Through returns all items from the first page up to and including the given
// page. State restoration (back navigation) renders this so previously seen
// pages reappear without a jump.
func Through[T any](items []T, page, size int) []T {
	size = normalize(size)
	if page < 0 {
		page = 0
	}
	end := min((page+1)*size, len(items))
	return items[:end]
}

// HasMore reports whether any items remain beyond the given page.
func HasMore(page, size, total int) bool {
	size = normalize(size)
	return (page+1)*size < total
}

// Clamp resets a page restored from the URL to zero when it points past the
// end of the result set.
func Clamp(page, size, total int) int {
	size = normalize(size)
	if page < 0 || page > total/size {
		return 0
	}
	return page
}
