package finder

// ClampRange narrows a frontend's requested range to what a search over n letters can
// produce: [max(minLength, floor), min(maxLength, n)]. A maxLength of 0 means n.
// ok is false when the narrowed range is empty, which frontends report as no words.
func ClampRange(n, minLength, maxLength, floor int) (lo, hi int, ok bool) {
	if maxLength == 0 {
		maxLength = n
	}
	lo = max(minLength, floor, 1)
	hi = min(maxLength, n)
	return lo, hi, lo <= hi
}
