package entity

// forward reports whether "to" sits strictly after "from" in order. Unknown
// values never advance.
func forward[S ~string](order []S, from, to S) bool {
	fromIdx, toIdx := -1, -1
	for i, s := range order {
		if s == from {
			fromIdx = i
		}
		if s == to {
			toIdx = i
		}
	}
	return fromIdx >= 0 && toIdx > fromIdx
}

func member[S ~string](order []S, s S) bool {
	for _, v := range order {
		if v == s {
			return true
		}
	}
	return false
}
