package types

// FirstFreeID returns the smallest positive integer not present in used.
// Gaps left by deletes are reused; non-positive ids are ignored.
func FirstFreeID(used []int64) int64 {
	seen := make(map[int64]struct{}, len(used))
	for _, id := range used {
		if id > 0 {
			seen[id] = struct{}{}
		}
	}
	next := int64(1)
	for {
		if _, ok := seen[next]; !ok {
			return next
		}
		next++
	}
}
