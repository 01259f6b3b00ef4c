package schedule

// Reduce trims a visiting sequence down to the remaining capacity before
// the exam date. It removes the excess only — one item at a time, lowest
// combined priority first, later sequence position breaking ties — so the
// highest-priority coverage survives intact and in order. Returns the
// kept sequence and the removed items in removal order (ascending
// priority), which the caller turns into exclusion records.
//
// Only invoked for plans in final-stretch mode; with the flag off,
// infeasibility is surfaced to the caller instead.
func Reduce(items []demandItem, capacity int) (kept, removed []demandItem) {
	if capacity < 0 {
		capacity = 0
	}
	if len(items) <= capacity {
		return items, nil
	}

	kept = make([]demandItem, len(items))
	copy(kept, items)

	for len(kept) > capacity {
		victim := 0
		for i := 1; i < len(kept); i++ {
			if kept[i].Priority <= kept[victim].Priority {
				victim = i
			}
		}
		removed = append(removed, kept[victim])
		kept = append(kept[:victim], kept[victim+1:]...)
	}
	return kept, removed
}
