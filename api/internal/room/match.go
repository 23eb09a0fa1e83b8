package room

// Match pairs every detection with at most one reference object of the same
// label. References of a label are handed out in the order they were recorded,
// to detections in detector order; a consumed reference is never reused.
//
// The assignment is greedy: it ignores confidence and distance between boxes,
// so with two books on the shelf the first detected book always goes to the
// first recorded slot even when the second slot is closer.
//
// Target points into refs; callers must not modify refs while using the result.
func Match(detected []DetectedObject, refs []ReferenceObject) []MatchResult {
	queues := make(map[string][]int, len(refs))
	for i, r := range refs {
		queues[r.Label] = append(queues[r.Label], i)
	}

	out := make([]MatchResult, 0, len(detected))
	for _, d := range detected {
		m := MatchResult{Detected: d}
		if q := queues[d.Label]; len(q) > 0 {
			m.Target = &refs[q[0]]
			queues[d.Label] = q[1:]
		}
		out = append(out, m)
	}
	return out
}
