package room

// ProgressLevel grades how far the child got relative to what is left.
type ProgressLevel int

const (
	ProgressStart ProgressLevel = iota
	ProgressGoodStart
	ProgressHalfway
	ProgressAlmostDone
	ProgressAllDone
)

// LevelOf is defined for every pair of counters; negatives count as zero.
// Nothing left to do is ProgressAllDone, otherwise the share of completed
// tasks in completed+remaining picks the level.
func LevelOf(completed, remaining int) ProgressLevel {
	if completed < 0 {
		completed = 0
	}
	if remaining <= 0 {
		return ProgressAllDone
	}
	ratio := float64(completed) / float64(completed+remaining)
	switch {
	case ratio < 0.25:
		return ProgressStart
	case ratio < 0.5:
		return ProgressGoodStart
	case ratio < 0.75:
		return ProgressHalfway
	default:
		return ProgressAlmostDone
	}
}
