package app

import "math"

// baseScore is the flat award for any correct answer.
const baseScore = 100

// CalculateScore maps a single answer to its point value. Incorrect answers
// score zero. Correct answers earn the base plus a time bonus that scales
// linearly from half the base (instant answer) down to zero (answer at the
// full limit), so correct answers always land in [100, 150].
//
// timeSpent must already be clamped to [0, timeLimit] by the caller; results
// are undefined outside that range.
func CalculateScore(correct bool, timeSpent, timeLimit float64) int {
	if !correct {
		return 0
	}
	bonus := int(math.Floor(math.Max(0, 1-timeSpent/timeLimit) * baseScore * 0.5))
	return baseScore + bonus
}
