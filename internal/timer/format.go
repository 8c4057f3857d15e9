package timer

import "fmt"

// FormatElapsed renders a millisecond duration as "M minutes, S seconds".
// Minutes never roll over into hours and units are never singularised:
// 3661000 renders as "61 minutes, 1 seconds". Negative input is rendered
// as computed, without correction.
func FormatElapsed(ms int64) string {
	totalSeconds := floorDiv(ms, 1000)
	minutes := floorDiv(totalSeconds, 60)
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d minutes, %d seconds", minutes, seconds)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
