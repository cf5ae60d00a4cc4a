package bench

import "time"

func MeasureExec(exec func()) time.Duration {
	s := time.Now()
	exec()
	return time.Since(s)
}

// PerSecond converts a count done over d into a rate. Zero durations give zero.
func PerSecond(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
