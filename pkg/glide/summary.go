package glide

import (
	"fmt"
	"time"
)

// Summary prints a one-line-per-sample progress table to stdout as a
// ProgressFunc, and a final tally once generation completes. It mirrors the
// teacher's plain fmt.Printf training-progress printers: no structured
// logging library, just a console summary a CLI caller can wire in directly.
func Summary(start time.Time) ProgressFunc {
	return func(completed, total int, bestQuality float64) {
		elapsed := time.Since(start)
		fmt.Printf("sample %d/%d  best quality %.6f  elapsed %s\n", completed, total, bestQuality, elapsed.Round(time.Millisecond))
		if completed == total {
			fmt.Printf("done: %d samples, best quality %.6f\n", total, bestQuality)
		}
	}
}
