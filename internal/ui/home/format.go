package home

import "fmt"

// FormatDuration renders milliseconds as m:ss. Minutes are not wrapped
// into hours and the sub-second rest is dropped. Negative input means
// unknown and yields "--:--".
func FormatDuration(ms int64) string {
	if ms < 0 {
		return "--:--"
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
