package session

// ProgressPercent returns 100 * position / targetLen, or 0 for an empty target.
func ProgressPercent(position, targetLen int) float64 {
	if targetLen == 0 {
		return 0
	}
	return float64(position) / float64(targetLen) * 100
}

// AccuracyPercent returns 100 - 100 * errors / keystrokes. With no
// keystrokes evaluated yet the accuracy is exactly 100.
func AccuracyPercent(errors, keystrokes int) float64 {
	if keystrokes == 0 {
		return 100
	}
	return 100 - float64(errors)/float64(keystrokes)*100
}

// WordsPerMinute computes speed with the standard five-characters-per-word
// convention, against correctly typed characters rather than raw
// keystrokes. Zero elapsed time yields exactly 0.
func WordsPerMinute(position, elapsedSeconds int) float64 {
	if elapsedSeconds == 0 {
		return 0
	}
	words := float64(position) / 5.0
	minutes := float64(elapsedSeconds) / 60.0
	return words / minutes
}
