package note

import "unicode"

// WordCount counts the alphabetic tokens in content. A token is a run of
// Unicode letters that may include internal hyphens and apostrophes
// ("well-known" and "don't" count as one word each); everything else
// separates tokens. Runs with no letters at all do not count.
func WordCount(content string) int {
	count := 0
	inToken := false
	hasLetter := false
	for _, r := range content {
		switch {
		case unicode.IsLetter(r):
			inToken = true
			hasLetter = true
		case (r == '-' || r == '\'' || r == '’') && inToken:
			// Joiners only continue a token already started by a letter.
		default:
			if inToken && hasLetter {
				count++
			}
			inToken = false
			hasLetter = false
		}
	}
	if inToken && hasLetter {
		count++
	}
	return count
}
