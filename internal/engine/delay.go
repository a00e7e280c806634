package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized delay spellings, checked in order. Sheets freely mix
// "90", "90s", "90 sec", "2m", "2 minutes", and "1:30".
var (
	delayDigitsRe  = regexp.MustCompile(`^\d+$`)
	delaySecondsRe = regexp.MustCompile(`^(\d+)\s*s(?:ec(?:ond)?s?)?$`)
	delayMinutesRe = regexp.MustCompile(`^(\d+)\s*m(?:in(?:ute)?s?)?$`)
	delayClockRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseDelay converts free-text delay notation to whole seconds.
//
// When no known pattern matches, all non-digit characters are stripped
// and the remainder parsed as seconds; if nothing remains the delay is 0.
// ParseDelay never fails.
func ParseDelay(raw string) int {
	s := fold(raw)
	if s == "" {
		return 0
	}

	if delayDigitsRe.MatchString(s) {
		return atoiOrZero(s)
	}
	if m := delaySecondsRe.FindStringSubmatch(s); m != nil {
		return atoiOrZero(m[1])
	}
	if m := delayMinutesRe.FindStringSubmatch(s); m != nil {
		return atoiOrZero(m[1]) * 60
	}
	if m := delayClockRe.FindStringSubmatch(s); m != nil {
		return atoiOrZero(m[1])*60 + atoiOrZero(m[2])
	}

	// Last resort: keep the digits, drop everything else.
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	return atoiOrZero(b.String())
}

// atoiOrZero parses digits as an int, returning 0 on overflow or garbage.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
