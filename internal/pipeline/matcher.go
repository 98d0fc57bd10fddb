package pipeline

// Plot identifiers are embedded in image filenames as "<id>-" without
// fixed-width padding, so naive substring containment is ambiguous: "1-" is
// a substring of "21-". A candidate only matches where the digit run is not
// the suffix of a larger number, i.e. it is preceded by a non-digit or the
// start of the string.

// MatchesPlot reports whether name encodes plot id as a literal "<id>-"
// occurrence with a digit-safe left boundary.
func MatchesPlot(name string, id int) bool {
	if id <= 0 {
		return false
	}
	digits := itoa(id)
	for i := 0; i+len(digits) < len(name); i++ {
		if name[i:i+len(digits)] != digits {
			continue
		}
		if name[i+len(digits)] != '-' {
			continue
		}
		if i > 0 && isDigit(name[i-1]) {
			continue
		}
		return true
	}
	return false
}

// ExtractPlotID returns the lowest plot ID in [1, rangeMax] encoded in name,
// or 0 when none matches. Filenames are expected to encode exactly one plot;
// ties resolve to the lowest ID, the same answer a per-candidate scan from 1
// to rangeMax would give. A single pass over the digit runs avoids the
// repeated substring scans of that approach.
func ExtractPlotID(name string, rangeMax int) int {
	best := 0
	i := 0
	for i < len(name) {
		if !isDigit(name[i]) {
			i++
			continue
		}
		// Maximal digit run starting at i.
		j := i
		v := 0
		overflow := false
		for j < len(name) && isDigit(name[j]) {
			if v > rangeMax {
				overflow = true
			} else {
				v = v*10 + int(name[j]-'0')
			}
			j++
		}
		// A zero-padded run like "007" is not the literal rendering of 7,
		// so no candidate matches it: the trailing "7-" sits behind a
		// digit boundary.
		if name[i] == '0' && j-i > 1 {
			i = j
			continue
		}
		if j < len(name) && name[j] == '-' && !overflow && v >= 1 && v <= rangeMax {
			if best == 0 || v < best {
				best = v
			}
		}
		i = j
	}
	return best
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func itoa(v int) string {
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
