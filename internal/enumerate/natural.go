package enumerate

// naturalLess compares two file names treating embedded digit runs as
// integers: "img2" < "img10". Comparison is case-insensitive; equal keys
// ("img1" vs "img01") fall back to the full lowercased name so the order is
// total.
func naturalLess(a, b string) bool {
	la, lb := lower(a), lower(b)
	ra, rb := splitRuns(la), splitRuns(lb)

	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	for i := 0; i < n; i++ {
		if ra[i] == rb[i] {
			continue
		}
		da, db := isDigits(ra[i]), isDigits(rb[i])
		if da && db {
			if c := compareDigits(ra[i], rb[i]); c != 0 {
				return c < 0
			}
			continue
		}
		// Runs alternate non-digit/digit from position zero, so a type
		// mismatch only happens between unrelated names; digits sort first.
		if da != db {
			return da
		}
		return ra[i] < rb[i]
	}
	if len(ra) != len(rb) {
		return len(ra) < len(rb)
	}
	return la < lb
}

// splitRuns splits s into maximal runs of digits and non-digits, preserving
// order. "img10.png" becomes ["img", "10", ".png"].
func splitRuns(s string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[i-1]) {
			runs = append(runs, s[start:i])
			start = i
		}
	}
	return runs
}

// compareDigits compares two digit runs as integers of arbitrary length:
// leading zeros are ignored, then longer means larger, then lexicographic.
func compareDigits(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// lower is an ASCII-only lowercase; file names with multibyte runes pass
// through byte-wise, which keeps the order stable.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
