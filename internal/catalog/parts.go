package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// The parts notation is a compact encoding of the acceptable party sizes of
// a game: ";"-separated terms, each either a bare integer or a "low-high"
// range. "2-4;6" accepts 2, 3, 4 and 6 players.

// PartsAsList expands a parts string into its acceptable party sizes.
// Ranges are inclusive and order-independent ("4-2" means 2..4). A term with
// more than one dash is malformed and contributes nothing. Values keep
// first-seen order across terms; duplicates are suppressed, not re-sorted.
func PartsAsList(parts string) []int {
	result := []int{}
	seen := make(map[int]bool)

	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}

	for _, term := range strings.Split(parts, ";") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		bounds := strings.Split(term, "-")
		switch len(bounds) {
		case 1:
			n, err := strconv.Atoi(bounds[0])
			if err != nil {
				continue
			}
			add(n)
		case 2:
			low, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
			high, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				continue
			}
			if low > high {
				low, high = high, low
			}
			for n := low; n <= high; n++ {
				add(n)
			}
		default:
			// Malformed term ("2--4"), skipped.
		}
	}

	return result
}

// FormatParts renders party sizes back into the notation, collapsing
// consecutive runs into ranges. The output is canonical: parsing it again
// yields the same sorted, de-duplicated values.
func FormatParts(sizes []int) string {
	if len(sizes) == 0 {
		return ""
	}

	uniq := make([]int, 0, len(sizes))
	seen := make(map[int]bool)
	for _, n := range sizes {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Ints(uniq)

	var terms []string
	for i := 0; i < len(uniq); {
		j := i
		for j+1 < len(uniq) && uniq[j+1] == uniq[j]+1 {
			j++
		}
		switch {
		case j == i:
			terms = append(terms, strconv.Itoa(uniq[i]))
		case j == i+1:
			// A two-value run reads better as two bare terms.
			terms = append(terms, strconv.Itoa(uniq[i]), strconv.Itoa(uniq[j]))
		default:
			terms = append(terms, strconv.Itoa(uniq[i])+"-"+strconv.Itoa(uniq[j]))
		}
		i = j + 1
	}

	return strings.Join(terms, ";")
}
