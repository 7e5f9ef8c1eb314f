package tables

// FitColumns distributes the available width over a table's columns.
// Preferred widths are honored when they fit; columns with no preference
// (zero or negative) share the leftover width equally; when the total
// overflows, every column scales down proportionally. The result always
// has one width per preferred entry and sums to at most the available
// width when that width is positive.
func FitColumns(available float64, preferred []float64) []float64 {
	n := len(preferred)
	if n == 0 {
		return nil
	}
	if available < 0 {
		available = 0
	}

	widths := make([]float64, n)

	sumPref := 0.0
	auto := 0
	for _, w := range preferred {
		if w > 0 {
			sumPref += w
		} else {
			auto++
		}
	}

	// No preferences at all: equal split.
	if auto == n {
		for i := range widths {
			widths[i] = available / float64(n)
		}
		return widths
	}

	// Auto columns share whatever the preferred ones leave over. When
	// nothing is left they take the average preferred width and the
	// proportional scale below pulls the total back in.
	autoWidth := 0.0
	if auto > 0 {
		leftover := available - sumPref
		if leftover > 0 {
			autoWidth = leftover / float64(auto)
		} else {
			autoWidth = sumPref / float64(n-auto)
		}
	}

	total := 0.0
	for i, w := range preferred {
		if w > 0 {
			widths[i] = w
		} else {
			widths[i] = autoWidth
		}
		total += widths[i]
	}

	if total > available && total > 0 {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}

	return widths
}
