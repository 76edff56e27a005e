package ui

import "slices"

const (
	minColumnWidth = 12
	splitterScale  = 100 // weights are rescaled to percentages before resizing
	splitterStep   = 2
)

// Splitter divides the window width between the tree and the two panes by
// weight. Sizes is what the window state persists.
type Splitter struct {
	Sizes []int
}

// NewSplitter copies sizes; invalid input falls back to the defaults.
func NewSplitter(sizes []int) *Splitter {
	if len(sizes) != 3 || slices.Min(sizes) <= 0 {
		sizes = []int{2, 3, 3}
	}
	return &Splitter{Sizes: slices.Clone(sizes)}
}

// Widths splits total columns by weight. Every column gets at least
// minColumnWidth when total allows it; the last column takes the rounding
// remainder.
func (s *Splitter) Widths(total int) []int {
	n := len(s.Sizes)
	out := make([]int, n)
	if total <= 0 {
		return out
	}
	sum := 0
	for _, w := range s.Sizes {
		sum += w
	}
	floor := 0
	if total >= minColumnWidth*n {
		floor = minColumnWidth
	}
	used := 0
	for i := 0; i < n-1; i++ {
		out[i] = max(floor, total*s.Sizes[i]/sum)
		used += out[i]
	}
	out[n-1] = total - used
	// Give the last column its floor back from the widest column.
	for out[n-1] < floor {
		widest := 0
		for i := 1; i < n-1; i++ {
			if out[i] > out[widest] {
				widest = i
			}
		}
		if out[widest] <= floor {
			break
		}
		out[widest]--
		out[n-1]++
	}
	return out
}

// Resize moves the boundary after column i by delta steps; positive
// widens column i at the expense of column i+1.
func (s *Splitter) Resize(i, delta int) {
	if i < 0 || i >= len(s.Sizes)-1 {
		return
	}
	s.normalize()
	d := delta * splitterStep
	a, b := s.Sizes[i]+d, s.Sizes[i+1]-d
	if a < 1 || b < 1 {
		return
	}
	s.Sizes[i], s.Sizes[i+1] = a, b
}

func (s *Splitter) normalize() {
	sum := 0
	for _, w := range s.Sizes {
		sum += w
	}
	if sum >= splitterScale {
		return
	}
	used := 0
	for i := range s.Sizes[:len(s.Sizes)-1] {
		s.Sizes[i] = max(1, s.Sizes[i]*splitterScale/sum)
		used += s.Sizes[i]
	}
	s.Sizes[len(s.Sizes)-1] = max(1, splitterScale-used)
}
