package ui

import (
	"slices"
	"testing"
)

func TestSplitter_Widths(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		total int
		want  []int
	}{
		{"defaults", []int{2, 3, 3}, 100, []int{25, 37, 38}},
		{"narrow drops the floor", []int{2, 3, 3}, 30, []int{7, 11, 12}},
		{"floor applies", []int{1, 98, 1}, 100, []int{12, 76, 12}},
		{"zero width", []int{2, 3, 3}, 0, []int{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSplitter(tt.sizes).Widths(tt.total)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Widths(%d) = %v, want %v", tt.total, got, tt.want)
			}
		})
	}
}

func TestNewSplitter_InvalidFallsBack(t *testing.T) {
	for _, sizes := range [][]int{nil, {1, 2}, {0, 1, 1}, {-1, 5, 5}} {
		if got := NewSplitter(sizes).Sizes; !slices.Equal(got, []int{2, 3, 3}) {
			t.Errorf("NewSplitter(%v).Sizes = %v", sizes, got)
		}
	}
}

func TestSplitter_Resize(t *testing.T) {
	s := NewSplitter([]int{2, 3, 3})
	s.Resize(0, 1)
	if want := []int{27, 35, 38}; !slices.Equal(s.Sizes, want) {
		t.Errorf("after Resize(0, 1) Sizes = %v, want %v", s.Sizes, want)
	}
	s.Resize(1, -1)
	if want := []int{27, 33, 40}; !slices.Equal(s.Sizes, want) {
		t.Errorf("after Resize(1, -1) Sizes = %v, want %v", s.Sizes, want)
	}
	s.Resize(2, 1)
	s.Resize(0, 100)
	if want := []int{27, 33, 40}; !slices.Equal(s.Sizes, want) {
		t.Errorf("out of range resize changed Sizes to %v", s.Sizes)
	}
}
