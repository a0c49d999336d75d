package qrcode

import (
	"reflect"
	"testing"
)

func TestChecksumMatchesReference(t *testing.T) {
	// Reference values from the original pattern implementation, which relies
	// on 32-bit signed wraparound.
	cases := []struct {
		payload string
		want    int32
	}{
		{"", 0},
		{"a", 97},
		{"abc", 96354},
		{"jean-dupont-techcorp", 920184306},
		{"jean-dupont-personal", -1316137742},
		{"the quick brown fox jumps over the lazy dog", -2082818701},
	}
	for _, tc := range cases {
		if got := checksum(tc.payload); got != tc.want {
			t.Fatalf("checksum(%q) = %d, want %d", tc.payload, got, tc.want)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate("abc", 21)
	second := Generate("abc", 21)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical grids for identical inputs")
	}
	if first.Size() != 21 {
		t.Fatalf("expected 21x21 grid, got %d", first.Size())
	}
	for i, row := range first {
		if len(row) != 21 {
			t.Fatalf("row %d has %d cells, want 21", i, len(row))
		}
	}
}

func TestGenerateFillRule(t *testing.T) {
	// checksum("abc") = 96354, divisible by 3, so exactly the cells whose
	// linear index is a multiple of 3 are filled.
	grid := Generate("abc", 21)
	for i, row := range grid {
		for j, filled := range row {
			idx := i*21 + j
			if want := idx%3 == 0; filled != want {
				t.Fatalf("cell (%d,%d): filled=%v, want %v", i, j, filled, want)
			}
		}
	}
}

func TestGenerateNegativeHash(t *testing.T) {
	// checksum("jean-dupont-personal") = -1316137742. The fill rule must treat
	// negative sums as divisible when |h+idx| is a multiple of 3.
	const h = int64(-1316137742)
	grid := Generate("jean-dupont-personal", 21)
	for i, row := range grid {
		for j, filled := range row {
			idx := int64(i*21 + j)
			if want := (h+idx)%3 == 0; filled != want {
				t.Fatalf("cell (%d,%d): filled=%v, want %v", i, j, filled, want)
			}
		}
	}
}

func TestGenerateEmptyPayload(t *testing.T) {
	grid := Generate("", 5)
	if grid.Size() != 5 {
		t.Fatalf("expected 5x5 grid, got %d", grid.Size())
	}
	// Zero hash: cells at indices divisible by 3 are filled.
	for i, row := range grid {
		for j, filled := range row {
			idx := i*5 + j
			if want := idx%3 == 0; filled != want {
				t.Fatalf("cell (%d,%d): filled=%v, want %v", i, j, filled, want)
			}
		}
	}
}

func TestGenerateDefaultsGridSize(t *testing.T) {
	if got := Generate("abc", 0).Size(); got != DefaultGridSize {
		t.Fatalf("expected default grid size %d, got %d", DefaultGridSize, got)
	}
	if got := Generate("abc", -3).Size(); got != DefaultGridSize {
		t.Fatalf("expected default grid size %d, got %d", DefaultGridSize, got)
	}
}

func TestGenerateDistinctPayloadsUsuallyDiffer(t *testing.T) {
	// Not a collision-resistance claim, just a sanity check that the hash
	// actually feeds the pattern.
	a := Generate("jean-dupont-techcorp", 21)
	b := Generate("jean-dupont-personal", 21)
	if reflect.DeepEqual(a, b) {
		t.Fatalf("expected different grids for payloads with different hashes mod 3")
	}
}
