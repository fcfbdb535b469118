// SPDX-License-Identifier: NONE
package types

import "testing"

func TestStringSliceSort(t *testing.T) {
	sl := StringSlice{"banana", "apple", "cherry"}
	sl.Sort()

	want := StringSlice{"apple", "banana", "cherry"}
	for i := range want {
		if sl[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", sl, want)
		}
	}
}

func TestStringSliceLocate(t *testing.T) {
	sl := StringSlice{"a", "b", "c"}

	if got := sl.Locate("b"); got != 1 {
		t.Errorf("Locate(b) = %d, want 1", got)
	}
	if got := sl.Locate("z"); got != -1 {
		t.Errorf("Locate(z) = %d, want -1", got)
	}
}

func TestStringSliceUniqueAppend(t *testing.T) {
	sl := StringSlice{"a"}
	sl.UniqueAppend("b", "a", "c")

	want := StringSlice{"a", "b", "c"}
	if len(sl) != len(want) {
		t.Fatalf("UniqueAppend result = %v, want %v", sl, want)
	}
	for i := range want {
		if sl[i] != want[i] {
			t.Fatalf("UniqueAppend result = %v, want %v", sl, want)
		}
	}
}

func TestStringSliceUniqueAppendNoValues(t *testing.T) {
	sl := StringSlice{"a"}
	sl.UniqueAppend()

	if len(sl) != 1 {
		t.Errorf("UniqueAppend() with no args changed the slice: %v", sl)
	}
}

func TestStringSliceString(t *testing.T) {
	tests := []struct {
		name string
		sl   StringSlice
		want string
	}{
		{"empty", nil, ""},
		{"single", StringSlice{"a"}, "a"},
		{"multiple", StringSlice{"a", "b", "c"}, "a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sl.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
