package postgres

import (
	"testing"

	"github.com/chirper-app/chirper/internal/domain/pagination"
)

func TestCursorID(t *testing.T) {
	cases := []struct {
		name      string
		cursor    pagination.Cursor
		wantID    string
		backwards bool
	}{
		{"no cursor", pagination.Cursor{}, "", false},
		{"after walks forward", pagination.Cursor{After: "a1"}, "a1", false},
		{"before walks backward", pagination.Cursor{Before: "b2"}, "b2", true},
		{"after wins when both set", pagination.Cursor{After: "a1", Before: "b2"}, "a1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, backwards := cursorID(tc.cursor)
			if id != tc.wantID || backwards != tc.backwards {
				t.Errorf("cursorID = (%q, %v), want (%q, %v)", id, backwards, tc.wantID, tc.backwards)
			}
		})
	}
}

func TestReverseInPlace(t *testing.T) {
	even := []int{1, 2, 3, 4}
	reverseInPlace(even)
	for i, want := range []int{4, 3, 2, 1} {
		if even[i] != want {
			t.Fatalf("even[%d] = %d, want %d", i, even[i], want)
		}
	}

	odd := []string{"a", "b", "c"}
	reverseInPlace(odd)
	if odd[0] != "c" || odd[1] != "b" || odd[2] != "a" {
		t.Fatalf("odd reversed wrong: %v", odd)
	}

	var empty []int
	reverseInPlace(empty) // must not panic
}
