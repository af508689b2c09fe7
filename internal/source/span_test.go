package source

import "testing"

func TestSpanContains(t *testing.T) {
	tests := []struct {
		name  string
		outer Span
		inner Span
		want  bool
	}{
		{"identical", Span{File: 1, Start: 5, End: 10}, Span{File: 1, Start: 5, End: 10}, true},
		{"strictly inside", Span{File: 1, Start: 5, End: 20}, Span{File: 1, Start: 7, End: 9}, true},
		{"different file", Span{File: 1, Start: 5, End: 20}, Span{File: 2, Start: 7, End: 9}, false},
		{"overlaps end", Span{File: 1, Start: 5, End: 10}, Span{File: 1, Start: 8, End: 12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Fatalf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}

	got := a.Cover(b)
	want := Span{File: 1, Start: 5, End: 20}
	if got != want {
		t.Fatalf("Cover() = %+v, want %+v", got, want)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover() across files must return receiver, got %+v", got)
	}
}

func TestSpanZero(t *testing.T) {
	if !(Span{}).Zero() {
		t.Fatalf("empty span must be zero")
	}
	if (Span{File: 1}).Zero() {
		t.Fatalf("span with file must not be zero")
	}
	if (Span{Start: 3, End: 3}).Zero() {
		t.Fatalf("positioned empty span must not be zero")
	}
}
