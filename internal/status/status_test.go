package status

import (
	"testing"
)

func TestStepForwardClamped(t *testing.T) {
	last := len(Steps()) - 1
	for i, s := range Steps() {
		got := IndexOf(Step(s, +1))
		want := i + 1
		if want > last {
			want = last
		}
		if got != want {
			t.Fatalf("Step(%q, +1): index %d, want %d", s, got, want)
		}
	}
}

func TestStepBackClamped(t *testing.T) {
	for i, s := range Steps() {
		got := IndexOf(Step(s, -1))
		want := i - 1
		if want < 0 {
			want = 0
		}
		if got != want {
			t.Fatalf("Step(%q, -1): index %d, want %d", s, got, want)
		}
	}
}

func TestStepUnknownStage(t *testing.T) {
	if got := Step("效果圖繪製中", +1); got != "效果圖繪製中" {
		t.Fatalf("stepping an unknown stage moved it to %q", got)
	}
	if got := Step(Applying, 2); got != Applying {
		t.Fatalf("stepping by 2 moved to %q", got)
	}
}

func TestIndexOfUnknown(t *testing.T) {
	if idx := IndexOf("Cancelled"); idx != -1 {
		t.Fatalf("IndexOf unknown = %d, want -1", idx)
	}
}

func TestProgressFraction(t *testing.T) {
	if f := ProgressFraction(Steps()[0]); f != 0 {
		t.Fatalf("first stage fraction = %v, want 0", f)
	}
	if f := ProgressFraction(Steps()[len(Steps())-1]); f != 1 {
		t.Fatalf("last stage fraction = %v, want 1", f)
	}
	prev := -1.0
	for _, s := range Steps() {
		f := ProgressFraction(s)
		if f < prev {
			t.Fatalf("fraction decreased at %q: %v < %v", s, f, prev)
		}
		if f < 0 || f > 1 {
			t.Fatalf("fraction out of range at %q: %v", s, f)
		}
		prev = f
	}
	if f := ProgressFraction("bogus"); f != 0 {
		t.Fatalf("unknown stage fraction = %v, want 0", f)
	}
}

func TestBuckets(t *testing.T) {
	cases := map[string]string{
		Applying:     "queue",
		Discussion:   "queue",
		DepositPaid:  "queue",
		Queued:       "queue",
		InProduction: "active",
		Completed:    "done",
		Shipped:      "done",
		"Cancelled":  "",
	}
	for stage, want := range cases {
		if got := Bucket(stage); got != want {
			t.Fatalf("Bucket(%q) = %q, want %q", stage, got, want)
		}
	}
}
