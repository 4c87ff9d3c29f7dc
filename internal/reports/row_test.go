package reports

import "testing"

func TestAppendRating(t *testing.T) {
	var ratings []float64
	min := 0.0

	ratings, min = appendRating(ratings, min, 4)
	ratings, min = appendRating(ratings, min, 3)
	ratings, min = appendRating(ratings, min, 5)
	if len(ratings) != 3 || min != 3 {
		t.Fatalf("expected 3 ratings with min 3, got %v min %v", ratings, min)
	}

	// A zero rating means "not given" and changes nothing.
	ratings, min = appendRating(ratings, min, 0)
	if len(ratings) != 3 || min != 3 {
		t.Fatalf("expected zero rating skipped, got %v min %v", ratings, min)
	}
}

func TestReplaceRatingCorrectionRoundTrip(t *testing.T) {
	ratings := []float64{3, 4, 5}
	min := 3.0

	// Editing the 3 to a 5 must rescan the minimum.
	ratings, min = replaceRating(ratings, min, 3, 5)
	if min != 4 {
		t.Fatalf("expected min 4 after removing the old minimum, got %v", min)
	}
	if len(ratings) != 3 {
		t.Fatalf("expected 3 ratings, got %v", ratings)
	}

	// Editing it back restores the original minimum.
	ratings, min = replaceRating(ratings, min, 5, 3)
	if min != 3 {
		t.Fatalf("expected min 3 restored, got %v", min)
	}
}

func TestReplaceRatingRemovesOneOccurrence(t *testing.T) {
	ratings := []float64{4, 4, 5}
	min := 4.0

	ratings, min = replaceRating(ratings, min, 4, 5)
	if len(ratings) != 3 {
		t.Fatalf("expected one occurrence removed, got %v", ratings)
	}
	if min != 4 {
		t.Fatalf("expected min to stay 4 while a 4 remains, got %v", min)
	}
}

func TestReplaceRatingMatchesAfterRounding(t *testing.T) {
	ratings := []float64{3.6667, 5}
	min := 3.6667

	// The event carries the old rating rounded to one decimal.
	got, newMin := replaceRating(ratings, min, 3.7, 4)
	if len(got) != 2 {
		t.Fatalf("expected rounded match to remove the old value, got %v", got)
	}
	if newMin != 4 {
		t.Fatalf("expected min rescan to land on 4, got %v", newMin)
	}
}

func TestReplaceRatingEmptiesList(t *testing.T) {
	ratings, min := replaceRating([]float64{4}, 4, 4, 0)
	if len(ratings) != 0 || min != 0 {
		t.Fatalf("expected empty list with zero min, got %v min %v", ratings, min)
	}
}

func TestMinAndAvg(t *testing.T) {
	if minOf(nil) != 0 {
		t.Fatal("expected zero min for empty list")
	}
	if got := minOf([]float64{4, 2, 5}); got != 2 {
		t.Fatalf("expected min 2, got %v", got)
	}
	if got := avgOf([]float64{4, 5}); got != 4.5 {
		t.Fatalf("expected avg 4.5, got %v", got)
	}
}
