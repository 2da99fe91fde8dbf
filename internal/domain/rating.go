package domain

import "strconv"

const (
	MinRating = 1
	MaxRating = 5
)

// ComputeRating reduces a set of review ratings to the aggregate stored on an
// attraction: the arithmetic mean rounded half-up to one decimal place, and
// the number of ratings. No ratings yields (0, 0).
//
// The rounding is done on integers so that means such as 4.25 land on 4.3
// regardless of float representation.
func ComputeRating(ratings []int) (float64, int) {
	count := len(ratings)
	if count == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	tenths := (sum*20 + count) / (2 * count)
	return float64(tenths) / 10, count
}

// SummarizeRatings builds the per-star distribution shown next to an
// attraction's reviews.
func SummarizeRatings(attractionID string, ratings []int) RatingSummary {
	counts := make(map[string]int, MaxRating)
	for star := MinRating; star <= MaxRating; star++ {
		counts[strconv.Itoa(star)] = 0
	}
	for _, r := range ratings {
		if r < MinRating || r > MaxRating {
			continue
		}
		counts[strconv.Itoa(r)]++
	}
	average, total := ComputeRating(ratings)
	return RatingSummary{
		AttractionID:  attractionID,
		AverageRating: average,
		TotalReviews:  total,
		RatingCounts:  counts,
	}
}
