package analysis

import (
	"math"
	"strings"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// OccurrencesPerDay maps free-text frequency to occurrences per day.
// "daily" wins over the count words, so "twice daily" is 1 like any other
// daily step; "twice" and "three" only count on their own ("twice a day").
// Weekly text is 1/7 unless it also says daily. Unrecognized text counts
// as once a day.
func OccurrencesPerDay(frequency string) float64 {
	f := strings.ToLower(frequency)
	switch {
	case strings.Contains(f, "daily"):
		return 1
	case strings.Contains(f, "twice"):
		return 2
	case strings.Contains(f, "three"):
		return 3
	case strings.Contains(f, "weekly"):
		return 1.0 / 7.0
	}
	return 1
}

// FrequencyStdDev is the population standard deviation of the steps'
// occurrences per day; 0 without steps.
func FrequencyStdDev(steps []*entities.CareStep) float64 {
	if len(steps) == 0 {
		return 0
	}

	values := make([]float64, len(steps))
	sum := 0.0
	for i, s := range steps {
		values[i] = OccurrencesPerDay(s.Timing.Frequency)
		sum += values[i]
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
