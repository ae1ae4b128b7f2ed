package analysis

import (
	"math"
	"sort"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// ActiveStepHistogram counts how many steps are active on each day that at
// least one step covers. Cost grows with the number of covered days, so
// callers pass validated plans only.
func ActiveStepHistogram(steps []*entities.CareStep) map[int]int {
	histogram := make(map[int]int)
	for _, step := range steps {
		for day := step.Timing.StartDay; day <= step.Timing.EndDay; day++ {
			histogram[day]++
			if day == step.Timing.EndDay {
				break
			}
		}
	}
	return histogram
}

// MaxConcurrentSteps is the peak number of steps active on a single day,
// 0 without steps. It sweeps range boundaries, so it does not depend on
// how long the ranges are.
func MaxConcurrentSteps(steps []*entities.CareStep) int {
	type boundary struct {
		day   int
		delta int
	}

	boundaries := make([]boundary, 0, 2*len(steps))
	for _, step := range steps {
		if step.Timing.EndDay < step.Timing.StartDay {
			continue
		}
		boundaries = append(boundaries, boundary{step.Timing.StartDay, 1})
		// a range ending on the last representable day never closes
		if end := step.Timing.EndDay; end < math.MaxInt {
			boundaries = append(boundaries, boundary{end + 1, -1})
		}
	}

	// closings sort before openings on the same day
	sort.Slice(boundaries, func(i, j int) bool {
		if boundaries[i].day != boundaries[j].day {
			return boundaries[i].day < boundaries[j].day
		}
		return boundaries[i].delta < boundaries[j].delta
	})

	active, peak := 0, 0
	for _, b := range boundaries {
		active += b.delta
		if active > peak {
			peak = active
		}
	}
	return peak
}
