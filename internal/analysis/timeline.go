package analysis

import "github.com/zatekoja/careplannavigator/internal/domain/entities"

// BuildTimeline projects steps onto days 1..min(durationDays, maxDays).
// Every day is present in ascending order; days with no active step carry
// an empty step list. maxDays <= 0 disables the cap.
func BuildTimeline(steps []*entities.CareStep, durationDays, maxDays int) []entities.TimelineDay {
	days := durationDays
	if maxDays > 0 && days > maxDays {
		days = maxDays
	}
	if days <= 0 {
		return []entities.TimelineDay{}
	}

	timeline := make([]entities.TimelineDay, 0, days)
	for day := 1; day <= days; day++ {
		active := make([]entities.TimelineStep, 0)
		for _, step := range steps {
			if !step.ActiveOn(day) {
				continue
			}
			timeOfDay := step.Timing.TimeOfDay
			if timeOfDay == nil {
				timeOfDay = []string{}
			}
			active = append(active, entities.TimelineStep{
				StepID:      step.ID,
				Description: step.Description,
				Category:    step.Category,
				TimeOfDay:   timeOfDay,
				RiskLevel:   step.RiskLevel,
			})
		}
		timeline = append(timeline, entities.TimelineDay{
			Day:       day,
			StepCount: len(active),
			Steps:     active,
		})
	}
	return timeline
}
