// Package planner holds the storage-free rules of the daily planner: weekday
// exclusivity of templates, gap-based ordering, schedule materialization,
// completion transitions and completion statistics.
package planner

import (
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/models"
)

// IsWeekday reports whether day is one of Monday..Sunday.
func IsWeekday(day models.Weekday) bool {
	for _, d := range models.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseWeekdays validates weekday tokens and returns them without duplicates
// in calendar order.
func ParseWeekdays(tokens []string) ([]models.Weekday, error) {
	seen := make(map[models.Weekday]bool, len(tokens))
	for _, token := range tokens {
		day := models.Weekday(strings.TrimSpace(token))
		if !IsWeekday(day) {
			return nil, apierrors.NewValidationError("weekdays", fmt.Sprintf("Invalid weekday: %s", token))
		}
		seen[day] = true
	}
	return inCalendarOrder(seen), nil
}

// WeekdayConflicts returns the days of candidate already used by a template
// other than templateID. Pass templateID 0 for a template not yet stored.
func WeekdayConflicts(candidate []models.Weekday, templates []models.Template, templateID uint64) []models.Weekday {
	if len(candidate) == 0 {
		return nil
	}

	taken := takenWeekdays(templates, templateID)
	conflicts := make(map[models.Weekday]bool)
	for _, day := range candidate {
		if taken[day] {
			conflicts[day] = true
		}
	}
	return inCalendarOrder(conflicts)
}

// CheckWeekdayExclusivity rejects a weekday set that overlaps the weekdays of
// the user's other templates. An empty set is always valid.
func CheckWeekdayExclusivity(candidate []models.Weekday, templates []models.Template, templateID uint64) error {
	conflicts := WeekdayConflicts(candidate, templates, templateID)
	if len(conflicts) == 0 {
		return nil
	}

	names := make([]string, len(conflicts))
	for i, day := range conflicts {
		names[i] = string(day)
	}
	return apierrors.NewValidationError("weekdays",
		fmt.Sprintf("Weekdays %s are already assigned to another template", strings.Join(names, ", ")))
}

// AvailableWeekdays lists the weekdays not used by any template other than
// excludeID.
func AvailableWeekdays(templates []models.Template, excludeID uint64) []models.Weekday {
	taken := takenWeekdays(templates, excludeID)
	available := make([]models.Weekday, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		if !taken[day] {
			available = append(available, day)
		}
	}
	return available
}

// TemplateForWeekday returns the template assigned to day, if any.
func TemplateForWeekday(templates []models.Template, day models.Weekday) (models.Template, bool) {
	for _, t := range templates {
		if t.HasWeekday(day) {
			return t, true
		}
	}
	return models.Template{}, false
}

func takenWeekdays(templates []models.Template, excludeID uint64) map[models.Weekday]bool {
	taken := make(map[models.Weekday]bool)
	for _, t := range templates {
		if excludeID != 0 && t.ID == excludeID {
			continue
		}
		for _, day := range t.WeekdaySet() {
			taken[day] = true
		}
	}
	return taken
}

func inCalendarOrder(set map[models.Weekday]bool) []models.Weekday {
	days := make([]models.Weekday, 0, len(set))
	for _, day := range models.Weekdays {
		if set[day] {
			days = append(days, day)
		}
	}
	return days
}
