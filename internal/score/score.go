// Package score computes the [0,100] optimization score of spec §4.7.
package score

import (
	"github.com/rhyrak/go-schedule/internal/constraint"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// Optimize computes the weighted optimization score for schedule against
// entities, clamping each term to [0,1] before weighting.
func Optimize(entities model.EntitySet, schedule *model.Schedule, checker *constraint.Checker) float64 {
	entryCount := len(schedule.Entries)
	if entryCount == 0 {
		return 0
	}

	totalRequirements := 0
	for _, c := range entities.Courses {
		totalRequirements += c.SessionsPerWeek
	}

	conflictTerm := clamp01(1 - ratio(countConflicts(schedule), entryCount))
	preferenceTerm := clamp01(preferenceHitRate(entities, schedule))
	unscheduledTerm := clamp01(1 - ratio(schedule.Summary.Unscheduled, max(totalRequirements, 1)))
	capacityTerm := clamp01(capacityFit(entities, schedule))
	loadTerm := clamp01(loadBalance(entities, schedule))

	return 40*conflictTerm + 20*preferenceTerm + 20*unscheduledTerm + 10*capacityTerm + 10*loadTerm
}

// countConflicts counts unordered pairs of entries that violate I1/I2.
func countConflicts(schedule *model.Schedule) int {
	count := 0
	for i := 0; i < len(schedule.Entries); i++ {
		for j := i + 1; j < len(schedule.Entries); j++ {
			if schedule.Entries[i].Conflicts(schedule.Entries[j]) {
				count++
			}
		}
	}
	return count
}

// preferenceHitRate is the fraction of entries assigned to a faculty
// preferred time slot or a course preferred day. An entry whose faculty
// and course state no preference at all has nothing to miss and counts as
// a hit.
func preferenceHitRate(entities model.EntitySet, schedule *model.Schedule) float64 {
	if len(schedule.Entries) == 0 {
		return 0
	}
	courses := entities.CourseByID()
	faculty := entities.FacultyByID()

	hits := 0
	for _, e := range schedule.Entries {
		f := faculty[e.FacultyID]
		c := courses[e.CourseID]
		noPreference := len(f.PreferredTimes) == 0 && len(c.PreferredDays) == 0
		if noPreference || f.Prefers(e.TimeSlot) || dayPreferred(c, e.TimeSlot.Day) {
			hits++
		}
	}
	return ratio(hits, len(schedule.Entries))
}

func dayPreferred(c model.Course, day model.Day) bool {
	for _, d := range c.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

// capacityFit is the average classroom-capacity utilization across
// entries, capped per-entry at 1.0.
func capacityFit(entities model.EntitySet, schedule *model.Schedule) float64 {
	if len(schedule.Entries) == 0 {
		return 0
	}
	courses := entities.CourseByID()
	rooms := entities.ClassroomByID()

	total := 0.0
	for _, e := range schedule.Entries {
		c := courses[e.CourseID]
		r := rooms[e.ClassroomID]
		if r.Capacity == 0 {
			continue
		}
		util := float64(c.EnrolledCount) / float64(r.Capacity)
		if util > 1 {
			util = 1
		}
		total += util
	}
	return total / float64(len(schedule.Entries))
}

// loadBalance rewards an even spread of teaching minutes across faculty:
// 1.0 when all assigned faculty carry equal load, trending to 0 as the
// spread between the heaviest- and lightest-loaded faculty widens.
func loadBalance(entities model.EntitySet, schedule *model.Schedule) float64 {
	load := schedule.FacultyLoadMinutes()
	if len(load) <= 1 {
		return 1
	}

	min, max := -1, 0
	for _, minutes := range load {
		if min == -1 || minutes < min {
			min = minutes
		}
		if minutes > max {
			max = minutes
		}
	}
	if max == 0 {
		return 1
	}
	return 1 - float64(max-min)/float64(max)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
