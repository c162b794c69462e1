// Package analyzer builds the conflict graph over a completed Schedule and
// reports the metrics and improvement suggestions of spec §4.6.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/rhyrak/go-schedule/internal/domain"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// cliqueBound caps the greedy clique search so its cost stays linear in the
// number of schedule entries, per §4.6.
const cliqueBound = 6

// Report is the analyzer's output: the mandated §4.6 fields plus the
// workload/utilization/time-distribution breakdowns the original
// implementation also computed (SPEC_FULL.md §4).
type Report struct {
	TotalConflicts      int
	RoomUtilization     float64
	FacultyLoad         map[model.FacultyID]int
	ChromaticLowerBound int
	Suggestions         []string

	ClassroomUtilization map[model.ClassroomID]float64
	TimeDistribution     map[model.Day]int
}

// Analyze builds the conflict graph over schedule's entries and computes
// every §4.6 metric plus the supplemented breakdowns.
func Analyze(entities model.EntitySet, schedule *model.Schedule) Report {
	edges := conflictEdges(schedule.Entries)
	conflictCount := 0
	for _, neighbors := range edges {
		conflictCount += len(neighbors)
	}
	conflictCount /= 2

	report := Report{
		TotalConflicts:       conflictCount,
		RoomUtilization:      roomUtilization(entities, schedule),
		FacultyLoad:          schedule.FacultyLoadMinutes(),
		ChromaticLowerBound:  largestClique(len(schedule.Entries), edges),
		ClassroomUtilization: classroomUtilization(entities, schedule),
		TimeDistribution:     timeDistribution(schedule),
	}
	report.Suggestions = suggest(entities, schedule, report)
	return report
}

// conflictEdges returns the adjacency list of the conflict graph whose
// vertices are schedule entry indices and whose edges are I1/I2 conflicts.
func conflictEdges(entries []model.ScheduleEntry) map[int][]int {
	adjacency := make(map[int][]int, len(entries))
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].Conflicts(entries[j]) {
				adjacency[i] = append(adjacency[i], j)
				adjacency[j] = append(adjacency[j], i)
			}
		}
	}
	return adjacency
}

// largestClique runs a bounded greedy clique search: order vertices by
// descending degree, then repeatedly extend the clique with the
// highest-degree vertex adjacent to every member already in it, stopping at
// cliqueBound members.
func largestClique(vertexCount int, adjacency map[int][]int) int {
	if vertexCount == 0 {
		return 0
	}

	neighborSets := make(map[int]map[int]bool, vertexCount)
	for v := 0; v < vertexCount; v++ {
		neighborSets[v] = make(map[int]bool, len(adjacency[v]))
		for _, n := range adjacency[v] {
			neighborSets[v][n] = true
		}
	}

	order := make([]int, vertexCount)
	for v := range order {
		order[v] = v
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(adjacency[order[i]]) > len(adjacency[order[j]])
	})

	best := 1
	for _, start := range order {
		clique := []int{start}
		candidates := lo.Keys(neighborSets[start])
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(adjacency[candidates[i]]) > len(adjacency[candidates[j]])
		})

		for _, c := range candidates {
			if len(clique) >= cliqueBound {
				break
			}
			adjacentToAll := true
			for _, member := range clique {
				if !neighborSets[member][c] {
					adjacentToAll = false
					break
				}
			}
			if adjacentToAll {
				clique = append(clique, c)
			}
		}

		if len(clique) > best {
			best = len(clique)
		}
		if best >= cliqueBound {
			break
		}
	}
	return best
}

// roomUtilization is the fraction of (classroom, canonical time-slot) pairs
// occupied by a schedule entry.
func roomUtilization(entities model.EntitySet, schedule *model.Schedule) float64 {
	slots := domain.New(entities).TimeSlots()
	capacity := len(entities.Classrooms) * len(slots)
	if capacity == 0 {
		return 0
	}

	type slot struct {
		room model.ClassroomID
		ts   model.TimeSlot
	}
	occupied := make(map[slot]bool, len(schedule.Entries))
	for _, e := range schedule.Entries {
		occupied[slot{e.ClassroomID, e.TimeSlot}] = true
	}
	return float64(len(occupied)) / float64(capacity)
}

func classroomUtilization(entities model.EntitySet, schedule *model.Schedule) map[model.ClassroomID]float64 {
	slots := domain.New(entities).TimeSlots()
	if len(slots) == 0 {
		return map[model.ClassroomID]float64{}
	}

	usage := make(map[model.ClassroomID]int)
	for _, e := range schedule.Entries {
		usage[e.ClassroomID]++
	}

	out := make(map[model.ClassroomID]float64, len(entities.Classrooms))
	for _, room := range entities.Classrooms {
		out[room.ID] = float64(usage[room.ID]) / float64(len(slots))
	}
	return out
}

func timeDistribution(schedule *model.Schedule) map[model.Day]int {
	dist := make(map[model.Day]int)
	for _, e := range schedule.Entries {
		dist[e.TimeSlot.Day]++
	}
	return dist
}

// suggest draws from the fixed catalog, triggered by the thresholds §4.6
// names.
func suggest(entities model.EntitySet, schedule *model.Schedule, report Report) []string {
	var out []string

	if report.TotalConflicts > 0 {
		out = append(out, fmt.Sprintf("%d unresolved resource conflicts detected", report.TotalConflicts))
	}

	if report.RoomUtilization < 0.4 {
		out = append(out, "underutilized rooms")
	}

	faculty := entities.FacultyByID()
	overloaded := facultyOverMaxShare(faculty, report.FacultyLoad, 0.8)
	if len(overloaded) > 0 {
		out = append(out, "balance faculty load")
	}

	if dayPreferenceMismatches(entities, schedule) > 0 {
		out = append(out, "revisit day preferences")
	}

	return out
}

// facultyOverMaxShare returns (in deterministic id order) the faculty whose
// load exceeds share of their weekly minute budget.
func facultyOverMaxShare(faculty map[model.FacultyID]model.Faculty, load map[model.FacultyID]int, share float64) []model.FacultyID {
	var ids []model.FacultyID
	for id, minutes := range load {
		f, ok := faculty[id]
		if !ok {
			continue
		}
		budget := f.MaxMinutesPerWeek()
		if budget > 0 && float64(minutes) > share*float64(budget) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// dayPreferenceMismatches counts entries scheduled on a day the course does
// not prefer, when the course names at least one preferred day.
func dayPreferenceMismatches(entities model.EntitySet, schedule *model.Schedule) int {
	courses := entities.CourseByID()
	count := 0
	for _, e := range schedule.Entries {
		c, ok := courses[e.CourseID]
		if !ok || len(c.PreferredDays) == 0 {
			continue
		}
		if !lo.Contains(c.PreferredDays, e.TimeSlot.Day) {
			count++
		}
	}
	return count
}
