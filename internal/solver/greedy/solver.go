// Package greedy implements the single-pass, priority-ordered solver of
// spec §4.4: it never fails, but may leave sessions unscheduled.
package greedy

import (
	"sort"

	"github.com/rhyrak/go-schedule/internal/constraint"
	"github.com/rhyrak/go-schedule/internal/domain"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// courseTypeRank orders course types for the priority key: Lab > Lecture >
// Seminar > Tutorial, per §4.4.
var courseTypeRank = map[model.CourseType]int{
	model.Lab:      0,
	model.Lecture:  1,
	model.Seminar:  2,
	model.Tutorial: 3,
}

// Solve assigns every session requirement to the highest-ranked feasible
// triple available at the time it is considered, recomputing feasibility
// against the in-progress schedule. Requirements with no feasible triple
// are counted as unscheduled; the solver always terminates.
func Solve(entities model.EntitySet) *model.Schedule {
	gen := domain.New(entities)
	checker := constraint.New(entities)
	faculty := entities.FacultyByID()
	classrooms := entities.ClassroomByID()

	type pending struct {
		req    model.SessionRequirement
		course model.Course
		domain []model.Triple
	}

	var work []pending
	for _, c := range entities.Courses {
		d := gen.Domain(c)
		for _, req := range model.ExpandSessions(c) {
			work = append(work, pending{req: req, course: c, domain: d})
		}
	}

	sort.SliceStable(work, func(i, j int) bool {
		a, b := work[i].course, work[j].course
		if a.Credits != b.Credits {
			return a.Credits > b.Credits
		}
		if a.EnrolledCount != b.EnrolledCount {
			return a.EnrolledCount > b.EnrolledCount
		}
		if courseTypeRank[a.CourseType] != courseTypeRank[b.CourseType] {
			return courseTypeRank[a.CourseType] < courseTypeRank[b.CourseType]
		}
		return a.ID < b.ID
	})

	schedule := &model.Schedule{}
	unscheduled := 0

	for _, item := range work {
		best, ok := bestFeasible(item.course, item.domain, schedule, checker, faculty, classrooms)
		if !ok {
			unscheduled++
			continue
		}
		schedule.Entries = append(schedule.Entries, model.ScheduleEntry{
			Requirement: item.req,
			CourseID:    item.course.ID,
			FacultyID:   best.Faculty,
			ClassroomID: best.Room,
			TimeSlot:    best.TimeSlot,
		})
	}

	schedule.Summary.TotalSessionsScheduled = len(schedule.Entries)
	schedule.Summary.Unscheduled = unscheduled
	return schedule
}

func bestFeasible(course model.Course, candidates []model.Triple, schedule *model.Schedule, checker *constraint.Checker,
	faculty map[model.FacultyID]model.Faculty, classrooms map[model.ClassroomID]model.Classroom) (model.Triple, bool) {
	bestScore := -1.0
	var best model.Triple
	found := false

	for _, candidate := range candidates {
		trial := model.ScheduleEntry{
			CourseID:    course.ID,
			FacultyID:   candidate.Faculty,
			ClassroomID: candidate.Room,
			TimeSlot:    candidate.TimeSlot,
		}
		if !checker.Admits(schedule, trial) {
			continue
		}
		score := assignmentScore(course, candidate, faculty[candidate.Faculty], classrooms[candidate.Room])
		if score > bestScore {
			bestScore = score
			best = candidate
			found = true
		}
	}
	return best, found
}

// assignmentScore follows the original implementation's scoring formula:
// faculty preference, capacity-utilization band, time-of-day preference,
// and a lab/room-type match bonus (see SPEC_FULL.md §4).
func assignmentScore(course model.Course, t model.Triple, f model.Faculty, room model.Classroom) float64 {
	score := 0.0

	if f.Prefers(t.TimeSlot) {
		score += 10
	} else {
		score += 5
	}

	utilization := float64(course.EnrolledCount) / float64(room.Capacity)
	switch {
	case utilization >= 0.7 && utilization <= 1.0:
		score += 20
	case utilization < 0.7:
		score += 10 * utilization
	}

	hour := t.TimeSlot.StartMins / 60
	switch {
	case hour >= 9 && hour <= 11:
		score += 5
	case hour >= 14 && hour <= 16:
		score += 3
	}

	if course.CourseType == model.Lab && room.Type == model.ClassroomLab {
		score += 15
	}

	return score
}
