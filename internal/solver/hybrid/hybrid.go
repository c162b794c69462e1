// Package hybrid drives the CSP solver within a time budget and falls
// back to greedy on failure or timeout, returning whichever schedule
// scores better, per spec §4.5.
package hybrid

import (
	"sort"
	"time"

	"github.com/rhyrak/go-schedule/internal/constraint"
	"github.com/rhyrak/go-schedule/internal/score"
	"github.com/rhyrak/go-schedule/internal/solver/csp"
	"github.com/rhyrak/go-schedule/internal/solver/greedy"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// SolverUsed names which solver actually produced the returned schedule.
type SolverUsed string

const (
	UsedCSP    SolverUsed = "csp"
	UsedGreedy SolverUsed = "greedy"
)

// Result is the outcome of a hybrid generation run.
type Result struct {
	Schedule   *model.Schedule
	SolverUsed SolverUsed
	TimedOut   bool
	CSPStats   csp.Result
}

// Solve runs the CSP solver against deadline; on Complete it returns that
// schedule directly. On Partial or Infeasible it also runs the greedy
// solver and returns whichever schedule scores higher under §4.7.
func Solve(entities model.EntitySet, deadline time.Time) Result {
	solver := csp.New(entities)
	cspResult := solver.Solve(deadline)

	if cspResult.Kind == csp.Complete {
		schedule := assemble(entities, cspResult.Assignment)
		checker := constraint.New(entities)
		schedule.Summary.OptimizationScore = score.Optimize(entities, schedule, checker)
		return Result{Schedule: schedule, SolverUsed: UsedCSP, TimedOut: cspResult.TimedOut, CSPStats: cspResult}
	}

	greedySchedule := greedy.Solve(entities)
	checker := constraint.New(entities)
	greedySchedule.Summary.OptimizationScore = score.Optimize(entities, greedySchedule, checker)

	if cspResult.Kind == csp.Partial {
		partialSchedule := assemble(entities, cspResult.Assignment)
		partialSchedule.Summary.TotalSessionsScheduled = len(partialSchedule.Entries)
		partialSchedule.Summary.Unscheduled = totalSessions(entities) - len(partialSchedule.Entries)
		partialSchedule.Summary.OptimizationScore = score.Optimize(entities, partialSchedule, checker)

		if partialSchedule.Summary.OptimizationScore >= greedySchedule.Summary.OptimizationScore {
			return Result{Schedule: partialSchedule, SolverUsed: UsedCSP, TimedOut: cspResult.TimedOut, CSPStats: cspResult}
		}
	}

	return Result{Schedule: greedySchedule, SolverUsed: UsedGreedy, TimedOut: cspResult.TimedOut, CSPStats: cspResult}
}

func assemble(entities model.EntitySet, assignment map[model.SessionRequirement]model.Triple) *model.Schedule {
	schedule := &model.Schedule{}
	for req, triple := range assignment {
		schedule.Entries = append(schedule.Entries, model.ScheduleEntry{
			Requirement: req,
			CourseID:    req.CourseID,
			FacultyID:   triple.Faculty,
			ClassroomID: triple.Room,
			TimeSlot:    triple.TimeSlot,
		})
	}
	sort.Slice(schedule.Entries, func(i, j int) bool {
		a, b := schedule.Entries[i].Requirement, schedule.Entries[j].Requirement
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.SessionIndex < b.SessionIndex
	})

	schedule.Summary.TotalSessionsScheduled = len(schedule.Entries)
	schedule.Summary.Unscheduled = totalSessions(entities) - len(schedule.Entries)
	return schedule
}

func totalSessions(entities model.EntitySet) int {
	total := 0
	for _, c := range entities.Courses {
		total += c.SessionsPerWeek
	}
	return total
}
