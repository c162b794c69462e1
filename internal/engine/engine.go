// Package engine exposes the single generate(config, entities) entry point
// of spec §6, wiring the domain generator, constraint checker, solvers,
// analyzer and validator into one request/response cycle.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rhyrak/go-schedule/internal/analyzer"
	"github.com/rhyrak/go-schedule/internal/constraint"
	"github.com/rhyrak/go-schedule/internal/score"
	"github.com/rhyrak/go-schedule/internal/solver/csp"
	"github.com/rhyrak/go-schedule/internal/solver/greedy"
	"github.com/rhyrak/go-schedule/internal/solver/hybrid"
	"github.com/rhyrak/go-schedule/internal/validator"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// SolverType selects which solver Generate runs.
type SolverType string

const (
	SolverCSP    SolverType = "csp"
	SolverGreedy SolverType = "greedy"
	SolverHybrid SolverType = "hybrid"
)

// ErrorSlug is a stable, UI-displayable error identifier, per §6/§7.
type ErrorSlug string

const (
	ErrNoCoursesSelected ErrorSlug = "no_courses_selected"
	ErrNoFacultySelected ErrorSlug = "no_faculty_selected"
	ErrInternal          ErrorSlug = "internal"
)

// EmptyDomainError formats the `empty_domain:<course_id>` slug for a course
// whose initial domain is empty.
func EmptyDomainError(course model.CourseID) ErrorSlug {
	return ErrorSlug(fmt.Sprintf("empty_domain:%s", course))
}

// Config is the recognized request options of §6.
type Config struct {
	SolverType      SolverType
	MaxTimeSeconds  int
	Optimize        bool
	SelectedCourses []string
	SelectedFaculty []string
	SelectedBatches []string
}

// DefaultConfig returns the §6-mandated defaults: hybrid solver, a 30
// second budget, analysis disabled, no projection.
func DefaultConfig() Config {
	return Config{SolverType: SolverHybrid, MaxTimeSeconds: 30}
}

// Statistics is the §6-mandated statistics record, plus the
// solver-internal counters the original implementation also reported
// (SPEC_FULL.md §4): nodes explored, max search depth, average domain size.
type Statistics struct {
	SolverUsed            string
	GenerationTimeSeconds float64
	TotalEntries          int
	Unscheduled           int
	Conflicts             int
	OptimizationScore     float64
	TimedOut              bool

	NodesExplored int
	MaxDepth      int
	AvgDomainSize float64
}

// GenerationResult is the §6-mandated response envelope.
type GenerationResult struct {
	Success    bool
	Schedule   *model.Schedule
	Statistics Statistics
	Analysis   *analyzer.Report
	Error      ErrorSlug
}

// Generate runs one full generation cycle: project, validate the input,
// solve, validate the output, and (optionally) analyze.
func Generate(config Config, entities model.EntitySet) GenerationResult {
	start := time.Now()
	logger := slog.With("component", "engine")
	logger.Info("generation starting", "solver_type", config.SolverType)

	if config.SolverType == "" {
		config.SolverType = SolverHybrid
	}
	if config.MaxTimeSeconds <= 0 {
		config.MaxTimeSeconds = 30
	}

	projected := entities.Project(config.SelectedCourses, config.SelectedFaculty, config.SelectedBatches)

	if len(projected.Courses) == 0 {
		if len(config.SelectedCourses) > 0 || len(config.SelectedBatches) > 0 {
			logger.Warn("no courses selected")
			return GenerationResult{Error: ErrNoCoursesSelected}
		}
		logger.Info("zero courses, returning empty schedule")
		schedule := &model.Schedule{}
		return GenerationResult{
			Success:  true,
			Schedule: schedule,
			Statistics: Statistics{
				SolverUsed:            string(config.SolverType),
				GenerationTimeSeconds: time.Since(start).Seconds(),
			},
		}
	}

	if len(projected.Faculty) == 0 {
		logger.Warn("no faculty selected")
		return GenerationResult{Error: ErrNoFacultySelected}
	}

	for _, c := range projected.Courses {
		if err := c.Validate(); err != nil {
			logger.Error("validation failed", "err", err)
			return GenerationResult{Error: ErrInternal}
		}
	}
	for _, f := range projected.Faculty {
		if err := f.Validate(); err != nil {
			logger.Error("validation failed", "err", err)
			return GenerationResult{Error: ErrInternal}
		}
	}
	for _, r := range projected.Classrooms {
		if err := r.Validate(); err != nil {
			logger.Error("validation failed", "err", err)
			return GenerationResult{Error: ErrInternal}
		}
	}

	deadline := start.Add(time.Duration(config.MaxTimeSeconds) * time.Second)

	var (
		schedule      *model.Schedule
		solverUsed    string
		timedOut      bool
		nodesExplored int
		maxDepth      int
		avgDomainSize float64
	)

	switch config.SolverType {
	case SolverCSP:
		result := csp.New(projected).Solve(deadline)
		nodesExplored, maxDepth, avgDomainSize = result.NodesExplored, result.MaxDepth, result.AvgDomainSize
		logger.Info("csp solve finished", "kind", result.Kind, "nodes_explored", nodesExplored)
		if result.Kind == csp.Infeasible {
			return GenerationResult{Error: EmptyDomainError(result.EmptyDomainCourse)}
		}
		schedule = assembleFromAssignment(projected, result.Assignment)
		sortEntries(schedule)
		solverUsed = "csp"
		timedOut = result.TimedOut

	case SolverGreedy:
		schedule = greedy.Solve(projected)
		solverUsed = "greedy"
		logger.Info("greedy solve finished", "unscheduled", schedule.Summary.Unscheduled)

	default:
		result := hybrid.Solve(projected, deadline)
		schedule = result.Schedule
		solverUsed = string(result.SolverUsed)
		timedOut = result.TimedOut
		nodesExplored, maxDepth, avgDomainSize = result.CSPStats.NodesExplored, result.CSPStats.MaxDepth, result.CSPStats.AvgDomainSize
		logger.Info("hybrid solve finished", "solver_used", solverUsed, "timed_out", timedOut)
	}

	ok, message := validator.Validate(projected, schedule)
	if !ok {
		logger.Error("returned schedule failed validation", "violations", message)
		return GenerationResult{Error: ErrInternal}
	}

	checker := constraint.New(projected)
	schedule.Summary.Conflicts = countConflicts(schedule)
	schedule.Summary.OptimizationScore = score.Optimize(projected, schedule, checker)

	var report *analyzer.Report
	if config.Optimize {
		r := analyzer.Analyze(projected, schedule)
		report = &r
	}

	stats := Statistics{
		SolverUsed:            solverUsed,
		GenerationTimeSeconds: time.Since(start).Seconds(),
		TotalEntries:          len(schedule.Entries),
		Unscheduled:           schedule.Summary.Unscheduled,
		Conflicts:             schedule.Summary.Conflicts,
		OptimizationScore:     schedule.Summary.OptimizationScore,
		TimedOut:              timedOut,
		NodesExplored:         nodesExplored,
		MaxDepth:              maxDepth,
		AvgDomainSize:         avgDomainSize,
	}

	logger.Info("generation complete", "total_entries", stats.TotalEntries, "score", stats.OptimizationScore)

	return GenerationResult{
		Success:    true,
		Schedule:   schedule,
		Statistics: stats,
		Analysis:   report,
	}
}

func sortEntries(schedule *model.Schedule) {
	sort.Slice(schedule.Entries, func(i, j int) bool {
		a, b := schedule.Entries[i].Requirement, schedule.Entries[j].Requirement
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.SessionIndex < b.SessionIndex
	})
}

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

func assembleFromAssignment(entities model.EntitySet, assignment map[model.SessionRequirement]model.Triple) *model.Schedule {
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
	total := 0
	for _, c := range entities.Courses {
		total += c.SessionsPerWeek
	}
	schedule.Summary.TotalSessionsScheduled = len(schedule.Entries)
	schedule.Summary.Unscheduled = total - len(schedule.Entries)
	return schedule
}
