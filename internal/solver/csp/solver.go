// Package csp implements the backtracking CSP solver: MRV variable
// ordering, LCV value ordering, and forward checking over session
// requirements, as specified in spec §4.3.
package csp

import (
	"sort"
	"time"

	"github.com/rhyrak/go-schedule/internal/domain"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// Kind classifies the solver's outcome, per spec §4.3's failure semantics.
type Kind int

const (
	Infeasible Kind = iota
	Partial
	Complete
)

// Result is the outcome of a Solve call.
type Result struct {
	Kind       Kind
	Assignment map[model.SessionRequirement]model.Triple
	TimedOut   bool
	// EmptyDomainCourse is set when Kind is Infeasible because some
	// variable's initial domain was empty.
	EmptyDomainCourse model.CourseID

	NodesExplored int
	MaxDepth      int
	AvgDomainSize float64
}

// Solver runs backtracking search over session requirements.
type Solver struct {
	variables     []model.SessionRequirement
	courseOf      map[model.SessionRequirement]model.Course
	baseDomain    map[model.CourseID][]model.Triple
	facultyBudget map[model.FacultyID]int

	domains map[model.SessionRequirement][]model.Triple

	nodesExplored int
	maxDepth      int
	deadline      time.Time
	bestAssigned  map[model.SessionRequirement]model.Triple
	bestCount     int
}

// New builds a Solver over the given entity set, expanding every course
// into its weekly session variables in a stable, deterministic order.
func New(entities model.EntitySet) *Solver {
	s := &Solver{
		courseOf:      make(map[model.SessionRequirement]model.Course),
		baseDomain:    make(map[model.CourseID][]model.Triple),
		facultyBudget: make(map[model.FacultyID]int),
	}
	for _, f := range entities.Faculty {
		s.facultyBudget[f.ID] = f.MaxMinutesPerWeek()
	}
	gen := domain.New(entities)
	for _, c := range entities.Courses {
		d := gen.Domain(c)
		s.baseDomain[c.ID] = d
		for _, req := range model.ExpandSessions(c) {
			s.variables = append(s.variables, req)
			s.courseOf[req] = c
		}
	}
	return s
}

// Solve runs the backtracking search until a complete assignment is found,
// the search space is exhausted, or deadline passes.
func (s *Solver) Solve(deadline time.Time) Result {
	s.deadline = deadline
	s.nodesExplored = 0
	s.maxDepth = 0
	s.bestAssigned = nil
	s.bestCount = -1

	s.domains = make(map[model.SessionRequirement][]model.Triple, len(s.variables))
	totalDomainSize := 0
	for _, v := range s.variables {
		dom := s.baseDomain[s.courseOf[v].ID]
		cp := make([]model.Triple, len(dom))
		copy(cp, dom)
		s.domains[v] = cp
		totalDomainSize += len(cp)
		if len(cp) == 0 {
			return Result{Kind: Infeasible, EmptyDomainCourse: v.CourseID, NodesExplored: s.nodesExplored, MaxDepth: s.maxDepth}
		}
	}
	avgDomainSize := 0.0
	if len(s.variables) > 0 {
		avgDomainSize = float64(totalDomainSize) / float64(len(s.variables))
	}

	assignment := make(map[model.SessionRequirement]model.Triple, len(s.variables))
	s.recordBest(assignment)

	result, timedOut := s.backtrack(assignment, 0)
	if result != nil {
		return Result{Kind: Complete, Assignment: result, NodesExplored: s.nodesExplored, MaxDepth: s.maxDepth, AvgDomainSize: avgDomainSize}
	}
	if timedOut {
		return Result{Kind: Partial, Assignment: s.bestAssigned, TimedOut: true, NodesExplored: s.nodesExplored, MaxDepth: s.maxDepth, AvgDomainSize: avgDomainSize}
	}
	if len(s.bestAssigned) > 0 {
		return Result{Kind: Partial, Assignment: s.bestAssigned, NodesExplored: s.nodesExplored, MaxDepth: s.maxDepth, AvgDomainSize: avgDomainSize}
	}
	return Result{Kind: Infeasible, NodesExplored: s.nodesExplored, MaxDepth: s.maxDepth, AvgDomainSize: avgDomainSize}
}

func (s *Solver) recordBest(assignment map[model.SessionRequirement]model.Triple) {
	if len(assignment) > s.bestCount {
		s.bestCount = len(assignment)
		cp := make(map[model.SessionRequirement]model.Triple, len(assignment))
		for k, v := range assignment {
			cp[k] = v
		}
		s.bestAssigned = cp
	}
}

// backtrack returns (assignment, timedOut). A non-nil assignment means
// success; timedOut distinguishes a deadline cutoff from exhaustion.
func (s *Solver) backtrack(assignment map[model.SessionRequirement]model.Triple, depth int) (map[model.SessionRequirement]model.Triple, bool) {
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return nil, true
	}

	s.nodesExplored++
	if depth > s.maxDepth {
		s.maxDepth = depth
	}

	if len(assignment) == len(s.variables) {
		return assignment, false
	}

	variable := s.selectUnassigned(assignment)
	if variable == (model.SessionRequirement{}) {
		return nil, false
	}

	for _, value := range s.orderDomainValues(variable, assignment) {
		if !s.consistent(variable, value, assignment) {
			continue
		}

		assignment[variable] = value
		s.recordBest(assignment)

		removed := s.forwardCheck(variable, value, assignment)
		ok := !anyDomainEmptied(removed, s.domains)

		if ok {
			result, timedOut := s.backtrack(assignment, depth+1)
			if result != nil {
				return result, false
			}
			if timedOut {
				s.restoreDomains(removed)
				delete(assignment, variable)
				return nil, true
			}
		}

		s.restoreDomains(removed)
		delete(assignment, variable)
	}

	return nil, false
}

func anyDomainEmptied(removed map[model.SessionRequirement][]model.Triple, domains map[model.SessionRequirement][]model.Triple) bool {
	for v := range removed {
		if len(domains[v]) == 0 {
			return true
		}
	}
	return false
}

// selectUnassigned applies MRV, tie-broken by degree (descending) then by
// course id (ascending), per §4.3.
func (s *Solver) selectUnassigned(assignment map[model.SessionRequirement]model.Triple) model.SessionRequirement {
	var unassigned []model.SessionRequirement
	for _, v := range s.variables {
		if _, ok := assignment[v]; !ok {
			unassigned = append(unassigned, v)
		}
	}
	if len(unassigned) == 0 {
		return model.SessionRequirement{}
	}

	sort.Slice(unassigned, func(i, j int) bool {
		di, dj := len(s.domains[unassigned[i]]), len(s.domains[unassigned[j]])
		if di != dj {
			return di < dj
		}
		degi, degj := s.degree(unassigned[i], unassigned), s.degree(unassigned[j], unassigned)
		if degi != degj {
			return degi > degj
		}
		return unassigned[i].CourseID < unassigned[j].CourseID
	})
	return unassigned[0]
}

// degree counts other unassigned variables whose live domain shares a
// room or faculty resource with v's live domain.
func (s *Solver) degree(v model.SessionRequirement, unassigned []model.SessionRequirement) int {
	rooms := make(map[model.ClassroomID]bool)
	facs := make(map[model.FacultyID]bool)
	for _, t := range s.domains[v] {
		rooms[t.Room] = true
		facs[t.Faculty] = true
	}

	count := 0
	for _, u := range unassigned {
		if u == v {
			continue
		}
		for _, t := range s.domains[u] {
			if rooms[t.Room] || facs[t.Faculty] {
				count++
				break
			}
		}
	}
	return count
}

// orderDomainValues applies LCV: ascending by the number of values the
// assignment would eliminate from other unassigned variables' domains.
func (s *Solver) orderDomainValues(variable model.SessionRequirement, assignment map[model.SessionRequirement]model.Triple) []model.Triple {
	values := s.domains[variable]
	type scored struct {
		value model.Triple
		count int
	}
	scoredValues := make([]scored, len(values))
	for i, v := range values {
		scoredValues[i] = scored{value: v, count: s.countEliminated(variable, v, assignment)}
	}
	sort.SliceStable(scoredValues, func(i, j int) bool {
		return scoredValues[i].count < scoredValues[j].count
	})
	out := make([]model.Triple, len(scoredValues))
	for i, sv := range scoredValues {
		out[i] = sv.value
	}
	return out
}

func (s *Solver) countEliminated(variable model.SessionRequirement, value model.Triple, assignment map[model.SessionRequirement]model.Triple) int {
	count := 0
	for _, other := range s.variables {
		if other == variable {
			continue
		}
		if _, ok := assignment[other]; ok {
			continue
		}
		for _, otherValue := range s.domains[other] {
			if conflicts(variable, value, other, otherValue, s.courseOf) {
				count++
			}
		}
	}
	return count
}

func conflicts(va model.SessionRequirement, a model.Triple, vb model.SessionRequirement, b model.Triple, courseOf map[model.SessionRequirement]model.Course) bool {
	if va.CourseID == vb.CourseID && va.SessionIndex == vb.SessionIndex {
		return false
	}
	if a.TimeSlot.Overlaps(b.TimeSlot) {
		if a.Faculty == b.Faculty || a.Room == b.Room {
			return true
		}
	}
	return false
}

// consistent checks the candidate assignment against every already
// assigned variable: no resource conflicts (I1/I2) and faculty-hours
// budget respected (I8).
func (s *Solver) consistent(variable model.SessionRequirement, value model.Triple, assignment map[model.SessionRequirement]model.Triple) bool {
	for other, otherValue := range assignment {
		if conflicts(variable, value, other, otherValue, s.courseOf) {
			return false
		}
	}

	course := s.courseOf[variable]
	load := 0
	for other, otherValue := range assignment {
		if otherValue.Faculty == value.Faculty {
			load += s.courseOf[other].DurationMinutes
		}
	}
	load += course.DurationMinutes

	return load <= s.facultyMaxMinutes(value.Faculty)
}

func (s *Solver) facultyMaxMinutes(id model.FacultyID) int {
	if m, ok := s.facultyBudget[id]; ok {
		return m
	}
	return int(^uint(0) >> 1)
}

// forwardCheck prunes, from every other unassigned variable's live domain,
// any triple that would now conflict (I1/I2) or blow the faculty's
// minute budget (I8) given variable's assignment. Returns the removed
// values so the caller can restore them on backtrack.
func (s *Solver) forwardCheck(variable model.SessionRequirement, value model.Triple, assignment map[model.SessionRequirement]model.Triple) map[model.SessionRequirement][]model.Triple {
	removed := make(map[model.SessionRequirement][]model.Triple)
	load := make(map[model.FacultyID]int)
	for v, t := range assignment {
		load[t.Faculty] += s.courseOf[v].DurationMinutes
	}

	for _, other := range s.variables {
		if other == variable {
			continue
		}
		if _, ok := assignment[other]; ok {
			continue
		}

		kept := s.domains[other][:0:0]
		var gone []model.Triple
		for _, candidate := range s.domains[other] {
			if conflicts(variable, value, other, candidate, s.courseOf) {
				gone = append(gone, candidate)
				continue
			}
			if candidate.Faculty == value.Faculty {
				projected := load[candidate.Faculty] + s.courseOf[other].DurationMinutes
				if projected > s.facultyMaxMinutes(candidate.Faculty) {
					gone = append(gone, candidate)
					continue
				}
			}
			kept = append(kept, candidate)
		}
		if len(gone) > 0 {
			removed[other] = s.domains[other]
			s.domains[other] = kept
		}
	}
	return removed
}

func (s *Solver) restoreDomains(removed map[model.SessionRequirement][]model.Triple) {
	for v, dom := range removed {
		s.domains[v] = dom
	}
}
