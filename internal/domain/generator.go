// Package domain materializes, for each session requirement, the ordered
// list of feasible (time-slot, room, faculty) triples that satisfy the
// hard constraints in isolation (I4-I7).
package domain

import (
	"sort"

	"github.com/samber/lo"

	"github.com/rhyrak/go-schedule/pkg/model"
)

// Generator builds per-requirement candidate domains from an entity set.
type Generator struct {
	entities model.EntitySet
	slots    []model.TimeSlot // canonical union of faculty availability windows
}

// New builds a Generator over the given entity set. The canonical
// time-slot set is the union of every faculty's availability windows,
// deduplicated, since §4.1 draws candidate slots from that union.
func New(entities model.EntitySet) *Generator {
	g := &Generator{entities: entities}
	seen := make(map[model.TimeSlot]bool)
	for _, f := range entities.Faculty {
		for _, ts := range f.Availability {
			if !seen[ts] {
				seen[ts] = true
				g.slots = append(g.slots, ts)
			}
		}
	}
	return g
}

// TimeSlots returns the canonical slot set the generator draws candidates
// from.
func (g *Generator) TimeSlots() []model.TimeSlot {
	return g.slots
}

// Domain returns the ranked, feasible triple list for one session
// requirement of the given course, per the §4.1 preference score and its
// deterministic tie-break.
func (g *Generator) Domain(course model.Course) []model.Triple {
	faculty := g.qualifiedFaculty(course)

	type scored struct {
		triple model.Triple
		score  int
	}
	var candidates []scored

	for _, f := range faculty {
		for _, ts := range g.slots {
			if !f.AvailableAt(ts) {
				continue
			}
			if ts.DurationMinutes() < course.DurationMinutes {
				continue
			}
			for _, room := range g.entities.Classrooms {
				if !feasible(course, room, ts) {
					continue
				}
				candidates = append(candidates, scored{
					triple: model.Triple{TimeSlot: ts, Room: room.ID, Faculty: f.ID},
					score:  preferenceScore(course, f, room, ts),
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return tripleLess(candidates[i].triple, candidates[j].triple)
	})

	return lo.Map(candidates, func(c scored, _ int) model.Triple { return c.triple })
}

// qualifiedFaculty returns the faculty eligible to teach the course: those
// explicitly qualified, falling back to every faculty member in the
// course's department when no explicit qualification list narrows it
// further (model.Faculty.QualifiedFor already implements that fallback).
func (g *Generator) qualifiedFaculty(course model.Course) []model.Faculty {
	return lo.Filter(g.entities.Faculty, func(f model.Faculty, _ int) bool {
		return f.QualifiedFor(course)
	})
}

// feasible tests I5-I7 for a single (course, room, time) combination in
// isolation.
func feasible(course model.Course, room model.Classroom, ts model.TimeSlot) bool {
	if course.EnrolledCount > room.Capacity { // I5
		return false
	}
	if !room.HasEquipment(course.RequiredEquipment) { // I6
		return false
	}
	if !course.CompatibleWithRoomType(room.Type) { // I7
		return false
	}
	return true
}

// preferenceScore implements §4.1's static ranking: +3 preferred time,
// +2 preferred day, +1 capacity slack, -1 per unit of unused equipment
// slack (to prefer tight fits).
func preferenceScore(course model.Course, f model.Faculty, room model.Classroom, ts model.TimeSlot) int {
	score := 0
	if f.Prefers(ts) {
		score += 3
	}
	if dayPreferred(course, ts.Day) {
		score += 2
	}
	if float64(room.Capacity) >= 1.2*float64(course.EnrolledCount) {
		score++
	}
	score -= room.UnusedEquipmentSlack(course.RequiredEquipment)
	return score
}

func dayPreferred(course model.Course, day model.Day) bool {
	if len(course.PreferredDays) == 0 {
		return false
	}
	for _, d := range course.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

// tripleLess orders two triples by (day_index, start_time, room_id,
// faculty_id) ascending, the deterministic tie-break §4.1 mandates.
func tripleLess(a, b model.Triple) bool {
	if a.TimeSlot.Day != b.TimeSlot.Day {
		return a.TimeSlot.Day < b.TimeSlot.Day
	}
	if a.TimeSlot.StartMins != b.TimeSlot.StartMins {
		return a.TimeSlot.StartMins < b.TimeSlot.StartMins
	}
	if a.Room != b.Room {
		return a.Room < b.Room
	}
	return a.Faculty < b.Faculty
}
