// Package constraint exposes the pairwise and per-entity conflict checks
// the solvers and validator share.
package constraint

import (
	"github.com/rhyrak/go-schedule/pkg/model"
)

// Violation names a class of invariant breach, as reported by Violations.
type Violation string

const (
	ViolationFacultyDoubleBooked   Violation = "faculty_double_booked"
	ViolationClassroomDoubleBooked Violation = "classroom_double_booked"
	ViolationSessionDuplicated     Violation = "session_duplicated"
	ViolationFacultyUnavailable    Violation = "faculty_unavailable"
	ViolationCapacityExceeded      Violation = "capacity_exceeded"
	ViolationEquipmentMissing      Violation = "equipment_missing"
	ViolationRoomTypeIncompatible  Violation = "room_type_incompatible"
	ViolationFacultyOverloaded     Violation = "faculty_overloaded"
)

// Checker evaluates entries and candidates against a fixed entity set.
type Checker struct {
	courses    map[model.CourseID]model.Course
	faculty    map[model.FacultyID]model.Faculty
	classrooms map[model.ClassroomID]model.Classroom
}

// New builds a Checker over the given entity set.
func New(entities model.EntitySet) *Checker {
	return &Checker{
		courses:    entities.CourseByID(),
		faculty:    entities.FacultyByID(),
		classrooms: entities.ClassroomByID(),
	}
}

// Compatible reports whether two entries are conflict-free under I1-I3:
// no overlapping-time clash on faculty or classroom, and not the same
// session requirement assigned twice (unless it's the identical entry).
func Compatible(a, b model.ScheduleEntry) bool {
	if a.Requirement == b.Requirement {
		return a == b
	}
	if a.TimeSlot.Overlaps(b.TimeSlot) {
		if a.FacultyID == b.FacultyID || a.ClassroomID == b.ClassroomID {
			return false
		}
	}
	return true
}

// Admits reports whether candidate may be added to schedule: conflict-free
// against every committed entry (I1-I3) and within the assigned faculty's
// weekly minute budget once added (I8).
func (c *Checker) Admits(schedule *model.Schedule, candidate model.ScheduleEntry) bool {
	for _, existing := range schedule.Entries {
		if !Compatible(candidate, existing) {
			return false
		}
	}

	f, ok := c.faculty[candidate.FacultyID]
	if !ok {
		return false
	}
	load := schedule.FacultyLoadMinutes()[candidate.FacultyID]
	return load+candidate.TimeSlot.DurationMinutes() <= f.MaxMinutesPerWeek()
}

// Violations reports every invariant breach (I1-I8) present in schedule.
// Each kind of breach is reported at most once, however many entries or
// entry pairs exhibit it, keeping the report a concise summary.
func (c *Checker) Violations(schedule *model.Schedule) []Violation {
	var out []Violation
	seenFaculty, seenRoom, seenDup := false, false, false

	seenReqs := make(map[model.SessionRequirement]model.ScheduleEntry)
	for _, e := range schedule.Entries {
		if prior, ok := seenReqs[e.Requirement]; ok && prior != e {
			seenDup = true
		}
		seenReqs[e.Requirement] = e
	}
	if seenDup {
		out = append(out, ViolationSessionDuplicated)
	}

	for i := 0; i < len(schedule.Entries); i++ {
		for j := i + 1; j < len(schedule.Entries); j++ {
			a, b := schedule.Entries[i], schedule.Entries[j]
			if !a.TimeSlot.Overlaps(b.TimeSlot) {
				continue
			}
			if a.FacultyID == b.FacultyID && !seenFaculty {
				seenFaculty = true
				out = append(out, ViolationFacultyDoubleBooked)
			}
			if a.ClassroomID == b.ClassroomID && !seenRoom {
				seenRoom = true
				out = append(out, ViolationClassroomDoubleBooked)
			}
		}
	}

	unavailable, capacity, equipment, roomType := false, false, false, false
	for _, e := range schedule.Entries {
		f, fok := c.faculty[e.FacultyID]
		course, cok := c.courses[e.CourseID]
		room, rok := c.classrooms[e.ClassroomID]
		if !fok || !cok || !rok {
			continue
		}
		if !f.AvailableAt(e.TimeSlot) && !unavailable {
			unavailable = true
			out = append(out, ViolationFacultyUnavailable)
		}
		if course.EnrolledCount > room.Capacity && !capacity {
			capacity = true
			out = append(out, ViolationCapacityExceeded)
		}
		if !room.HasEquipment(course.RequiredEquipment) && !equipment {
			equipment = true
			out = append(out, ViolationEquipmentMissing)
		}
		if !course.CompatibleWithRoomType(room.Type) && !roomType {
			roomType = true
			out = append(out, ViolationRoomTypeIncompatible)
		}
	}

	for fid, minutes := range schedule.FacultyLoadMinutes() {
		f, ok := c.faculty[fid]
		if ok && minutes > f.MaxMinutesPerWeek() {
			out = append(out, ViolationFacultyOverloaded)
			break
		}
	}

	return out
}
