package model

import "fmt"

// Triple is a candidate (time-slot, room, faculty) assignment for one
// session requirement.
type Triple struct {
	TimeSlot TimeSlot
	Room     ClassroomID
	Faculty  FacultyID
}

// ScheduleEntry is a committed assignment of a session requirement to a
// (time-slot, room, faculty) triple.
type ScheduleEntry struct {
	Requirement SessionRequirement
	CourseID    CourseID
	FacultyID   FacultyID
	ClassroomID ClassroomID
	TimeSlot    TimeSlot
}

func (e ScheduleEntry) String() string {
	return fmt.Sprintf("%s @ %s room=%s faculty=%s", e.CourseID, e.TimeSlot, e.ClassroomID, e.FacultyID)
}

// Conflicts reports whether two entries violate I1 or I2: overlapping time
// slots with the same faculty or the same classroom.
func (e ScheduleEntry) Conflicts(o ScheduleEntry) bool {
	if !e.TimeSlot.Overlaps(o.TimeSlot) {
		return false
	}
	return e.FacultyID == o.FacultyID || e.ClassroomID == o.ClassroomID
}

// Summary holds the headline statistics of a Schedule.
type Summary struct {
	TotalSessionsScheduled int
	Unscheduled            int
	OptimizationScore      float64
	Conflicts              int
}

// Schedule is an ordered sequence of schedule entries plus a summary.
// Entries are appended incrementally by a solver and frozen on return; the
// analyzer consumes a completed Schedule without mutating it.
type Schedule struct {
	Entries []ScheduleEntry
	Summary Summary
}

// FacultyLoadMinutes returns the summed entry duration per faculty, used to
// check I8 and to report faculty load.
func (s *Schedule) FacultyLoadMinutes() map[FacultyID]int {
	load := make(map[FacultyID]int)
	for _, e := range s.Entries {
		load[e.FacultyID] += e.TimeSlot.DurationMinutes()
	}
	return load
}

// ByRequirement indexes entries by their session requirement, for O(1)
// lookup of whether a given session has already been scheduled (I3).
func (s *Schedule) ByRequirement() map[SessionRequirement]ScheduleEntry {
	idx := make(map[SessionRequirement]ScheduleEntry, len(s.Entries))
	for _, e := range s.Entries {
		idx[e.Requirement] = e
	}
	return idx
}
