package model

import "fmt"

// FacultyID identifies a Faculty member on the boundary.
type FacultyID string

// Faculty is an instructor with availability and teaching constraints.
type Faculty struct {
	ID               FacultyID
	Name             string
	Department       string
	Email            string
	Availability     []TimeSlot // slots the faculty may teach
	MaxHoursPerWeek  int
	PreferredTimes   []TimeSlot // optional subset of Availability
	QualifiedCourses []CourseID // optional; empty means qualified for all in department
}

// Validate checks the structural invariants of a Faculty in isolation.
func (f Faculty) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("faculty: id is required")
	}
	if f.MaxHoursPerWeek <= 0 {
		return fmt.Errorf("faculty %s: max_hours_per_week must be positive", f.ID)
	}
	for _, ts := range f.Availability {
		if !ts.Valid() {
			return fmt.Errorf("faculty %s: invalid availability slot %v", f.ID, ts)
		}
	}
	return nil
}

// AvailableAt reports whether the faculty may teach during the given slot:
// the slot must be contained within one of the faculty's availability
// windows (I4).
func (f Faculty) AvailableAt(t TimeSlot) bool {
	for _, avail := range f.Availability {
		if avail.Day == t.Day && avail.StartMins <= t.StartMins && t.EndMins <= avail.EndMins {
			return true
		}
	}
	return false
}

// Prefers reports whether the given slot lies within one of the faculty's
// preferred windows.
func (f Faculty) Prefers(t TimeSlot) bool {
	for _, pref := range f.PreferredTimes {
		if pref.Day == t.Day && pref.StartMins <= t.StartMins && t.EndMins <= pref.EndMins {
			return true
		}
	}
	return false
}

// QualifiedFor reports whether the faculty may teach the given course.
// Per spec, an empty QualifiedCourses set means qualified for every course
// in the faculty's own department.
func (f Faculty) QualifiedFor(c Course) bool {
	if len(f.QualifiedCourses) == 0 {
		return f.Department == c.Department
	}
	for _, id := range f.QualifiedCourses {
		if id == c.ID {
			return true
		}
	}
	return false
}

// MaxMinutesPerWeek is MaxHoursPerWeek expressed in minutes (I8).
func (f Faculty) MaxMinutesPerWeek() int {
	return f.MaxHoursPerWeek * 60
}
