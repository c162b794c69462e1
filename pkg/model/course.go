package model

import "fmt"

// CourseID identifies a Course on the boundary.
type CourseID string

// CourseType is the pedagogical format of a course's sessions.
type CourseType string

const (
	Lecture CourseType = "Lecture"
	Lab     CourseType = "Lab"
	Tutorial CourseType = "Tutorial"
	Seminar CourseType = "Seminar"
)

// Course describes a weekly course offering that must be expanded into
// SessionsPerWeek indistinguishable session variables.
type Course struct {
	ID              CourseID
	Code            string
	Name            string
	Department      string
	Semester        string
	Credits         int
	EnrolledCount   int
	CourseType      CourseType
	DurationMinutes int
	SessionsPerWeek int
	RequiredEquipment []string
	PreferredDays   []Day    // optional; nil means no preference
	Batches         []string // optional student-group ids this course serves; used only as a selection filter
}

// Validate checks the structural invariants of a Course in isolation.
func (c Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course: id is required")
	}
	if c.Credits <= 0 {
		return fmt.Errorf("course %s: credits must be positive", c.ID)
	}
	if c.EnrolledCount < 0 {
		return fmt.Errorf("course %s: enrolled_count must be non-negative", c.ID)
	}
	if c.DurationMinutes <= 0 {
		return fmt.Errorf("course %s: duration_minutes must be positive", c.ID)
	}
	if c.SessionsPerWeek < 1 {
		return fmt.Errorf("course %s: sessions_per_week must be at least 1", c.ID)
	}
	switch c.CourseType {
	case Lecture, Lab, Tutorial, Seminar:
	default:
		return fmt.Errorf("course %s: unknown course_type %q", c.ID, c.CourseType)
	}
	return nil
}

// compatibleClassroomTypes maps a course type to the classroom types it may
// be held in, per spec (I7).
var compatibleClassroomTypes = map[CourseType][]ClassroomType{
	Lab:      {ClassroomLab},
	Lecture:  {ClassroomLecture, ClassroomAuditorium},
	Tutorial: {ClassroomTutorial, ClassroomLecture},
	Seminar:  {ClassroomSeminar, ClassroomLecture},
}

// CompatibleWithRoomType reports whether a classroom of the given type may
// host this course's sessions (I7).
func (c Course) CompatibleWithRoomType(t ClassroomType) bool {
	for _, allowed := range compatibleClassroomTypes[c.CourseType] {
		if allowed == t {
			return true
		}
	}
	return false
}

// SessionRequirement is one weekly occurrence of a course that needs a
// (time-slot, room, faculty) assignment.
type SessionRequirement struct {
	CourseID     CourseID
	SessionIndex int // 1-based
}

func (r SessionRequirement) String() string {
	return fmt.Sprintf("%s#%d", r.CourseID, r.SessionIndex)
}

// ExpandSessions returns the stable (course_id, session_index) requirements
// for a course's weekly sessions, in ascending session order.
func ExpandSessions(c Course) []SessionRequirement {
	reqs := make([]SessionRequirement, 0, c.SessionsPerWeek)
	for i := 1; i <= c.SessionsPerWeek; i++ {
		reqs = append(reqs, SessionRequirement{CourseID: c.ID, SessionIndex: i})
	}
	return reqs
}
