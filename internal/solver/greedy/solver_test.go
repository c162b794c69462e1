package greedy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-schedule/pkg/model"
)

func mustSlot(t *testing.T, day model.Day, start, end string) model.TimeSlot {
	t.Helper()
	ts, err := model.NewTimeSlot(day, start, end)
	require.NoError(t, err)
	return ts
}

func TestSolveNeverFailsOnForcedConflict(t *testing.T) {
	// Arrange: scenario 2 — two courses, one shared faculty, one slot.
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{
			{ID: "CS101", CourseType: model.Lecture, Credits: 4, EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1},
			{ID: "CS102", CourseType: model.Lecture, Credits: 3, EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1},
		},
		Faculty: []model.Faculty{{ID: "F1", MaxHoursPerWeek: 10, Availability: []model.TimeSlot{slot}}},
		Classrooms: []model.Classroom{
			{ID: "R1", Type: model.ClassroomLecture, Capacity: 30},
			{ID: "R2", Type: model.ClassroomLecture, Capacity: 30},
		},
	}

	// Act
	schedule := Solve(entities)

	// Assert
	assert.Len(t, schedule.Entries, 1)
	assert.Equal(t, 1, schedule.Summary.Unscheduled)
	assert.Equal(t, model.CourseID("CS101"), schedule.Entries[0].CourseID, "higher credits ranks first")
}

func TestSolvePlacesLabCourseInLabRoom(t *testing.T) {
	// Arrange
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{{
			ID: "CS101", CourseType: model.Lab, Credits: 3,
			EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1,
		}},
		Faculty: []model.Faculty{{ID: "F1", MaxHoursPerWeek: 10, Availability: []model.TimeSlot{slot}}},
		Classrooms: []model.Classroom{
			{ID: "LAB1", Type: model.ClassroomLab, Capacity: 25},
		},
	}

	// Act
	schedule := Solve(entities)

	// Assert
	require.Len(t, schedule.Entries, 1)
	assert.Equal(t, model.ClassroomID("LAB1"), schedule.Entries[0].ClassroomID)
}

func TestSolveDeterministicOrdering(t *testing.T) {
	// Arrange
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{
			{ID: "CS201", CourseType: model.Lecture, Credits: 3, EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1},
			{ID: "CS101", CourseType: model.Lecture, Credits: 3, EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1},
		},
		Faculty: []model.Faculty{
			{ID: "F1", MaxHoursPerWeek: 10, Availability: []model.TimeSlot{slot}},
		},
		Classrooms: []model.Classroom{
			{ID: "R1", Type: model.ClassroomLecture, Capacity: 30},
			{ID: "R2", Type: model.ClassroomLecture, Capacity: 30},
		},
	}

	// Act
	first := Solve(entities)
	second := Solve(entities)

	// Assert
	require.Equal(t, len(first.Entries), len(second.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i], second.Entries[i])
	}
}
