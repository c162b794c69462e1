package domain

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

func TestDomainFiltersEquipment(t *testing.T) {
	// Arrange
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{{
			ID: "CS101", Department: "CS", CourseType: model.Lecture,
			EnrolledCount: 20, DurationMinutes: 60, RequiredEquipment: []string{"Projector"},
		}},
		Faculty: []model.Faculty{{ID: "F1", Department: "CS", Availability: []model.TimeSlot{slot}}},
		Classrooms: []model.Classroom{
			{ID: "R1", Type: model.ClassroomLecture, Capacity: 30, Equipment: []string{"Projector"}},
			{ID: "R2", Type: model.ClassroomLecture, Capacity: 30},
		},
	}

	// Act
	candidates := New(entities).Domain(entities.Courses[0])

	// Assert
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, model.ClassroomID("R1"), c.Room, "R2 lacks the required Projector")
	}
}

func TestDomainFiltersCapacity(t *testing.T) {
	// Arrange
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{{
			ID: "CS101", Department: "CS", CourseType: model.Lecture,
			EnrolledCount: 60, DurationMinutes: 60,
		}},
		Faculty: []model.Faculty{{ID: "F1", Department: "CS", Availability: []model.TimeSlot{slot}}},
		Classrooms: []model.Classroom{
			{ID: "R1", Type: model.ClassroomLecture, Capacity: 30},
			{ID: "R2", Type: model.ClassroomLecture, Capacity: 80},
		},
	}

	// Act
	candidates := New(entities).Domain(entities.Courses[0])

	// Assert
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, model.ClassroomID("R2"), c.Room)
	}
}

func TestDomainRanksPreferredTimeFirst(t *testing.T) {
	// Arrange
	preferred := mustSlot(t, model.Monday, "09:00", "10:00")
	other := mustSlot(t, model.Monday, "11:00", "12:00")
	entities := model.EntitySet{
		Courses: []model.Course{{
			ID: "CS101", Department: "CS", CourseType: model.Lecture,
			EnrolledCount: 20, DurationMinutes: 60,
		}},
		Faculty: []model.Faculty{{
			ID: "F1", Department: "CS",
			Availability:   []model.TimeSlot{preferred, other},
			PreferredTimes: []model.TimeSlot{preferred},
		}},
		Classrooms: []model.Classroom{{ID: "R1", Type: model.ClassroomLecture, Capacity: 30}},
	}

	// Act
	candidates := New(entities).Domain(entities.Courses[0])

	// Assert
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].TimeSlot.Equal(preferred), "the preferred slot must rank first")
}

func TestDomainFallsBackToDepartmentFaculty(t *testing.T) {
	// Arrange
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	entities := model.EntitySet{
		Courses: []model.Course{{ID: "CS101", Department: "CS", CourseType: model.Lecture, EnrolledCount: 20, DurationMinutes: 60}},
		Faculty: []model.Faculty{
			{ID: "F1", Department: "CS", Availability: []model.TimeSlot{slot}},
			{ID: "F2", Department: "Math", Availability: []model.TimeSlot{slot}},
		},
		Classrooms: []model.Classroom{{ID: "R1", Type: model.ClassroomLecture, Capacity: 30}},
	}

	// Act
	candidates := New(entities).Domain(entities.Courses[0])

	// Assert
	for _, c := range candidates {
		assert.Equal(t, model.FacultyID("F1"), c.Faculty)
	}
}
