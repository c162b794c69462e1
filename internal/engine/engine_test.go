package engine

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

func trivialEntities(t *testing.T) model.EntitySet {
	slot := mustSlot(t, model.Monday, "09:00", "10:00")
	return model.EntitySet{
		Courses: []model.Course{{
			ID: "CS101", CourseType: model.Lecture, Credits: 3,
			EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1,
		}},
		Faculty:    []model.Faculty{{ID: "F1", MaxHoursPerWeek: 10, Availability: []model.TimeSlot{slot}}},
		Classrooms: []model.Classroom{{ID: "R1", Type: model.ClassroomLecture, Capacity: 30}},
	}
}

func TestGenerateTrivialSingleton(t *testing.T) {
	// Act
	result := Generate(DefaultConfig(), trivialEntities(t))

	// Assert
	require.True(t, result.Success)
	require.NotNil(t, result.Schedule)
	assert.Len(t, result.Schedule.Entries, 1)
	assert.GreaterOrEqual(t, result.Statistics.OptimizationScore, 90.0)
	assert.Equal(t, 0, result.Statistics.Conflicts)
}

// TestGenerateZeroCoursesSucceedsWithEmptySchedule grounds §8's boundary
// behavior: zero courses is success, not an error.
func TestGenerateZeroCoursesSucceedsWithEmptySchedule(t *testing.T) {
	// Act
	result := Generate(DefaultConfig(), model.EntitySet{})

	// Assert
	require.True(t, result.Success)
	require.NotNil(t, result.Schedule)
	assert.Empty(t, result.Schedule.Entries)
}

func TestGenerateNoCoursesSelectedIsAnError(t *testing.T) {
	// Arrange
	config := DefaultConfig()
	config.SelectedCourses = []string{"does-not-exist"}

	// Act
	result := Generate(config, trivialEntities(t))

	// Assert
	assert.False(t, result.Success)
	assert.Equal(t, ErrNoCoursesSelected, result.Error)
}

func TestGenerateNoFacultySelectedIsAnError(t *testing.T) {
	// Arrange
	entities := trivialEntities(t)
	config := DefaultConfig()
	config.SelectedFaculty = []string{"does-not-exist"}

	// Act
	result := Generate(config, entities)

	// Assert
	assert.False(t, result.Success)
	assert.Equal(t, ErrNoFacultySelected, result.Error)
}

func TestGenerateEmptyDomainError(t *testing.T) {
	// Arrange: faculty has no availability at all, so CS101 has an empty
	// initial domain.
	entities := model.EntitySet{
		Courses:    []model.Course{{ID: "CS101", CourseType: model.Lecture, Credits: 3, EnrolledCount: 20, DurationMinutes: 60, SessionsPerWeek: 1}},
		Faculty:    []model.Faculty{{ID: "F1", MaxHoursPerWeek: 10}},
		Classrooms: []model.Classroom{{ID: "R1", Type: model.ClassroomLecture, Capacity: 30}},
	}
	config := DefaultConfig()
	config.SolverType = SolverCSP

	// Act
	result := Generate(config, entities)

	// Assert
	assert.False(t, result.Success)
	assert.Equal(t, EmptyDomainError("CS101"), result.Error)
}

func TestGenerateOptimizeIncludesAnalysis(t *testing.T) {
	// Arrange
	config := DefaultConfig()
	config.Optimize = true

	// Act
	result := Generate(config, trivialEntities(t))

	// Assert
	require.True(t, result.Success)
	require.NotNil(t, result.Analysis)
}

func TestGenerateWithoutOptimizeOmitsAnalysis(t *testing.T) {
	// Act
	result := Generate(DefaultConfig(), trivialEntities(t))

	// Assert
	require.True(t, result.Success)
	assert.Nil(t, result.Analysis)
}

func TestGenerateIsDeterministic(t *testing.T) {
	// Arrange
	entities := trivialEntities(t)

	// Act
	first := Generate(DefaultConfig(), entities)
	second := Generate(DefaultConfig(), entities)

	// Assert
	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Schedule.Entries, second.Schedule.Entries)
	assert.Equal(t, first.Statistics.OptimizationScore, second.Statistics.OptimizationScore)
}

func TestGenerateGreedySolverType(t *testing.T) {
	// Arrange
	config := DefaultConfig()
	config.SolverType = SolverGreedy

	// Act
	result := Generate(config, trivialEntities(t))

	// Assert
	require.True(t, result.Success)
	assert.Equal(t, "greedy", result.Statistics.SolverUsed)
}
