package model

// EntitySet bundles the four input collections the engine solves over.
type EntitySet struct {
	Courses    []Course
	Faculty    []Faculty
	Classrooms []Classroom
}

// CourseByID builds a lookup table from course id to course.
func (e EntitySet) CourseByID() map[CourseID]Course {
	m := make(map[CourseID]Course, len(e.Courses))
	for _, c := range e.Courses {
		m[c.ID] = c
	}
	return m
}

// FacultyByID builds a lookup table from faculty id to faculty.
func (e EntitySet) FacultyByID() map[FacultyID]Faculty {
	m := make(map[FacultyID]Faculty, len(e.Faculty))
	for _, f := range e.Faculty {
		m[f.ID] = f
	}
	return m
}

// ClassroomByID builds a lookup table from classroom id to classroom.
func (e EntitySet) ClassroomByID() map[ClassroomID]Classroom {
	m := make(map[ClassroomID]Classroom, len(e.Classrooms))
	for _, r := range e.Classrooms {
		m[r.ID] = r
	}
	return m
}

// Project returns the subset of the entity set restricted to the given
// course, faculty and batch identifiers. An empty selection set for a
// dimension means "no restriction" on that dimension. Batches are not
// modeled as a first-class entity with its own conflicts (see spec open
// question); selectedBatches only filters which courses are included, by
// matching against Course.Batches.
func (e EntitySet) Project(selectedCourses, selectedFaculty, selectedBatches []string) EntitySet {
	out := EntitySet{}

	courses := e.Courses
	if len(selectedBatches) > 0 {
		wantBatch := toSet(selectedBatches)
		filtered := make([]Course, 0, len(courses))
		for _, c := range courses {
			for _, b := range c.Batches {
				if wantBatch[b] {
					filtered = append(filtered, c)
					break
				}
			}
		}
		courses = filtered
	}

	if len(selectedCourses) == 0 {
		out.Courses = append([]Course(nil), courses...)
	} else {
		want := toSet(selectedCourses)
		for _, c := range courses {
			if want[string(c.ID)] {
				out.Courses = append(out.Courses, c)
			}
		}
	}

	if len(selectedFaculty) == 0 {
		out.Faculty = append([]Faculty(nil), e.Faculty...)
	} else {
		want := toSet(selectedFaculty)
		for _, f := range e.Faculty {
			if want[string(f.ID)] {
				out.Faculty = append(out.Faculty, f)
			}
		}
	}

	out.Classrooms = append([]Classroom(nil), e.Classrooms...)
	return out
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
