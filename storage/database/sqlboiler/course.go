package boiledrepos

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/class"
	"github.com/trezcool/studysphere/core/course"
)

// courses and classes share the same layout.
var (
	courseColumns = []string{"name", "description", "schedule", "teacher_id"}
	coursesTable  = table{name: "courses", columns: courseColumns}
	classesTable  = table{name: "classes", columns: courseColumns}
)

type courseRow struct {
	ID          int         `boil:"id"`
	Name        string      `boil:"name"`
	Description null.String `boil:"description"`
	Schedule    null.String `boil:"schedule"`
	TeacherID   int         `boil:"teacher_id"`
}

func (r *courseRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.Description, &r.Schedule, &r.TeacherID}
}

func (r courseRow) course() course.Course {
	return course.Course{ID: r.ID, Name: r.Name, Description: r.Description, Schedule: r.Schedule, TeacherID: r.TeacherID}
}

func (r courseRow) class() class.Class {
	return class.Class{ID: r.ID, Name: r.Name, Description: r.Description, Schedule: r.Schedule, TeacherID: r.TeacherID}
}

type courseRepository struct {
	baseRepository
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{baseRepository{exec: exec}}
}

func (repo courseRepository) boil(c course.Course) []interface{} {
	return []interface{}{c.Name, c.Description, c.Schedule, c.TeacherID}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	var r courseRow
	if err := repo.insert(ctx, coursesTable, r.dest(), repo.boil(c), exec); err != nil {
		return course.Course{}, err
	}
	return r.course(), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, exec ...core.DBExecutor) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.all(ctx, coursesTable, &rows, exec); err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.course())
	}
	return courses, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int, exec ...core.DBExecutor) (course.Course, error) {
	var r courseRow
	if err := repo.one(ctx, coursesTable, &r, course.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return course.Course{}, err
	}
	return r.course(), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	var r courseRow
	if err := repo.update(ctx, coursesTable, r.dest(), course.ErrNotFound, c.ID, repo.boil(c), exec); err != nil {
		return course.Course{}, err
	}
	return r.course(), nil
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, coursesTable, course.ErrNotFound, id, exec)
}

type classRepository struct {
	baseRepository
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(exec core.DBExecutor) *classRepository {
	return &classRepository{baseRepository{exec: exec}}
}

func (repo classRepository) boil(c class.Class) []interface{} {
	return []interface{}{c.Name, c.Description, c.Schedule, c.TeacherID}
}

func (repo classRepository) CreateClass(ctx context.Context, c class.Class, exec ...core.DBExecutor) (class.Class, error) {
	var r courseRow
	if err := repo.insert(ctx, classesTable, r.dest(), repo.boil(c), exec); err != nil {
		return class.Class{}, err
	}
	return r.class(), nil
}

func (repo classRepository) QueryClasses(ctx context.Context, exec ...core.DBExecutor) ([]class.Class, error) {
	var rows []courseRow
	if err := repo.all(ctx, classesTable, &rows, exec); err != nil {
		return nil, err
	}
	classes := make([]class.Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, r.class())
	}
	return classes, nil
}

func (repo classRepository) GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (class.Class, error) {
	var r courseRow
	if err := repo.one(ctx, classesTable, &r, class.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return class.Class{}, err
	}
	return r.class(), nil
}

func (repo classRepository) UpdateClass(ctx context.Context, c class.Class, exec ...core.DBExecutor) (class.Class, error) {
	var r courseRow
	if err := repo.update(ctx, classesTable, r.dest(), class.ErrNotFound, c.ID, repo.boil(c), exec); err != nil {
		return class.Class{}, err
	}
	return r.class(), nil
}

func (repo classRepository) DeleteClass(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, classesTable, class.ErrNotFound, id, exec)
}
