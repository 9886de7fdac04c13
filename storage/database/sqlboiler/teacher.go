package boiledrepos

import (
	"context"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/teacher"
)

var teachersTable = table{
	name:    "teachers",
	columns: []string{"user_id", "name"},
}

type teacherRow struct {
	ID     int    `boil:"id"`
	UserID int    `boil:"user_id"`
	Name   string `boil:"name"`
}

func (r *teacherRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.UserID, &r.Name}
}

func (r teacherRow) unboil() teacher.Teacher {
	return teacher.Teacher{ID: r.ID, UserID: r.UserID, Name: r.Name}
}

type teacherRepository struct {
	baseRepository
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(exec core.DBExecutor) *teacherRepository {
	return &teacherRepository{baseRepository{exec: exec}}
}

func (repo teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher, exec ...core.DBExecutor) (teacher.Teacher, error) {
	var r teacherRow
	if err := repo.insert(ctx, teachersTable, r.dest(), []interface{}{t.UserID, t.Name}, exec); err != nil {
		return teacher.Teacher{}, err
	}
	return r.unboil(), nil
}

func (repo teacherRepository) QueryTeachers(ctx context.Context, exec ...core.DBExecutor) ([]teacher.Teacher, error) {
	var rows []teacherRow
	if err := repo.all(ctx, teachersTable, &rows, exec); err != nil {
		return nil, err
	}
	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, r := range rows {
		teachers = append(teachers, r.unboil())
	}
	return teachers, nil
}

func (repo teacherRepository) GetTeacher(ctx context.Context, id int, exec ...core.DBExecutor) (teacher.Teacher, error) {
	var r teacherRow
	if err := repo.one(ctx, teachersTable, &r, teacher.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return teacher.Teacher{}, err
	}
	return r.unboil(), nil
}

func (repo teacherRepository) UpdateTeacher(ctx context.Context, t teacher.Teacher, exec ...core.DBExecutor) (teacher.Teacher, error) {
	var r teacherRow
	if err := repo.update(ctx, teachersTable, r.dest(), teacher.ErrNotFound, t.ID, []interface{}{t.UserID, t.Name}, exec); err != nil {
		return teacher.Teacher{}, err
	}
	return r.unboil(), nil
}

func (repo teacherRepository) DeleteTeacher(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, teachersTable, teacher.ErrNotFound, id, exec)
}
