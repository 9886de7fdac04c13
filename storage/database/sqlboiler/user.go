package boiledrepos

import (
	"context"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
)

var usersTable = table{
	name:    "users",
	columns: []string{"email", "password_hash", "role", "is_verified"},
}

type userRow struct {
	ID           int    `boil:"id"`
	Email        string `boil:"email"`
	PasswordHash string `boil:"password_hash"`
	Role         string `boil:"role"`
	IsVerified   bool   `boil:"is_verified"`
}

func (r *userRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.Email, &r.PasswordHash, &r.Role, &r.IsVerified}
}

type userRepository struct {
	baseRepository
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{baseRepository{exec: exec}}
}

func (repo userRepository) boil(usr user.User) []interface{} {
	return []interface{}{usr.Email, string(usr.PasswordHash), usr.Role, usr.IsVerified}
}

func (repo userRepository) unboil(r userRow) user.User {
	return user.User{
		ID:           r.ID,
		Email:        r.Email,
		Role:         r.Role,
		IsVerified:   r.IsVerified,
		PasswordHash: []byte(r.PasswordHash),
	}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	var r userRow
	if err := repo.insert(ctx, usersTable, r.dest(), repo.boil(usr), exec); err != nil {
		return user.User{}, err
	}
	return repo.unboil(r), nil
}

func (repo userRepository) QueryUsers(ctx context.Context, exec ...core.DBExecutor) ([]user.User, error) {
	var rows []userRow
	if err := repo.all(ctx, usersTable, &rows, exec); err != nil {
		return nil, err
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, repo.unboil(r))
	}
	return users, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error) {
	var r userRow
	if err := repo.one(ctx, usersTable, &r, user.ErrNotFound, exec, `"id" = $1`, id); err != nil {
		return user.User{}, err
	}
	return repo.unboil(r), nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (user.User, error) {
	var r userRow
	if err := repo.one(ctx, usersTable, &r, user.ErrNotFound, exec, `"email" = $1`, email); err != nil {
		return user.User{}, err
	}
	return repo.unboil(r), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	var r userRow
	if err := repo.update(ctx, usersTable, r.dest(), user.ErrNotFound, usr.ID, repo.boil(usr), exec); err != nil {
		return user.User{}, err
	}
	return repo.unboil(r), nil
}

func (repo userRepository) DeleteUser(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.delete(ctx, usersTable, user.ErrNotFound, id, exec)
}
