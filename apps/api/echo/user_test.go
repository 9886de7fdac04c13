package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysphere/core/user"
	"github.com/trezcool/studysphere/testutil"
)

func Test_userApi_create(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)
	teacher := testutil.CreateUser(t, env.db, user.RoleTeacher, "teacher@test.cd")

	newUser := func(email, pwd, role string) []byte {
		return marchallObj(t, user.NewUser{Email: email, Password: pwd, Role: role})
	}
	required := "this field is required"
	dupEmail := "a user with this email already exists"

	env.runTests([]httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/users", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{
				"email": required, "password": required, "role": required,
			}),
		},
		{
			name: "numeric password", method: http.MethodPost, path: "/users", body: newUser("num@test.cd", "12345678", user.RoleStudent),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{
				"password": "password cannot be entirely numeric",
			}),
		},
		{
			name: "password like email", method: http.MethodPost, path: "/users", body: newUser("johndoe@test.cd", "johndoe1", user.RoleStudent),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{
				"password": "password is too similar to the email address",
			}),
		},
		{name: "bad role", method: http.MethodPost, path: "/users", body: newUser("x@test.cd", "Pass#word1", "Janitor"), wantCode: http.StatusBadRequest},
		{
			name: "duplicate email", method: http.MethodPost, path: "/users", body: newUser(" Teacher@Test.cd", "Pass#word1", user.RoleStudent),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, dupEmail, map[string]string{"email": dupEmail}),
		},
		{
			name: "admin without token", method: http.MethodPost, path: "/users", body: newUser("boss@test.cd", "Pass#word1", user.RoleAdmin),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "admin by teacher", method: http.MethodPost, path: "/users", body: newUser("boss@test.cd", "Pass#word1", user.RoleAdmin),
			token: env.token(teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "admin by admin", method: http.MethodPost, path: "/users", body: newUser("boss@test.cd", "Pass#word1", user.RoleAdmin),
			token: env.token(admin), wantCode: http.StatusCreated,
		},
	})
	// only the admin created above got a verification mail
	require.Len(t, env.mail.SentMessages(), 1)

	t.Run("public student", func(t *testing.T) {
		rec := env.run(httpTest{method: http.MethodPost, path: "/users", body: newUser(" Awe@Test.cd ", "Pass#word1", user.RoleStudent)})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got map[string]interface{}
		decode(t, rec, &got)
		assert.Equal(t, "awe@test.cd", got["email"])
		assert.Equal(t, user.RoleStudent, got["role"])
		assert.Equal(t, false, got["is_verified"])
		assert.NotContains(t, got, "password")
		assert.NotContains(t, got, "password_hash")

		sent := env.mail.SentMessages()
		require.Len(t, sent, 2)
		assert.Equal(t, "awe@test.cd", sent[1].To[0].Address)
	})
}

func Test_userApi_query(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)
	teacher := testutil.CreateUser(t, env.db, user.RoleTeacher)

	env.runTests([]httpTest{
		{name: "auth required", path: "/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "admin required", path: "/users", token: env.token(teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "all", path: "/users", token: env.token(admin),
			wantData: marchallObj(t, echo.Map{"count": 2, "users": []user.User{admin, teacher}}),
		},
	})
}

func Test_userApi_retrieve(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)
	teacher := testutil.CreateUser(t, env.db, user.RoleTeacher)
	student := testutil.CreateUser(t, env.db, user.RoleStudent)

	path := func(id int) string { return fmt.Sprintf("/users/%d", id) }
	notFound := errBody(t, http.StatusNotFound, "not found")

	env.runTests([]httpTest{
		{name: "auth required", path: path(student.ID), wantCode: http.StatusUnauthorized},
		{name: "self", path: path(student.ID), token: env.token(student), wantData: marchallObj(t, student)},
		{name: "someone else", path: path(teacher.ID), token: env.token(student), wantCode: http.StatusNotFound, wantData: notFound},
		{name: "admin", path: path(teacher.ID), token: env.token(admin), wantData: marchallObj(t, teacher)},
		{
			name: "unknown", path: path(teacher.ID + 100), token: env.token(admin),
			wantCode: http.StatusNotFound, wantData: errBody(t, http.StatusNotFound, user.ErrNotFound.Error()),
		},
		{name: "non-int id", path: "/users/lol", token: env.token(admin), wantCode: http.StatusNotFound, wantData: notFound},
	})
}

func Test_userApi_update(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)
	student := testutil.CreateUser(t, env.db, user.RoleStudent)
	_, err := env.db.Exec(`UPDATE users SET is_verified = $1 WHERE id = $2`, true, student.ID)
	require.NoError(t, err)
	student.IsVerified = true

	path := fmt.Sprintf("/users/%d", student.ID)
	studentToken := env.token(student)

	env.runTests([]httpTest{
		{
			name: "empty fields are ignored", method: http.MethodPut, path: path, token: studentToken,
			body: []byte(`{"email":"","role":"","password":""}`), wantData: marchallObj(t, student),
		},
		{
			name: "role change needs admin", method: http.MethodPut, path: path, token: studentToken,
			body: []byte(`{"role":"Admin"}`), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "same role is fine", method: http.MethodPut, path: path, token: studentToken,
			body: []byte(`{"role":"Student"}`), wantData: marchallObj(t, student),
		},
		{
			name: "weak password", method: http.MethodPut, path: path, token: studentToken,
			body: []byte(`{"password":"short"}`), wantCode: http.StatusBadRequest,
			wantData: errBody(t, http.StatusBadRequest, "invalid input", map[string]string{
				"password": "password must contain at least 8 characters",
			}),
		},
		{
			name: "email taken", method: http.MethodPut, path: path, token: studentToken,
			body: marchallObj(t, echo.Map{"email": admin.Email}), wantCode: http.StatusBadRequest,
		},
	})

	t.Run("new email resets verification", func(t *testing.T) {
		rec := env.run(httpTest{method: http.MethodPut, path: path, token: studentToken, body: []byte(`{"email":"New@test.cd","password":"N3w#pass!"}`)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		usr, err := env.srv.deps.UserSvc.GetByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, "new@test.cd", usr.Email)
		assert.False(t, usr.IsVerified)
		assert.NoError(t, usr.CheckPassword("N3w#pass!"))
	})

	t.Run("admin changes role", func(t *testing.T) {
		rec := env.run(httpTest{method: http.MethodPut, path: path, token: env.token(admin), body: []byte(`{"role":"Teacher"}`)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got user.User
		decode(t, rec, &got)
		assert.Equal(t, user.RoleTeacher, got.Role)
	})
}

func Test_userApi_destroy(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.db, user.RoleAdmin)
	teacher := testutil.CreateUser(t, env.db, user.RoleTeacher)
	adminToken := env.token(admin)

	path := func(id int) string { return fmt.Sprintf("/users/%d", id) }

	env.runTests([]httpTest{
		{name: "admin required", method: http.MethodDelete, path: path(teacher.ID), token: env.token(teacher), wantCode: http.StatusForbidden},
		{name: "not self", method: http.MethodDelete, path: path(admin.ID), token: adminToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "unknown", method: http.MethodDelete, path: path(teacher.ID + 100), token: adminToken, wantCode: http.StatusNotFound},
		{name: "success", method: http.MethodDelete, path: path(teacher.ID), token: adminToken, wantCode: http.StatusNoContent, wantData: []byte{}},
		{name: "gone", path: path(teacher.ID), token: adminToken, wantCode: http.StatusNotFound},
	})
}
