package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
	"github.com/trezcool/studysphere/services/email"
	"github.com/trezcool/studysphere/storage/database/sqlboiler"
	"github.com/trezcool/studysphere/testutil"
)

type mailRecorder interface {
	core.EmailService
	SentMessages() []core.EmailMessage
}

func setup(t *testing.T) (*user.Service, mailRecorder) {
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	return user.NewService(boiledrepos.NewUserRepository(db), mailSvc, logger, conf), mailSvc
}

func TestService_Create(t *testing.T) {
	svc, mailSvc := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Email: "awe@test.cd", Password: "Pass#word1", Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.NotZero(t, usr.ID)
	assert.False(t, usr.IsVerified)
	assert.NoError(t, usr.CheckPassword("Pass#word1"))

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "awe@test.cd", sent[0].To[0].Address)
	assert.Equal(t, "Please verify your email address", sent[0].Subject)
	assert.Contains(t, sent[0].TextContent, "http://localhost:8000/verify/")
}

func TestService_Create_inTransaction(t *testing.T) {
	svc, mailSvc := setup(t)
	ctx, hooks := core.WithCommitHooks(context.Background())

	_, err := svc.Create(ctx, user.NewUser{Email: "awe@test.cd", Password: "Pass#word1", Role: user.RoleStudent})
	require.NoError(t, err)
	assert.Empty(t, mailSvc.SentMessages(), "mail sent before commit")

	hooks.Run()
	require.Len(t, mailSvc.SentMessages(), 1)

	hooks.Run()
	assert.Len(t, mailSvc.SentMessages(), 1, "hooks ran twice")
}

func TestService_VerifyEmail(t *testing.T) {
	svc, mailSvc := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Email: "awe@test.cd", Password: "Pass#word1", Role: user.RoleStudent})
	require.NoError(t, err)

	// the mailed link carries the token
	text := mailSvc.SentMessages()[0].TextContent
	start := strings.Index(text, "/verify/") + len("/verify/")
	token := strings.Fields(text[start:])[0]

	verified, err := svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, usr.ID, verified.ID)

	_, err = svc.VerifyEmail(ctx, token+"x")
	assert.Equal(t, user.ErrInvalidToken, err)

	_, err = svc.VerifyEmail(ctx, svc.MakeEmailToken("ghost@test.cd"))
	assert.Equal(t, user.ErrNotFound, err)

	origNow := user.NowFunc
	user.NowFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
	defer func() { user.NowFunc = origNow }()
	_, err = svc.VerifyEmail(ctx, token)
	assert.Equal(t, user.ErrTokenExpired, err)
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Email: "awe@test.cd", Password: "Pass#word1", Role: user.RoleAdmin})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, " AWE@test.cd ", "Pass#word1")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = svc.Authenticate(ctx, "awe@test.cd", "wrong-password")
	assert.Equal(t, user.ErrInvalidCredentials, err)

	_, err = svc.Authenticate(ctx, "nobody@test.cd", "Pass#word1")
	assert.Equal(t, user.ErrInvalidCredentials, err)
}

func TestService_Update(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Email: "awe@test.cd", Password: "Pass#word1", Role: user.RoleStudent})
	require.NoError(t, err)
	usr, err = svc.VerifyEmail(ctx, svc.MakeEmailToken(usr.Email))
	require.NoError(t, err)
	require.True(t, usr.IsVerified)

	// role only: verification is kept
	updated, err := svc.Update(ctx, usr, user.UpdateUser{Email: usr.Email, Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, updated.Role)
	assert.True(t, updated.IsVerified)

	// new email: must be verified again
	updated, err = svc.Update(ctx, updated, user.UpdateUser{Email: "new@test.cd", Role: updated.Role, Password: "N3w#secret"})
	require.NoError(t, err)
	assert.Equal(t, "new@test.cd", updated.Email)
	assert.False(t, updated.IsVerified)
	assert.NoError(t, updated.CheckPassword("N3w#secret"))
}
