package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/kat-co/vala"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studysphere/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// compared against when no user matches a login email, so both failures cost one bcrypt round.
	dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		QueryUsers(ctx context.Context, exec ...core.DBExecutor) ([]User, error)
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (User, error)
		GetUserByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUser(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
		tokens  *tokenGenerator
		baseURL string
	}

	verifyEmailData struct {
		VerifyURL string
		ValidFor  string
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(mailSvc, "mailSvc"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
		tokens:  newTokenGenerator(conf.SecretKey, conf.EmailVerifyMaxAge),
		baseURL: conf.BaseURL,
	}
}

// Create registers a new User and sends them an email verification link once the User is committed.
func (svc *Service) Create(ctx context.Context, nu NewUser, exec ...core.DBExecutor) (User, error) {
	usr := User{
		Email: nu.Email,
		Role:  nu.Role,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, pkgerrors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr, exec...)
	if err != nil {
		return User{}, err
	}

	core.AfterCommit(ctx, func() { svc.sendVerificationMail(usr) })
	return usr, nil
}

func (svc *Service) Query(ctx context.Context, exec ...core.DBExecutor) ([]User, error) {
	return svc.repo.QueryUsers(ctx, exec...)
}

func (svc *Service) GetByID(ctx context.Context, id int, exec ...core.DBExecutor) (User, error) {
	return svc.repo.GetUserByID(ctx, id, exec...)
}

func (svc *Service) GetByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */), exec...)
}

// Update saves an already validated UpdateUser onto usr.
func (svc *Service) Update(ctx context.Context, usr User, uu UpdateUser, exec ...core.DBExecutor) (User, error) {
	if uu.Email != usr.Email {
		usr.IsVerified = false
	}
	usr.Email = uu.Email
	usr.Role = uu.Role
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, pkgerrors.Wrap(err, "hashing password")
		}
	}
	return svc.repo.UpdateUser(ctx, usr, exec...)
}

func (svc *Service) Delete(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return svc.repo.DeleteUser(ctx, id, exec...)
}

// Authenticate returns the User matching the credentials.
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string, exec ...core.DBExecutor) (User, error) {
	usr, err := svc.GetByEmail(ctx, email, exec...)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = (&User{PasswordHash: dummyHash}).CheckPassword(pwd)
			return User{}, ErrInvalidCredentials
		}
		return User{}, pkgerrors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// MakeEmailToken returns a signed, time-limited token encoding email.
func (svc *Service) MakeEmailToken(email string) string {
	return svc.tokens.makeToken(email)
}

// VerifyEmail checks the token and marks its User as verified.
func (svc *Service) VerifyEmail(ctx context.Context, token string, exec ...core.DBExecutor) (User, error) {
	email, err := svc.tokens.verifyToken(token)
	if err != nil {
		return User{}, err
	}
	usr, err := svc.GetByEmail(ctx, email, exec...)
	if err != nil {
		return User{}, err
	}
	if usr.IsVerified {
		return usr, nil
	}
	usr.IsVerified = true
	return svc.repo.UpdateUser(ctx, usr, exec...)
}

func (svc *Service) sendVerificationMail(usr User) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: usr.Email}},
		Subject:      "Please verify your email address",
		TemplateName: "verify_email",
		TemplateData: verifyEmailData{
			VerifyURL: fmt.Sprintf("%s/verify/%s", svc.baseURL, svc.MakeEmailToken(usr.Email)),
			ValidFor:  svc.tokens.maxAge.String(),
		},
	}
	svc.mailSvc.SendMessages(msg)
}
