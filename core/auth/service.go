// Package auth implements the portal's registration and login flows on top
// of the external identity provider and the users collection.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

// User-facing messages. The auth form shows a single summary message, not
// field-scoped errors.
const (
	msgFillAllFields    = "Please fill in all fields"
	msgBadDomainFmt     = "Please use your IIT Roorkee email (%s)"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgPasswordMismatch = "Passwords do not match"
	msgAccountExists    = "Account already exists. Please login."
	msgInvalidEmail     = "Invalid email format"
	msgRegisterFailed   = "Registration failed. Please try again."
	msgNoAccount        = "No account found with this email"
	msgWrongPassword    = "Incorrect password"
	msgLoginFailed      = "Login failed. Please try again."
)

const minPasswordLen = 6

type Service struct {
	provider core.IdentityProvider
	users    user.Repository
	mail     core.EmailService
	conf     *core.Config
	log      core.Logger
}

func NewService(provider core.IdentityProvider, users user.Repository, mailSvc core.EmailService, conf *core.Config, log core.Logger) *Service {
	return &Service{provider: provider, users: users, mail: mailSvc, conf: conf, log: log}
}

// Registration is the register form. Role is picked once, here.
type Registration struct {
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	PasswordConfirm string    `json:"password_confirm"`
	Role            user.Role `json:"role"`
}

// Validate applies the registration rules: all fields set, institutional
// email suffix, password length and confirmation.
func (r *Registration) Validate(emailDomain string) error {
	r.Email = core.CleanString(r.Email)

	if r.Email == "" || r.Password == "" || r.PasswordConfirm == "" || !r.Role.Valid() {
		return core.NewValidationError(errors.New(msgFillAllFields))
	}
	if !strings.HasSuffix(r.Email, emailDomain) {
		return core.NewValidationError(fmt.Errorf(msgBadDomainFmt, emailDomain))
	}
	if len(r.Password) < minPasswordLen {
		return core.NewValidationError(errors.New(msgPasswordTooShort))
	}
	if r.Password != r.PasswordConfirm {
		return core.NewValidationError(errors.New(msgPasswordMismatch))
	}
	return nil
}

// Register creates the identity-provider account, then writes the
// role-appropriate empty-default user record. It does not sign the caller in;
// the session manager resolves whatever state the provider ends up in.
func (svc *Service) Register(ctx context.Context, reg Registration) (user.User, error) {
	if err := reg.Validate(svc.conf.EmailDomain); err != nil {
		return user.User{}, err
	}

	identity, err := svc.provider.CreateAccount(ctx, reg.Email, reg.Password)
	if err != nil {
		switch errors.Cause(err) {
		case core.ErrEmailInUse:
			return user.User{}, core.NewValidationError(errors.New(msgAccountExists))
		case core.ErrInvalidEmail:
			return user.User{}, core.NewValidationError(errors.New(msgInvalidEmail))
		}
		svc.log.Error("creating account", errors.Wrap(err, "creating account"))
		return user.User{}, core.NewValidationError(errors.New(msgRegisterFailed))
	}

	usr := user.New(identity.ID, identity.Email, reg.Role, time.Now().UTC())
	if err := svc.users.Create(ctx, usr); err != nil {
		svc.log.Error("writing user record", errors.Wrap(err, "writing user record"), usr)
		return user.User{}, core.NewValidationError(errors.New(msgRegisterFailed))
	}

	svc.sendWelcomeEmail(usr)
	return usr, nil
}

// Login checks the credentials with the provider and returns the user record.
func (svc *Service) Login(ctx context.Context, email, password string) (user.User, error) {
	email = core.CleanString(email)
	if email == "" || password == "" {
		return user.User{}, core.NewValidationError(errors.New(msgFillAllFields))
	}

	identity, err := svc.provider.SignIn(ctx, email, password)
	if err != nil {
		switch errors.Cause(err) {
		case core.ErrAccountNotFound:
			return user.User{}, core.NewValidationError(errors.New(msgNoAccount))
		case core.ErrWrongPassword:
			return user.User{}, core.NewValidationError(errors.New(msgWrongPassword))
		case core.ErrInvalidEmail:
			return user.User{}, core.NewValidationError(errors.New(msgInvalidEmail))
		}
		svc.log.Error("signing in", errors.Wrap(err, "signing in"))
		return user.User{}, core.NewValidationError(errors.New(msgLoginFailed))
	}

	usr, err := svc.users.Get(ctx, identity.ID)
	if err != nil {
		// an identity without a user record cannot use the portal; fail closed
		return user.User{}, errors.Wrap(err, "loading user record")
	}
	return usr, nil
}

func (svc *Service) Logout(ctx context.Context) error {
	return svc.provider.SignOut(ctx)
}

func (svc *Service) sendWelcomeEmail(usr user.User) {
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: usr.Email}},
		Subject: "Welcome to " + svc.conf.AppName,
		Body: "Your account has been created.\n\n" +
			"Log in to browse research projects and complete your profile.",
	})
}
