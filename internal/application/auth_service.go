package application

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
	"github.com/chirper-app/chirper/pkg/mailer"
)

// EmailPublisher queues email jobs for the worker. Nil-able for local runs
// without RabbitMQ.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Users        repository.UserRepository
	JWT          *helpers.JWTManager
	Emails       EmailPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, emails EmailPublisher, es *elasticsearch.Client, esUsersIndex string, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Emails: emails, ES: es, ESUsersIndex: esUsersIndex, Logger: logger}
}

type SignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

type TokenOutput struct {
	Token string `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*TokenOutput, error) {
	existing, err := s.Users.GetByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("USER_ALREADY_EXISTS")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    strings.ToLower(in.Email),
		Username: in.Username,
		Password: hash,
		Name:     in.Name,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// The pre-check can race a concurrent signup; the unique index is
		// the real guard.
		if err == repository.ErrDuplicate {
			return nil, apperror.Conflict("USER_ALREADY_EXISTS")
		}
		return nil, err
	}

	if s.Emails != nil {
		job := mailer.EmailJob{To: u.Email, Username: u.Username, Name: u.Name}
		if err := s.Emails.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}
	indexUser(ctx, s.ES, s.ESUsersIndex, s.Logger, u)

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenOutput{Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenOutput, error) {
	u, err := s.Users.GetByEmailOrUsername(ctx, strings.ToLower(in.Email), in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user")
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperror.Unauthorized("INCORRECT_PASSWORD")
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenOutput{Token: token}, nil
}
