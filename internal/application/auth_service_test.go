package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
	"github.com/chirper-app/chirper/pkg/mailer"
)

func newAuthFixture() (*AuthService, *memUserRepo, *fakePublisher, *helpers.JWTManager) {
	users := newMemUserRepo()
	pub := &fakePublisher{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, pub, nil, "users", logger), users, pub, jwt
}

func TestAuthService_Signup(t *testing.T) {
	svc, users, pub, jwt := newAuthFixture()
	ctx := context.Background()

	t.Run("creates user and returns a parsable token", func(t *testing.T) {
		out, err := svc.Signup(ctx, SignupInput{
			Email:    "Alice@Example.com",
			Username: "alice",
			Password: "s3cretpass",
			Name:     "Alice",
		})
		require.NoError(t, err)
		require.NotEmpty(t, out.Token)

		u, err := users.GetByEmailOrUsername(ctx, "alice@example.com", "")
		require.NoError(t, err)
		require.NotNil(t, u, "email should be stored lowercased")
		assert.NotEqual(t, "s3cretpass", u.Password, "password must be hashed")

		claims, err := jwt.ParseToken(out.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("enqueues a welcome email", func(t *testing.T) {
		require.Len(t, pub.jobs, 1)
		job, ok := pub.jobs[0].Body.(mailer.EmailJob)
		require.True(t, ok, "queued body should be an EmailJob")
		assert.Equal(t, "alice@example.com", job.To)
		assert.Equal(t, "alice", job.Username)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{
			Email:    "alice@example.com",
			Username: "alice2",
			Password: "s3cretpass",
		})
		assert.Equal(t, "USER_ALREADY_EXISTS", conflictOf(t, err))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{
			Email:    "other@example.com",
			Username: "alice",
			Password: "s3cretpass",
		})
		assert.Equal(t, "USER_ALREADY_EXISTS", conflictOf(t, err))
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "hunter22x",
	})
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		out, err := svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "hunter22x"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("by username", func(t *testing.T) {
		out, err := svc.Login(ctx, LoginInput{Username: "bob", Password: "hunter22x"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "wrong"})
		ae, ok := apperror.As(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, apperror.KindUnauthorized, ae.Kind)
		assert.Equal(t, "INCORRECT_PASSWORD", ae.Code)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
	})
}
