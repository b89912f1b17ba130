package service

import (
	"context"
	"regexp"
	"testing"

	"learnhub/internal/model"
	"learnhub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\d{6}`)

func TestRegisterStudentNeedsVerification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.auth.Register(ctx, RegisterInput{Username: "ana", Email: "Ana@Example.com", Password: "secret1", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.True(t, res.NeedsVerification)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.False(t, res.User.IsVerified)
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "ana@example.com", env.mailer.sent[0].To)

	_, err = env.auth.Login(ctx, "ana@example.com", "secret1", model.RoleStudent)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Email not verified")

	require.ErrorIs(t, env.auth.VerifyEmail(ctx, "ana@example.com", "000000x"), ErrValidation)

	code := codePattern.FindString(env.mailer.sent[0].Body)
	require.NotEmpty(t, code)
	require.NoError(t, env.auth.VerifyEmail(ctx, "ANA@example.com", code))

	login, err := env.auth.Login(ctx, "ana@example.com", "secret1", model.RoleStudent)
	require.NoError(t, err)
	claims, err := util.ValidateJWT(login.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.Subject)
	assert.Equal(t, "student", claims.Role)

	assert.EqualError(t, env.auth.ResendCode(ctx, "ana@example.com"), "Email already verified")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.auth.Register(ctx, RegisterInput{Username: "a", Email: "a@x.io", Password: "pw", Role: model.RoleInstructor})
		require.NoError(t, err)
		_, err = env.auth.Register(ctx, RegisterInput{Username: "b", Email: "A@x.io", Password: "pw", Role: model.RoleInstructor})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("instructors skip verification", func(t *testing.T) {
		env := newTestEnv(t)
		res, err := env.auth.Register(ctx, RegisterInput{Username: "t", Email: "t@x.io", Password: "pw", Role: model.RoleInstructor})
		require.NoError(t, err)
		assert.False(t, res.NeedsVerification)
		assert.Empty(t, env.mailer.sent)
		_, err = env.auth.Login(ctx, "t@x.io", "pw", model.RoleInstructor)
		assert.NoError(t, err)
	})

	t.Run("admin signup disabled", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.auth.Register(ctx, RegisterInput{Username: "root", Email: "r@x.io", Password: "pw", Role: model.RoleAdmin})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("mail failure fails registration", func(t *testing.T) {
		env := newTestEnv(t)
		env.mailer.err = errBoom
		_, err := env.auth.Register(ctx, RegisterInput{Username: "s", Email: "s@x.io", Password: "pw"})
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.auth.Register(ctx, RegisterInput{Username: "t", Email: "t@x.io", Password: "pw", Role: model.RoleInstructor})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, "t@x.io", "pw", model.RoleStudent)
	assert.EqualError(t, err, "Invalid credentials")
	_, err = env.auth.Login(ctx, "t@x.io", "wrong", model.RoleInstructor)
	assert.EqualError(t, err, "Invalid credentials")
	_, err = env.auth.Login(ctx, "nobody@x.io", "pw", model.RoleInstructor)
	assert.ErrorIs(t, err, ErrValidation)

	u, err := fakeUserRepo{env.store}.GetUserByEmail(ctx, "t@x.io")
	require.NoError(t, err)
	u.IsBanned = true
	require.NoError(t, fakeUserRepo{env.store}.UpdateUser(ctx, u))
	_, err = env.auth.Login(ctx, "t@x.io", "pw", model.RoleInstructor)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResendCode(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.auth.Register(ctx, RegisterInput{Username: "s", Email: "s@x.io", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, env.auth.ResendCode(ctx, "s@x.io"))
	require.Len(t, env.mailer.sent, 2)
	assert.EqualError(t, env.auth.ResendCode(ctx, "ghost@x.io"), "User not found")
}
