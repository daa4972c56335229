package services

import (
	"testing"

	"github.com/martapp/backend/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	svc, users, session := newAuthFixture(t)

	user, err := svc.SignUp("Ayşe", "01234567890", "long-enough-pass")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", user.Name)
	assert.Equal(t, "01234567890", user.Phone)

	// The password is stored hashed, never in plaintext.
	stored, err := users.GetByPhone("01234567890")
	require.NoError(t, err)
	assert.NotEqual(t, "long-enough-pass", stored.Password)
	assert.True(t, password.Verify("long-enough-pass", stored.Password))

	// Sign-up does not establish a session; the client logs in afterwards.
	assert.False(t, session.Snapshot().SignedIn())
}

func TestSignUpDuplicatePhone(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	_, err := svc.SignUp("First", "01234567890", "long-enough-pass")
	require.NoError(t, err)

	_, err = svc.SignUp("Second", "01234567890", "other-long-pass")
	assert.ErrorIs(t, err, ErrPhoneTaken)

	// The failed attempt left the store untouched.
	stored, err := users.GetByPhone("01234567890")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Name)
}

func TestSignUpValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.SignUp("", "01234567890", "long-enough-pass")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.SignUp("n", "12345", "long-enough-pass")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.SignUp("n", "0123456789a", "long-enough-pass")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.SignUp("n", "01234567890", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginPersistsSession(t *testing.T) {
	svc, _, session := newAuthFixture(t)

	created, err := svc.SignUp("Ayşe", "01234567890", "long-enough-pass")
	require.NoError(t, err)

	resp, err := svc.Login("01234567890", "long-enough-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, created.ID, resp.User.ID)

	snap := session.Snapshot()
	assert.True(t, snap.SignedIn())
	assert.Equal(t, "01234567890", snap.Phone)
	assert.Equal(t, created.ID, snap.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, session := newAuthFixture(t)

	_, err := svc.SignUp("Ayşe", "01234567890", "long-enough-pass")
	require.NoError(t, err)

	_, wrongPassword := svc.Login("01234567890", "not-the-password")
	_, unknownPhone := svc.Login("09999999999", "long-enough-pass")

	// Wrong password and unknown phone surface as the same failure.
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownPhone, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownPhone.Error())

	// Failed logins never touch the session.
	assert.False(t, session.Snapshot().SignedIn())
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, session := newAuthFixture(t)

	_, err := svc.SignUp("Ayşe", "01234567890", "long-enough-pass")
	require.NoError(t, err)
	_, err = svc.Login("01234567890", "long-enough-pass")
	require.NoError(t, err)
	require.True(t, session.Snapshot().SignedIn())

	require.NoError(t, svc.Logout())
	assert.False(t, session.Snapshot().SignedIn())
	assert.Zero(t, session.Snapshot().UserID)

	require.NoError(t, svc.Logout())
	assert.False(t, session.Snapshot().SignedIn())
}
