package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/infrastructure/storage/memory"
)

func newService() *profile.Service {
	return profile.NewService(
		memory.NewUserRepository(),
		memory.NewTxManager(),
		profile.NewJWTService(profile.DefaultJWTConfig("test-secret")),
		profile.DefaultServiceConfig(),
	)
}

func TestSignUpAndLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, expiresAt, got, err := svc.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())
	assert.Equal(t, user.ID, got.ID)

	jwtSvc := profile.NewJWTService(profile.DefaultJWTConfig("test-secret"))
	userCtx, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), userCtx.UserID)
	assert.Equal(t, "alice", userCtx.Username)
}

func TestSignUpValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "", "long enough password")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.SignUp(ctx, "bob", "short")
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = svc.SignUp(ctx, "carol", "long enough password")
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, "carol", "another long password")
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "dave", "long enough password")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "dave", "wrong password entirely")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	_, _, _, err = svc.Login(ctx, "nobody", "long enough password")
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "erin", "long enough password")
	require.NoError(t, err)

	prefs, err := svc.Preferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, prefs.Cuisines)
	assert.Empty(t, prefs.MealTypes)
	assert.Empty(t, prefs.Restrictions)
	assert.Empty(t, prefs.FoodItems)

	want := profile.Preferences{
		Cuisines:     []string{"Italian", "Japanese"},
		MealTypes:    []string{"dinner"},
		Restrictions: []string{"dairy"},
		FoodItems:    []string{"pizza", "sushi"},
	}
	require.NoError(t, svc.SavePreferences(ctx, user.ID, want))

	got, err := svc.Preferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	sel := got.Selections()
	assert.Equal(t, []string{"Italian", "Japanese"}, sel.Get(facet.Cuisine))
	assert.Equal(t, []string{"dinner"}, sel.Get(facet.MealType))
	assert.Equal(t, []string{"dairy"}, sel.Get(facet.Restriction))
	assert.Equal(t, []string{"pizza", "sushi"}, sel.Get(facet.FoodItem))
}

func TestPreferenceEncoding(t *testing.T) {
	u := profile.NewUser("frank", "hash")
	u.SetPreferences(profile.Preferences{
		Cuisines:  []string{" Italian ", "", "Thai"},
		FoodItems: []string{"pad thai"},
	})

	got := u.Preferences()
	assert.Equal(t, []string{"Italian", "Thai"}, got.Cuisines)
	assert.Empty(t, got.MealTypes)
	assert.Empty(t, got.Restrictions)
	assert.Equal(t, []string{"pad thai"}, got.FoodItems)
}
