package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-secret", 60)

	role := domain.StaffRoleAdmin
	token, exp, err := tm.GenerateToken("staff-1", domain.SubjectTypeStaff, &role)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeStaff, claims.Subject)
	require.NotNil(t, claims.Role)
	assert.Equal(t, domain.StaffRoleAdmin, *claims.Role)
}

func TestCustomerTokenCarriesNoRole(t *testing.T) {
	tm := NewTokenManager("unit-secret", 60)

	token, _, err := tm.GenerateToken("cust-1", domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeCustomer, claims.Subject)
	assert.Nil(t, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("cust-1", domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestDefaultTTLIsOneWeek(t *testing.T) {
	tm := NewTokenManager("unit-secret", 0)

	_, exp, err := tm.GenerateToken("cust-1", domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)

	week := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, week, exp, time.Minute)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("portal-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "portal-pass", hash)

	assert.NoError(t, ComparePassword(hash, "portal-pass"))
	assert.Error(t, ComparePassword(hash, "other-pass"))
}
