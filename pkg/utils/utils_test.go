package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-01-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
}

func TestValidateStruct_Phone(t *testing.T) {
	type contact struct {
		Phone string `json:"phone" validate:"required,phone10"`
	}

	assert.Empty(t, ValidateStruct(contact{Phone: "5551234567"}))

	for _, bad := range []string{"555123456", "55512345678", "555-123-4567", "abcdefghij"} {
		errs := ValidateStruct(contact{Phone: bad})
		assert.Equal(t, "Valid 10-digit phone number is required", errs["phone"], bad)
	}
}

func TestValidateStruct_NestedFieldPath(t *testing.T) {
	type inner struct {
		Name string `json:"name" validate:"required"`
	}
	type outer struct {
		Driver inner `json:"driverDetails"`
		Rating int   `json:"rating" validate:"min=1,max=5"`
	}

	errs := ValidateStruct(outer{Rating: 9})

	assert.Equal(t, "This field is required", errs["driverDetails.name"])
	assert.Equal(t, "Maximum value is 5", errs["rating"])
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "second", "a": "first"})
	assert.Equal(t, "a: first; b: second", got)
}

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager(JWTConfig{Secret: "secret", ExpiryHours: 2})
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	other := NewTokenManager(JWTConfig{Secret: "different", ExpiryHours: 2})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}

func TestUserContext(t *testing.T) {
	userID := uuid.New()
	ctx := SetUserContext(t.Context(), userID, RoleAdmin)

	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)
	assert.True(t, IsAdminContext(ctx))

	_, ok = GetUserIDFromContext(t.Context())
	assert.False(t, ok)
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, "from-env", config.JWT.Secret)
	assert.Equal(t, 24, config.JWT.ExpiryHours)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, config.CORS.AllowedOrigins)
}

func TestLoadConfigFrom_FileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nJWT_SECRET=file-secret\nDB_NAME=rentals\nCORS_ALLOWED_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "7070")

	config, err := LoadConfigFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "7070", config.App.Port)
	assert.Equal(t, "file-secret", config.JWT.Secret)
	assert.Equal(t, "rentals", config.Database.Name)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.CORS.AllowedOrigins)
}

func TestLoadConfigFrom_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}
