package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

func TestTranslate(t *testing.T) {
	notFound := httperr.ErrNotFound("appointment_not_found", "appointment not found")
	boom := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		wantKind httperr.Kind
		wantCode string
	}{
		{"record not found", gorm.ErrRecordNotFound, httperr.KindNotFound, "appointment_not_found"},
		{"unique", &pgconn.PgError{Code: "23505"}, httperr.KindIntegrity, "duplicate_entry"},
		{"foreign key", &pgconn.PgError{Code: "23503"}, httperr.KindIntegrity, "foreign_key_violation"},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, httperr.KindIntegrity, "exclusion_violation"},
		{"check", &pgconn.PgError{Code: "23514"}, httperr.KindIntegrity, "integrity_violation"},
		{"business passthrough", httperr.ErrInvalidData("empty_services", "x"), httperr.KindInvalidData, "empty_services"},
		{"other", boom, httperr.KindUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate("op", tt.err, notFound)
			assert.Equal(t, tt.wantKind, httperr.KindOf(got))
			if tt.wantCode != "" {
				assert.True(t, httperr.IsBusiness(got, tt.wantCode))
			}
		})
	}

	assert.NoError(t, translate("op", nil, notFound))
	assert.ErrorIs(t, translate("save appointment", boom, nil), boom)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(httperr.ErrIntegrity("duplicate_entry", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, offset(0, 20))
	assert.Equal(t, 0, offset(1, 20))
	assert.Equal(t, 40, offset(3, 20))
}
