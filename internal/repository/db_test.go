package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		dup  bool
	}{
		{"nil", nil, false},
		{"unique violation", &pq.Error{Code: "23505", Constraint: "idx_users_email"}, true},
		{"wrapped unique violation", fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}), true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.in == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.dup, errors.Is(got, ErrDuplicate))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
