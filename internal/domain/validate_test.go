package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateUserInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateUserInput
		wantField string
		wantRule  string
	}{
		{
			name:  "valid payload",
			input: CreateUserInput{Name: "Alice", Email: "alice@example.com"},
		},
		{
			name:      "missing name",
			input:     CreateUserInput{Email: "alice@example.com"},
			wantField: "name",
			wantRule:  RuleRequired,
		},
		{
			name:      "name is whitespace only",
			input:     CreateUserInput{Name: "   ", Email: "alice@example.com"},
			wantField: "name",
			wantRule:  RuleRequired,
		},
		{
			name:      "missing email",
			input:     CreateUserInput{Name: "Alice"},
			wantField: "email",
			wantRule:  RuleRequired,
		},
		{
			name:      "email without at sign",
			input:     CreateUserInput{Name: "Alice", Email: "alice.example.com"},
			wantField: "email",
			wantRule:  RuleEmail,
		},
		{
			name:      "email with two at signs",
			input:     CreateUserInput{Name: "Alice", Email: "a@b@example.com"},
			wantField: "email",
			wantRule:  RuleEmail,
		},
		{
			name:      "email with empty local part",
			input:     CreateUserInput{Name: "Alice", Email: "@example.com"},
			wantField: "email",
			wantRule:  RuleEmail,
		},
		{
			name:      "email with empty domain part",
			input:     CreateUserInput{Name: "Alice", Email: "alice@"},
			wantField: "email",
			wantRule:  RuleEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantRule, vErr.Rule)
		})
	}
}

func TestUpdateUserInput_Validate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		assert.NoError(t, UpdateUserInput{}.Validate())
		assert.True(t, UpdateUserInput{}.IsEmpty())
	})

	t.Run("only supplied fields are checked", func(t *testing.T) {
		in := UpdateUserInput{Name: strPtr("Bob")}
		assert.NoError(t, in.Validate())
		assert.False(t, in.IsEmpty())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		err := UpdateUserInput{Name: strPtr("  ")}.Validate()

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
		assert.Equal(t, RuleNotBlank, vErr.Rule)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		err := UpdateUserInput{Email: strPtr("not-an-email")}.Validate()

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Field)
		assert.Equal(t, RuleEmail, vErr.Rule)
	})
}

func TestClassifyError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, ClassifyError(nil))
	})

	t.Run("taxonomy errors pass through unchanged", func(t *testing.T) {
		orig := &NotFoundError{ID: 7}
		assert.Equal(t, error(orig), ClassifyError(orig))
	})

	t.Run("foreign error wrapped as backend", func(t *testing.T) {
		err := ClassifyError(assert.AnError)

		var bErr *BackendError
		require.ErrorAs(t, err, &bErr)
		assert.ErrorIs(t, bErr.Cause, assert.AnError)
	})
}
