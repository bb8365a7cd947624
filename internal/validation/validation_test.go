package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simpleemail"`
	Message string `json:"message" validate:"required"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		form       contactForm
		wantFields []string
	}{
		{name: "valid", form: contactForm{Name: "Andi", Email: "andi@mail.id", Message: "Halo"}},
		{name: "missing message", form: contactForm{Name: "Andi", Email: "andi@mail.id"}, wantFields: []string{"message"}},
		{name: "bad email", form: contactForm{Name: "Andi", Email: "andi@mail", Message: "Halo"}, wantFields: []string{"email"}},
		{name: "empty", form: contactForm{}, wantFields: []string{"name", "email", "message"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := Struct(testCase.form)
			if len(testCase.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))

			var fieldErrs Errors
			require.True(t, errors.As(err, &fieldErrs))
			got := make([]string, 0, len(fieldErrs))
			for _, f := range fieldErrs {
				got = append(got, f.Field)
			}
			assert.Equal(t, testCase.wantFields, got)
		})
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("a@b.co"))
	assert.False(t, Email("a b@c.co"))
	assert.False(t, Email("no-at.example"))
}
