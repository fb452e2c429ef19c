package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/core/validator"
)

func TestValidationErrors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add(validator.Check(nameField, ""))
	errs.Add(validator.Check(emailField, "a@b.co"))
	errs.Add(validator.Check(emailField, "broken"))

	assert.False(t, errs.IsEmpty())
	assert.Equal(t, []string{"name", "email"}, errs.Fields())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("phone"))

	res, ok := errs.Get("name")
	assert.True(t, ok)
	assert.Equal(t, validator.KeyRequired, res.Key)

	assert.Equal(t, "validation failed: name: form.error.required; email: form.error.email", errs.Error())

	var err error = errs
	assert.True(t, errors.Is(err, validator.ErrValidationFailed))

	var target validator.ValidationErrors
	assert.True(t, errors.As(err, &target))
	assert.Len(t, target, 2)

	messages := errs.Localize(newTranslator(t, "en"))
	assert.Equal(t, map[string]string{
		"name":  "This field is required",
		"email": "Please enter a valid email address",
	}, messages)
}
