package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/pkg/errors"
)

func validForm() models.EmployeeForm {
	return models.EmployeeForm{
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Mobile:      "1234567890",
		Designation: "HR",
		Gender:      "F",
		Course:      []string{"MCA"},
		Image:       &models.ImageFile{Name: "asha.png", ContentType: "image/png", Data: []byte{1}},
	}
}

func TestValidateEmployeeForm_Accepts(t *testing.T) {
	assert.Nil(t, ValidateEmployeeForm(validForm(), true))
}

func TestValidateEmployeeForm_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"local@domain.tld", true},
		{"a.b+c@sub.domain.co", true},
		{"noat.domain.tld", false},
		{"missing@dotless", false},
		{"spaces in@domain.tld", false},
		{"local@dom ain.tld", false},
		{"local@domain.", false}, // nothing after the dot
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			form := validForm()
			form.Email = tt.email
			err := ValidateEmployeeForm(form, true)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, "email", err.Field)
				assert.Equal(t, "Invalid email format", err.Message)
			}
		})
	}
}

func TestValidateEmployeeForm_Mobile(t *testing.T) {
	tests := []struct {
		mobile string
		ok     bool
	}{
		{"1234567890", true},
		{"123456789", false},
		{"12345678901", false},
		{"12345abcde", false},
		{"12345 6789", false},
	}

	for _, tt := range tests {
		t.Run(tt.mobile, func(t *testing.T) {
			form := validForm()
			form.Mobile = tt.mobile
			err := ValidateEmployeeForm(form, true)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, "mobile", err.Field)
				assert.Equal(t, "Mobile number must be 10 digits", err.Message)
			}
		})
	}
}

func TestValidateEmployeeForm_ImageRequirement(t *testing.T) {
	form := validForm()
	form.Image = nil

	// Create mode: image mandatory even when everything else is valid.
	err := ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.Equal(t, "image", err.Field)

	// Edit mode: missing image means "keep the stored one".
	assert.Nil(t, ValidateEmployeeForm(form, false))
}

func TestValidateEmployeeForm_FirstFailureWins(t *testing.T) {
	form := validForm()
	form.Name = ""
	form.Email = "broken"
	form.Mobile = "12"

	// Only the first broken rule is reported.
	err := ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.Equal(t, "name", err.Field)
}

func TestValidateEmployeeForm_Enums(t *testing.T) {
	form := validForm()
	form.Designation = "CEO"
	err := ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.Equal(t, "designation", err.Field)

	form = validForm()
	form.Course = []string{"MCA", "MCA"}
	err = ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.Equal(t, "course", err.Field)

	form = validForm()
	form.Course = []string{"PHD"}
	err = ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.Equal(t, "course", err.Field)
}

func TestFieldError_WrapsValidationSentinel(t *testing.T) {
	form := validForm()
	form.Email = "broken"
	err := ValidateEmployeeForm(form, true)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
