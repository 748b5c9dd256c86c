package validation

import (
	"fmt"
	"regexp"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/pkg/errors"
)

var (
	// Local part and domain must be whitespace/@ free, with a dot in the domain.
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// FieldError is a single validation failure. The form surfaces one message at
// a time, so validation stops at the first broken rule.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return errors.ErrValidation
}

// ValidateEmployeeForm checks the form against the submission rules in order,
// returning the first failure or nil. requireImage is true for create forms;
// edit forms may keep the stored image.
func ValidateEmployeeForm(form models.EmployeeForm, requireImage bool) *FieldError {
	// Rule 1: required fields.
	switch {
	case form.Name == "":
		return &FieldError{Field: "name", Message: "Name is required"}
	case form.Email == "":
		return &FieldError{Field: "email", Message: "Email is required"}
	case form.Mobile == "":
		return &FieldError{Field: "mobile", Message: "Mobile is required"}
	case form.Gender == "":
		return &FieldError{Field: "gender", Message: "Gender is required"}
	case requireImage && form.Image == nil:
		return &FieldError{Field: "image", Message: "Image is required"}
	}

	// Rule 2: email shape.
	if !emailPattern.MatchString(form.Email) {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}

	// Rule 3: mobile shape.
	if !mobilePattern.MatchString(form.Mobile) {
		return &FieldError{Field: "mobile", Message: "Mobile number must be 10 digits"}
	}

	// Enumeration membership, checked after the shape rules.
	if !models.ValidDesignation(form.Designation) {
		return &FieldError{Field: "designation", Message: "Designation must be one of: HR, Manager, Sales"}
	}
	if !models.ValidGender(form.Gender) {
		return &FieldError{Field: "gender", Message: "Gender must be M or F"}
	}
	seen := map[string]bool{}
	for _, course := range form.Course {
		if !models.ValidCourse(course) {
			return &FieldError{Field: "course", Message: "Course must be one of: MCA, BCA, BSC"}
		}
		if seen[course] {
			return &FieldError{Field: "course", Message: "Course selected more than once"}
		}
		seen[course] = true
	}

	return nil
}
