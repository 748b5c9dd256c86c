package controllers

import (
	"context"
	"fmt"
	"sync"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/internal/nav"
	"github.com/empdesk/empdesk-console/internal/validation"
	"github.com/empdesk/empdesk-console/pkg/errors"
)

// FormPhase is the form's position in its lifecycle.
type FormPhase int

const (
	PhaseIdle FormPhase = iota
	PhaseLoading
	PhaseEditing
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// allowedImageTypes are the only media types accepted for the employee
// photo. Applies to both create and edit forms.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// FormController manages one create or edit form: field state, course set
// membership, image selection and the submit pipeline. Validation runs only
// at submit time; a validation failure never reaches the network.
type FormController struct {
	mu       sync.Mutex
	api      EmployeeAPI
	sessions SessionStore
	nav      nav.Navigator

	editID        string // empty for create forms
	form          models.EmployeeForm
	existingImage string // stored image name, edit mode only
	phase         FormPhase
	errMsg        string
}

// FormState is a snapshot of the form for rendering.
type FormState struct {
	Form          models.EmployeeForm
	ExistingImage string
	Phase         FormPhase
	Err           string
	EditMode      bool
}

// NewCreateForm creates a controller for a new-employee form. Designation
// defaults to the first option, matching the form's preselected dropdown.
func NewCreateForm(api EmployeeAPI, sessions SessionStore, navigator nav.Navigator) *FormController {
	return &FormController{
		api:      api,
		sessions: sessions,
		nav:      navigator,
		form:     models.EmployeeForm{Designation: models.Designations[0]},
		phase:    PhaseEditing,
	}
}

// NewEditForm creates a controller for editing the employee with the given
// id. Call Load before editing.
func NewEditForm(api EmployeeAPI, sessions SessionStore, navigator nav.Navigator, id string) *FormController {
	return &FormController{
		api:      api,
		sessions: sessions,
		nav:      navigator,
		editID:   id,
		phase:    PhaseIdle,
	}
}

// State returns a snapshot of the form.
func (f *FormController) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	form := f.form
	form.Course = append([]string(nil), f.form.Course...)
	return FormState{
		Form:          form,
		ExistingImage: f.existingImage,
		Phase:         f.phase,
		Err:           f.errMsg,
		EditMode:      f.editID != "",
	}
}

// Load fetches the record under edit and populates the form. A missing
// record routes back to the list, an expired session to login. Create forms
// have nothing to load and go straight to editing.
func (f *FormController) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.editID == "" {
		f.phase = PhaseEditing
		f.mu.Unlock()
		return nil
	}
	f.phase = PhaseLoading
	id := f.editID
	f.mu.Unlock()

	emp, err := f.api.GetEmployee(ctx, id)
	if err != nil {
		f.mu.Lock()
		f.phase = PhaseFailed
		f.errMsg = errors.MessageFor(err)
		f.mu.Unlock()

		switch {
		case errors.Is(err, errors.ErrUnauthorized):
			f.sessions.Clear()
			f.nav.NavigateTo(nav.RouteLogin)
		case errors.Is(err, errors.ErrNotFound):
			f.nav.NavigateTo(nav.RouteEmployees)
		}
		return err
	}

	f.mu.Lock()
	f.form = models.EmployeeForm{
		Name:        emp.Name,
		Email:       emp.Email,
		Mobile:      emp.Mobile,
		Designation: emp.Designation,
		Gender:      emp.Gender,
		Course:      append([]string(nil), emp.Course...),
	}
	f.existingImage = emp.Image
	f.phase = PhaseEditing
	f.errMsg = ""
	f.mu.Unlock()
	return nil
}

// SetField updates one scalar field. No validation happens here; that waits
// for Submit. Touching a failed form puts it back into editing.
func (f *FormController) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case "name":
		f.form.Name = value
	case "email":
		f.form.Email = value
	case "mobile":
		f.form.Mobile = value
	case "designation":
		f.form.Designation = value
	case "gender":
		f.form.Gender = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	f.resumeEditingLocked()
	return nil
}

// SetCourse adds or removes a course from the selection. The selection is a
// set: adding an already-selected course is a no-op.
func (f *FormController) SetCourse(course string, included bool) error {
	if !models.ValidCourse(course) {
		return fmt.Errorf("unknown course %q", course)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if included {
		if !f.form.HasCourse(course) {
			f.form.Course = append(f.form.Course, course)
		}
	} else {
		kept := f.form.Course[:0]
		for _, c := range f.form.Course {
			if c != course {
				kept = append(kept, c)
			}
		}
		f.form.Course = kept
	}
	f.resumeEditingLocked()
	return nil
}

// SetImage accepts a newly chosen image. Anything but JPEG or PNG is
// rejected with ErrUnsupportedFile and leaves the form untouched, in both
// create and edit mode.
func (f *FormController) SetImage(img models.ImageFile) error {
	if !allowedImageTypes[img.ContentType] {
		return fmt.Errorf("only JPG/PNG files are allowed: %w", errors.ErrUnsupportedFile)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Image = &img
	f.resumeEditingLocked()
	return nil
}

// Submit validates the form and sends it. Create forms require an image;
// edit forms without a new image send no image part, keeping the stored one.
// On success the user lands back on the list.
func (f *FormController) Submit(ctx context.Context) error {
	f.mu.Lock()
	form := f.form
	form.Course = append([]string(nil), f.form.Course...)
	editID := f.editID
	f.mu.Unlock()

	if fieldErr := validation.ValidateEmployeeForm(form, editID == ""); fieldErr != nil {
		f.mu.Lock()
		f.phase = PhaseEditing
		f.errMsg = fieldErr.Message
		f.mu.Unlock()
		return fieldErr
	}

	if _, ok := f.sessions.Get(); !ok {
		f.nav.NavigateTo(nav.RouteLogin)
		return errors.ErrNoSession
	}

	f.mu.Lock()
	f.phase = PhaseSubmitting
	f.errMsg = ""
	f.mu.Unlock()

	var err error
	if editID == "" {
		_, err = f.api.CreateEmployee(ctx, form)
	} else {
		_, err = f.api.UpdateEmployee(ctx, editID, form)
	}

	f.mu.Lock()
	if err != nil {
		f.phase = PhaseFailed
		f.errMsg = errors.MessageFor(err)
		f.mu.Unlock()

		if errors.Is(err, errors.ErrUnauthorized) {
			f.sessions.Clear()
			f.nav.NavigateTo(nav.RouteLogin)
		}
		return err
	}
	f.phase = PhaseSucceeded
	f.mu.Unlock()

	f.nav.NavigateTo(nav.RouteEmployees)
	return nil
}

// resumeEditingLocked returns a failed form to the editing phase once the
// user changes something. Caller holds f.mu.
func (f *FormController) resumeEditingLocked() {
	if f.phase == PhaseFailed {
		f.phase = PhaseEditing
	}
}
