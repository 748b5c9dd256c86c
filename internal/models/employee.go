package models

import "time"

// Designations, genders and courses are fixed enumerations; the server
// rejects anything outside them, so the client gates values up front.
var (
	Designations = []string{"HR", "Manager", "Sales"}
	Genders      = []string{"M", "F"}
	Courses      = []string{"MCA", "BCA", "BSC"}
)

// Employee is an employee record as the API returns it. ID is the stable
// server-assigned record key; Serial is the human-facing running number shown
// in the list. CreateDate is server-assigned and immutable.
type Employee struct {
	ID          string    `json:"_id"`
	Serial      int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Course      []string  `json:"course"`
	Image       string    `json:"image"`
	CreateDate  time.Time `json:"createDate"`
}

// EmployeePage is one page of the employee list plus pagination totals.
type EmployeePage struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
	Pages     int        `json:"pages"`
}

// ImageFile is an image selected for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// EmployeeForm holds the editable fields of a create/edit form. Image is nil
// when no new file has been chosen; on edit that means "keep the existing
// image" and no image part is sent at all.
type EmployeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      []string
	Image       *ImageFile
}

// HasCourse reports whether course is currently selected.
func (f *EmployeeForm) HasCourse(course string) bool {
	for _, c := range f.Course {
		if c == course {
			return true
		}
	}
	return false
}

// ValidDesignation reports whether d is one of the allowed designations.
func ValidDesignation(d string) bool {
	return contains(Designations, d)
}

// ValidGender reports whether g is one of the allowed genders.
func ValidGender(g string) bool {
	return contains(Genders, g)
}

// ValidCourse reports whether c is one of the allowed courses.
func ValidCourse(c string) bool {
	return contains(Courses, c)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
