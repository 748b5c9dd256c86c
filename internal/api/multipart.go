package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/empdesk/empdesk-console/internal/models"
)

// encodeEmployeeForm builds the multipart body for create/update: scalar
// fields as individual parts, one "course[]" part per selected course, and
// the image as a binary part with its real content type. A nil image writes
// no image part at all.
func encodeEmployeeForm(form models.EmployeeForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":        form.Name,
		"email":       form.Email,
		"mobile":      form.Mobile,
		"designation": form.Designation,
		"gender":      form.Gender,
	}
	// Fixed order keeps the encoded body deterministic.
	for _, name := range []string{"name", "email", "mobile", "designation", "gender"} {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	for _, course := range form.Course {
		if err := w.WriteField("course[]", course); err != nil {
			return nil, "", fmt.Errorf("failed to write course field: %w", err)
		}
	}

	if form.Image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(form.Image.Name)))
		header.Set("Content-Type", form.Image.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(form.Image.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
