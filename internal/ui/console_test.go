package ui

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empdesk/empdesk-console/internal/cache"
	"github.com/empdesk/empdesk-console/internal/controllers"
	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/internal/nav"
)

// stubAPI serves a fixed page and record; write calls succeed.
type stubAPI struct {
	page     *models.EmployeePage
	employee *models.Employee
}

func (s *stubAPI) ListEmployees(ctx context.Context, q models.ListQuery) (*models.EmployeePage, error) {
	return s.page, nil
}

func (s *stubAPI) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.employee, nil
}

func (s *stubAPI) CreateEmployee(ctx context.Context, form models.EmployeeForm) (*models.Employee, error) {
	return s.employee, nil
}

func (s *stubAPI) UpdateEmployee(ctx context.Context, id string, form models.EmployeeForm) (*models.Employee, error) {
	return s.employee, nil
}

func (s *stubAPI) DeleteEmployee(ctx context.Context, id string) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) Get() (models.Session, bool) {
	return models.Session{Token: "tok", Username: "admin"}, true
}

func (stubSessions) Clear() {}

// countingFetcher stands in for the uploads endpoint.
type countingFetcher struct{ calls int }

func (f *countingFetcher) FetchUpload(ctx context.Context, name string) ([]byte, string, error) {
	f.calls++
	return []byte("png-bytes"), "image/png", nil
}

// recordingImages records invalidations.
type recordingImages struct{ invalidated []string }

func (r *recordingImages) Get(ctx context.Context, name string) ([]byte, string, error) {
	return nil, "", nil
}

func (r *recordingImages) Invalidate(name string) {
	r.invalidated = append(r.invalidated, name)
}

func TestRenderList_MiddlePageEnablesBothControls(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Console{out: buf}

	state := controllers.ListState{
		Query:     models.ListQuery{Page: 2, Limit: 10, SortField: "name", SortOrder: "asc"},
		Employees: make([]models.Employee, 10),
		Total:     25,
		Pages:     3,
	}
	c.renderList(state)

	out := buf.String()
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "< Page")
	assert.Contains(t, out, "3 >")
	assert.Contains(t, out, "Count: 25")
}

func TestRenderList_FirstPageDisablesPrev(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Console{out: buf}

	c.renderList(controllers.ListState{
		Query: models.ListQuery{Page: 1},
		Pages: 3,
	})

	assert.NotContains(t, buf.String(), "< Page")
}

func TestRenderList_ErrorBanner(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Console{out: buf}

	c.renderList(controllers.ListState{Err: "database down", Query: models.ListQuery{Page: 1}})

	assert.Contains(t, buf.String(), "! database down")
}

func TestViewImage_FetchesThroughCacheOnce(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{}
	buf := &bytes.Buffer{}

	c := &Console{out: buf, images: cache.NewImageCache(fetcher, 300)}
	api := &stubAPI{page: &models.EmployeePage{
		Employees: []models.Employee{{ID: "rec1", Serial: 7, Name: "Asha", Image: "1712-a.png"}},
		Total:     1,
		Pages:     1,
	}}
	c.list = controllers.NewListController(api, stubSessions{}, c, func(string) bool { return false }, 10)
	c.list.Refresh(ctx)

	c.viewImage(ctx, "7")
	c.viewImage(ctx, "7")

	assert.Equal(t, 1, fetcher.calls)
	assert.Contains(t, buf.String(), "image 1712-a.png (image/png, 9 bytes)")
}

func TestViewImage_UnknownIDReportsNoImage(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}

	c := &Console{out: buf, images: cache.NewImageCache(&countingFetcher{}, 300)}
	api := &stubAPI{page: &models.EmployeePage{Pages: 1}}
	c.list = controllers.NewListController(api, stubSessions{}, c, func(string) bool { return false }, 10)
	c.list.Refresh(ctx)

	c.viewImage(ctx, "99")

	assert.Contains(t, buf.String(), `no image on record for "99"`)
}

func TestFormView_ReplacingImageInvalidatesOldEntry(t *testing.T) {
	ctx := context.Background()
	img := filepath.Join(t.TempDir(), "new.png")
	require.NoError(t, os.WriteFile(img, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	api := &stubAPI{employee: &models.Employee{
		ID: "rec1", Serial: 7,
		Name: "Asha", Email: "asha@corp.io", Mobile: "9876543210",
		Designation: "HR", Gender: "F", Course: []string{"MCA"},
		Image: "old.png",
	}}
	images := &recordingImages{}

	c := &Console{
		images: images,
		in:     bufio.NewScanner(strings.NewReader("image " + img + "\nsubmit\n")),
		out:    io.Discard,
		route:  nav.RouteEmployees,
	}
	form := controllers.NewEditForm(api, stubSessions{}, c, "rec1")
	require.NoError(t, form.Load(ctx))

	c.formView(ctx, form)

	assert.Equal(t, []string{"old.png"}, images.invalidated)
}

func TestFormView_SubmitWithoutNewImageKeepsCacheEntry(t *testing.T) {
	ctx := context.Background()
	api := &stubAPI{employee: &models.Employee{
		ID: "rec1", Serial: 7,
		Name: "Asha", Email: "asha@corp.io", Mobile: "9876543210",
		Designation: "HR", Gender: "F", Course: []string{"MCA"},
		Image: "old.png",
	}}
	images := &recordingImages{}

	c := &Console{
		images: images,
		in:     bufio.NewScanner(strings.NewReader("submit\n")),
		out:    io.Discard,
		route:  nav.RouteEmployees,
	}
	form := controllers.NewEditForm(api, stubSessions{}, c, "rec1")
	require.NoError(t, form.Load(ctx))

	c.formView(ctx, form)

	assert.Empty(t, images.invalidated)
}

func TestConfirm(t *testing.T) {
	yes := &Console{in: bufio.NewScanner(strings.NewReader("y\n")), out: io.Discard}
	assert.True(t, yes.confirm("Delete?"))

	no := &Console{in: bufio.NewScanner(strings.NewReader("n\n")), out: io.Discard}
	assert.False(t, no.confirm("Delete?"))

	blank := &Console{in: bufio.NewScanner(strings.NewReader("\n")), out: io.Discard}
	assert.False(t, blank.confirm("Delete?"))
}
