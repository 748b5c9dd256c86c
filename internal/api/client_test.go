package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empdesk/empdesk-console/config"
	"github.com/empdesk/empdesk-console/internal/api"
	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/pkg/errors"
	"github.com/empdesk/empdesk-console/pkg/httpclient"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, router *gin.Engine, token string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        srv.URL,
			TimeoutSeconds: 5,
			PageSize:       10,
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}
	return api.New(cfg, httpclient.NewStandardClientWithTimeout(5*time.Second), staticToken(token))
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestClient_ListEmployees(t *testing.T) {
	router := newRouter()
	var gotAuth, gotRequestID string
	router.GET("/employees", func(c *gin.Context) {
		gotAuth = c.GetHeader("Authorization")
		gotRequestID = c.GetHeader("X-Request-ID")
		assert.Equal(t, "2", c.Query("page"))
		assert.Equal(t, "10", c.Query("limit"))
		assert.Equal(t, "asha", c.Query("search"))
		assert.Equal(t, "name", c.Query("sort"))
		assert.Equal(t, "asc", c.Query("order"))
		c.JSON(http.StatusOK, gin.H{
			"employees": []gin.H{{"_id": "e1", "id": 1, "name": "Asha"}},
			"total":     25,
			"pages":     3,
		})
	})
	client := newTestClient(t, router, "tok-123")

	q := models.DefaultListQuery(10)
	q.Page = 2
	q.Search = "asha"
	page, err := client.ListEmployees(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Employees, 1)
	assert.Equal(t, "e1", page.Employees[0].ID)
}

func TestClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	router := newRouter()
	router.POST("/auth/login", func(c *gin.Context) {
		assert.Empty(t, c.GetHeader("Authorization"))
		c.JSON(http.StatusOK, gin.H{"token": "fresh", "username": "admin"})
	})
	client := newTestClient(t, router, "")

	sess, err := client.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", sess.Token)
	assert.Equal(t, "admin", sess.Username)
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	router := newRouter()
	router.GET("/employees", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "jwt expired"})
	})
	client := newTestClient(t, router, "stale")

	_, err := client.ListEmployees(context.Background(), models.DefaultListQuery(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
	assert.Equal(t, "jwt expired", errors.MessageFor(err))
}

func TestClient_NotFoundMapsToSentinel(t *testing.T) {
	router := newRouter()
	router.GET("/employees/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
	})
	client := newTestClient(t, router, "tok")

	_, err := client.GetEmployee(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestClient_ErrorBodyVariants(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"message key", gin.H{"message": "boom"}, "boom"},
		{"error key", gin.H{"error": "kaput"}, "kaput"},
		{"no message", gin.H{}, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter()
			router.GET("/employees", func(c *gin.Context) {
				c.JSON(http.StatusInternalServerError, tt.body)
			})
			client := newTestClient(t, router, "tok")

			_, err := client.ListEmployees(context.Background(), models.DefaultListQuery(10))
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.MessageFor(err))
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        "http://127.0.0.1:1", // nothing listens here
			TimeoutSeconds: 1,
			PageSize:       10,
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}
	client := api.New(cfg, httpclient.NewStandardClientWithTimeout(time.Second), staticToken("tok"))

	_, err := client.ListEmployees(context.Background(), models.DefaultListQuery(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTransport))
}

func TestClient_CreateEmployeeMultipart(t *testing.T) {
	router := newRouter()
	router.POST("/employees", func(c *gin.Context) {
		assert.NoError(t, c.Request.ParseMultipartForm(1<<20))
		assert.Equal(t, "Asha", c.PostForm("name"))
		assert.Equal(t, []string{"MCA", "BSC"}, c.PostFormArray("course[]"))

		file, err := c.FormFile("image")
		if assert.NoError(t, err) {
			assert.Equal(t, "asha.png", file.Filename)
			assert.Equal(t, "image/png", file.Header.Get("Content-Type"))
		}

		c.JSON(http.StatusCreated, gin.H{"_id": "e9", "id": 9, "name": "Asha"})
	})
	client := newTestClient(t, router, "tok")

	emp, err := client.CreateEmployee(context.Background(), models.EmployeeForm{
		Name:        "Asha",
		Email:       "asha@example.com",
		Mobile:      "1234567890",
		Designation: "HR",
		Gender:      "F",
		Course:      []string{"MCA", "BSC"},
		Image:       &models.ImageFile{Name: "asha.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, "e9", emp.ID)
}

func TestClient_UpdateEmployeeOmitsImagePart(t *testing.T) {
	router := newRouter()
	router.PUT("/employees/:id", func(c *gin.Context) {
		assert.NoError(t, c.Request.ParseMultipartForm(1<<20))
		assert.Equal(t, "e7", c.Param("id"))
		assert.Equal(t, "Ravi Kumar", c.PostForm("name"))

		_, err := c.FormFile("image")
		assert.Error(t, err, "no image part expected when keeping the stored image")

		c.JSON(http.StatusOK, gin.H{"_id": "e7", "name": "Ravi Kumar"})
	})
	client := newTestClient(t, router, "tok")

	emp, err := client.UpdateEmployee(context.Background(), "e7", models.EmployeeForm{
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Mobile:      "9876543210",
		Designation: "Sales",
		Gender:      "M",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", emp.Name)
}

func TestClient_DeleteEmployee(t *testing.T) {
	router := newRouter()
	deleted := ""
	router.DELETE("/employees/:id", func(c *gin.Context) {
		deleted = c.Param("id")
		c.Status(http.StatusNoContent)
	})
	client := newTestClient(t, router, "tok")

	require.NoError(t, client.DeleteEmployee(context.Background(), "e42"))
	assert.Equal(t, "e42", deleted)
}

func TestClient_FetchUpload(t *testing.T) {
	router := newRouter()
	router.GET("/uploads/:name", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/png", []byte{0x89, 0x50})
	})
	client := newTestClient(t, router, "tok")

	data, contentType, err := client.FetchUpload(context.Background(), "asha.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
	assert.Equal(t, "image/png", contentType)
}
