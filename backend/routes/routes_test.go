package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Azi26Ahmed/Study-Track/backend/config"
	"github.com/Azi26Ahmed/Study-Track/backend/models"
	"github.com/Azi26Ahmed/Study-Track/backend/routes"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		BcryptCost: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}))

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func doRequestList(t *testing.T, app *fiber.App, path, token string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result []interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

// The course used throughout: section 1 has a 10 and a 20 minute video,
// section 2 a single 5 minute video.
func courseBody(url string) map[string]interface{} {
	return map[string]interface{}{
		"title":    "Backend Development",
		"platform": "udemy",
		"url":      url,
		"sections": []map[string]interface{}{
			{
				"title": "Introduction",
				"videos": []map[string]interface{}{
					{"title": "Welcome", "duration_minutes": 10},
					{"title": "Tooling", "duration_minutes": 20},
				},
			},
			{
				"title": "Setup",
				"videos": []map[string]interface{}{
					{"title": "Install", "duration_minutes": 5},
				},
			},
		},
	}
}

func TestAPI(t *testing.T) {
	app := newTestApp(t)

	var token string
	var courseID string

	t.Run("Register", func(t *testing.T) {
		status, result := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
			"name":     "Test User",
			"email":    "test@example.com",
			"password": "Password1",
		})
		require.Equal(t, fiber.StatusOK, status)
		assert.NotEmpty(t, result["token"])
	})

	t.Run("RegisterWeakPassword", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
			"name":     "Weak",
			"email":    "weak@example.com",
			"password": "short",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run("RegisterDuplicateEmail", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
			"name":     "Other",
			"email":    "test@example.com",
			"password": "Password1",
		})
		assert.Equal(t, fiber.StatusConflict, status)
	})

	t.Run("Login", func(t *testing.T) {
		status, result := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "Password1",
		})
		require.Equal(t, fiber.StatusOK, status)
		require.NotEmpty(t, result["token"])
		token = result["token"].(string)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
			"email":    "test@example.com",
			"password": "Wrong1234",
		})
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		status, _ := doRequestList(t, app, "/api/courses", "")
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})

	t.Run("GetProfile", func(t *testing.T) {
		status, result := doRequest(t, app, "GET", "/api/user/profile", token, nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Test User", result["name"])
		assert.Equal(t, "test@example.com", result["email"])
	})

	t.Run("CreateCourse", func(t *testing.T) {
		status, result := doRequest(t, app, "POST", "/api/courses", token, courseBody(""))
		require.Equal(t, fiber.StatusCreated, status)

		course := result["course"].(map[string]interface{})
		assert.Equal(t, "Backend Development", course["title"])
		assert.Regexp(t, `^manual_course_`, course["url"])
		assert.Equal(t, true, course["url_generated"])
		assert.Equal(t, float64(3), course["total_videos"])
		assert.Equal(t, float64(0), course["completed_videos"])
		assert.InDelta(t, 35.0, course["total_duration_minutes"].(float64), 1e-9)

		courseID = fmt.Sprintf("%v", course["id"])
	})

	t.Run("CreateCourseValidation", func(t *testing.T) {
		body := courseBody("")
		body["title"] = ""
		status, _ := doRequest(t, app, "POST", "/api/courses", token, body)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run("GetCourses", func(t *testing.T) {
		status, result := doRequestList(t, app, "/api/courses", token)
		require.Equal(t, fiber.StatusOK, status)
		require.Len(t, result, 1)

		summary := result[0].(map[string]interface{})
		assert.Equal(t, "udemy", summary["platform"])
		assert.Equal(t, float64(2), summary["sections_total"])
	})

	t.Run("ToggleVideo", func(t *testing.T) {
		// Complete the 5-minute video in section 2.
		status, result := doRequest(t, app, "PUT", "/api/courses/"+courseID+"/videos", token, map[string]interface{}{
			"section_index": 1,
			"video_index":   0,
			"completed":     true,
		})
		require.Equal(t, fiber.StatusOK, status)

		course := result["course"].(map[string]interface{})
		assert.Equal(t, float64(1), course["completed_videos"])
		assert.InDelta(t, 33.3, course["completion_percentage"].(float64), 1e-9)
		assert.InDelta(t, 30.0, course["remaining_duration_minutes"].(float64), 1e-9)
		assert.InDelta(t, 15.0, course["remaining_duration_2x_minutes"].(float64), 1e-9)
		assert.Equal(t, float64(1), course["sections_completed"])
	})

	t.Run("ToggleVideoOutOfRange", func(t *testing.T) {
		status, _ := doRequest(t, app, "PUT", "/api/courses/"+courseID+"/videos", token, map[string]interface{}{
			"section_index": 5,
			"video_index":   0,
			"completed":     true,
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Dashboard", func(t *testing.T) {
		status, result := doRequest(t, app, "GET", "/api/dashboard", token, nil)
		require.Equal(t, fiber.StatusOK, status)

		stats := result["stats"].(map[string]interface{})
		assert.Equal(t, float64(1), stats["total_courses"])
		assert.Equal(t, float64(3), stats["total_videos"])
		assert.Equal(t, float64(1), stats["completed_videos"])
		assert.InDelta(t, 33.3, stats["overall_completion"].(float64), 1e-9)

		platforms := stats["platforms"].(map[string]interface{})
		assert.Equal(t, float64(1), platforms["udemy"])
	})

	t.Run("DuplicateURL", func(t *testing.T) {
		body := courseBody("https://www.udemy.com/course/backend/")
		status, _ := doRequest(t, app, "POST", "/api/courses", token, body)
		require.Equal(t, fiber.StatusCreated, status)

		status, _ = doRequest(t, app, "POST", "/api/courses", token, body)
		assert.Equal(t, fiber.StatusConflict, status)
	})

	t.Run("OtherUserCannotSee", func(t *testing.T) {
		status, result := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
			"name":     "Second User",
			"email":    "second@example.com",
			"password": "Password1",
		})
		require.Equal(t, fiber.StatusOK, status)
		otherToken := result["token"].(string)

		status, _ = doRequest(t, app, "GET", "/api/courses/"+courseID, otherToken, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("DeleteCourse", func(t *testing.T) {
		status, _ := doRequest(t, app, "DELETE", "/api/courses/"+courseID, token, nil)
		require.Equal(t, fiber.StatusOK, status)

		status, _ = doRequest(t, app, "GET", "/api/courses/"+courseID, token, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
