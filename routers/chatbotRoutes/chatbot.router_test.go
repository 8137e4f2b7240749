package chatbotRoutes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus/chatbot"
	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Enrollment{},
		&models.Assignment{}, &models.Grade{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	SetupChatbotRoutes(app, chatbot.NewService(db, nil, nil, 4))
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Pat", Email: role + "@example.com", Role: role, Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func postQuery(t *testing.T, app *fiber.App, token, query string) *http.Response {
	t.Helper()

	body, err := json.Marshal(fiber.Map{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chatbot/query", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestQueryRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp := postQuery(t, app, "", "what are my grades?")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQueryRejectsTeachers(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "TEACHER")

	resp := postQuery(t, app, token, "what are my grades?")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestQueryRejectsEmptyQuery(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "STUDENT")

	resp := postQuery(t, app, token, "   ")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Query cannot be empty", body["error"])
}

func TestQueryAnswersAcademicQuestion(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "STUDENT")

	resp := postQuery(t, app, token, "what are my grades?")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No grades found.", body["response"])
}

func TestQueryContentPathUnavailableWithoutClient(t *testing.T) {
	app, db := setupApp(t)
	student, token := createUser(t, db, "STUDENT")

	course := models.Course{Name: "Databases", Code: "CS101", TeacherID: 99}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID}).Error)

	resp := postQuery(t, app, token, "explain b-trees")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Chatbot is currently unavailable. Please try again later.", body["response"])
}
