package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lunch-voting-api/config"
	"lunch-voting-api/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password every fixture user is created with.
const TestPassword = "password123"

// NewDB opens a fresh, migrated SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "lunch_voting_test.db")
	db, err := config.OpenDB(config.DBConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Day returns noon UTC on the given YYYY-MM-DD.
func Day(t *testing.T, day string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, day)
	require.NoError(t, err)
	return d.Add(12 * time.Hour)
}

func CreateUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     username,
		IsStaff:      staff,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateEmployee(t *testing.T, db *gorm.DB, user *models.User, employeeNo string) *models.Employee {
	t.Helper()
	e := &models.Employee{EmployeeNo: employeeNo}
	if user != nil {
		e.UserID = &user.ID
	}
	require.NoError(t, db.Omit("User").Create(e).Error)
	return e
}

func CreateRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, ContactNo: "+380000000000", Address: "Lviv"}
	require.NoError(t, db.Create(r).Error)
	return r
}

// CreateMenu inserts a menu dated day with a preset tally.
func CreateMenu(t *testing.T, db *gorm.DB, restaurantID uint, day string, votes int) *models.Menu {
	t.Helper()
	m := &models.Menu{
		RestaurantID: restaurantID,
		File:         "/media/menus/fixture.pdf",
		Votes:        votes,
		CreatedOn:    day,
		UploadedBy:   "fixture",
		CreatedAt:    Day(t, day),
	}
	require.NoError(t, db.Omit("Restaurant").Create(m).Error)
	return m
}

// CountVotes returns how many vote rows point at a menu.
func CountVotes(t *testing.T, db *gorm.DB, menuID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Vote{}).Where("menu_id = ?", menuID).Count(&n).Error)
	return n
}

// Envelope mirrors the API response body with Data left raw.
type Envelope struct {
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

// DoJSON sends body as JSON (nil for none) with an optional bearer token.
func DoJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}
