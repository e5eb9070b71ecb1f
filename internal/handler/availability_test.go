package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"schooladmin/internal/handler"
	"schooladmin/internal/repository"
)

var errMockQuery = errors.New("Error 1146 (42S02): Table 'school.professors' doesn't exist")

func newAvailabilityHandler(t *testing.T) (*handler.AvailabilityHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return handler.NewAvailabilityHandler(repository.NewSettingRepo(db), repository.NewAvailabilityRepo(db)), mock
}

func getAvailability(t *testing.T, h *handler.AvailabilityHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/availability"+query, nil)
	rec := httptest.NewRecorder()
	if err := h.Check(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	return rec
}

func expectYear(mock sqlmock.Sqlmock, year string) {
	mock.ExpectQuery("FROM system_settings").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(year))
}

func TestAvailability_NoSchoolYearConfigured(t *testing.T) {
	h, mock := newAvailabilityHandler(t)
	mock.ExpectQuery("FROM system_settings").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	rec := getAvailability(t, h, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Errorf("success = %v, want false", env["success"])
	}
	if env["message"] != "No current school year configured." {
		t.Errorf("message = %v", env["message"])
	}
	if _, ok := env["data"]; ok {
		t.Error("config-error response must not carry data")
	}
}

func TestAvailability_TeachersAction(t *testing.T) {
	// Case and whitespace in the action parameter are ignored, and both
	// spellings select the teacher list.
	for _, action := range []string{"teachers", "teachers_without_subjects", "%20TEACHERS%20"} {
		t.Run(action, func(t *testing.T) {
			h, mock := newAvailabilityHandler(t)
			expectYear(mock, "2024-2025")
			mock.ExpectQuery("FROM professors p").WithArgs("2024-2025", "2024-2025").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow(5, "Dr. Cruz", "cruz@school.edu"))

			rec := getAvailability(t, h, "?action="+action)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env["school_year"] != "2024-2025" {
				t.Errorf("school_year = %v", env["school_year"])
			}
			data, ok := env["data"].([]any)
			if !ok || len(data) != 1 {
				t.Fatalf("data = %v, want one-element array", env["data"])
			}
			row, _ := data[0].(map[string]any)
			if row["id"] != "5" || row["name"] != "Dr. Cruz" {
				t.Errorf("row = %v", row)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestAvailability_SubjectsAction(t *testing.T) {
	h, mock := newAvailabilityHandler(t)
	expectYear(mock, "2024-2025")
	mock.ExpectQuery("FROM subjects sub").WithArgs("2024-2025").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow(1, "MATH101", "Algebra"))

	rec := getAvailability(t, h, "?action=subjects_without_rooms")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	data, ok := env["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one-element array", env["data"])
	}
	row, _ := data[0].(map[string]any)
	if row["id"] != "1" || row["code"] != "MATH101" {
		t.Errorf("row = %v", row)
	}
}

// TestAvailability_CombinedView: any other action value, including none at
// all, returns both lists under their named keys.
func TestAvailability_CombinedView(t *testing.T) {
	for _, query := range []string{"", "?action=bogus"} {
		t.Run("query="+query, func(t *testing.T) {
			h, mock := newAvailabilityHandler(t)
			expectYear(mock, "2024-2025")
			mock.ExpectQuery("FROM professors p").WithArgs("2024-2025", "2024-2025").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))
			mock.ExpectQuery("FROM subjects sub").WithArgs("2024-2025").
				WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
					AddRow(1, "MATH101", "Algebra"))

			rec := getAvailability(t, h, query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			data, _ := env["data"].(map[string]any)
			teachers, ok := data["teachers_without_subjects"].([]any)
			if !ok || len(teachers) != 0 {
				t.Errorf("teachers_without_subjects = %v, want empty array", data["teachers_without_subjects"])
			}
			subjects, ok := data["subjects_without_rooms"].([]any)
			if !ok || len(subjects) != 1 {
				t.Errorf("subjects_without_rooms = %v, want one element", data["subjects_without_rooms"])
			}
		})
	}
}

func TestAvailability_QueryFailure(t *testing.T) {
	h, mock := newAvailabilityHandler(t)
	expectYear(mock, "2024-2025")
	mock.ExpectQuery("FROM professors p").WithArgs("2024-2025", "2024-2025").
		WillReturnError(errMockQuery)

	rec := getAvailability(t, h, "?action=teachers")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	// Driver detail stays in the server log, never the body.
	if env["message"] != "Server error." {
		t.Errorf("message = %v, want generic server error", env["message"])
	}
}
