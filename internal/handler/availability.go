package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"schooladmin/internal/model"
	"schooladmin/internal/repository"
)

// AvailabilityHandler serves the dashboard's scheduling-gap report.
type AvailabilityHandler struct {
	Settings     *repository.SettingRepo
	Availability *repository.AvailabilityRepo
}

func NewAvailabilityHandler(s *repository.SettingRepo, a *repository.AvailabilityRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Settings: s, Availability: a}
}

// teacherRow is a professor exposed in availability responses; ids are
// strings on the wire and the email is omitted when empty.
type teacherRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type subjectRow struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Check answers GET /v1/availability. The optional `action` query
// parameter picks one of the two gap lists; anything else (including the
// default) returns both. Every success response carries the school year
// the queries were scoped to.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	action := strings.ToLower(strings.TrimSpace(c.QueryParam("action")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	year, err := h.Settings.CurrentSchoolYear(ctx)
	if err != nil {
		if err == repository.ErrNoSchoolYear {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "No current school year configured."})
		}
		log.Printf("availability: school year lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
	}

	switch action {
	case "teachers", "teachers_without_subjects":
		teachers, err := h.Availability.TeachersWithoutSubjects(ctx, year)
		if err != nil {
			log.Printf("availability: teacher query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":     true,
			"school_year": year,
			"data":        teacherRows(teachers),
		})
	case "subjects", "subjects_without_rooms":
		subjects, err := h.Availability.SubjectsWithoutRooms(ctx, year)
		if err != nil {
			log.Printf("availability: subject query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":     true,
			"school_year": year,
			"data":        subjectRows(subjects),
		})
	default:
		teachers, err := h.Availability.TeachersWithoutSubjects(ctx, year)
		if err != nil {
			log.Printf("availability: teacher query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
		}
		subjects, err := h.Availability.SubjectsWithoutRooms(ctx, year)
		if err != nil {
			log.Printf("availability: subject query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":     true,
			"school_year": year,
			"data": echo.Map{
				"teachers_without_subjects": teacherRows(teachers),
				"subjects_without_rooms":    subjectRows(subjects),
			},
		})
	}
}

// teacherRows keeps empty results as [] rather than null in JSON.
func teacherRows(in []model.Professor) []teacherRow {
	out := make([]teacherRow, 0, len(in))
	for _, p := range in {
		out = append(out, teacherRow{
			ID:    strconv.FormatUint(p.ID, 10),
			Name:  p.Name,
			Email: p.Email,
		})
	}
	return out
}

func subjectRows(in []model.Subject) []subjectRow {
	out := make([]subjectRow, 0, len(in))
	for _, s := range in {
		out = append(out, subjectRow{
			ID:   strconv.FormatUint(s.ID, 10),
			Code: s.Code,
			Name: s.Name,
		})
	}
	return out
}
