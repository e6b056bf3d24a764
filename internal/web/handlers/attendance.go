package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/facedetect"
	"github.com/jsvoboda/rollcall/internal/imaging"
)

// AttendanceHandler handles attendance matching and the attendance log.
type AttendanceHandler struct {
	service       *attendance.Service
	attendanceLog database.AttendanceRepository
}

// NewAttendanceHandler creates a new attendance handler. attendanceLog may be
// nil, in which case matches are not recorded.
func NewAttendanceHandler(service *attendance.Service, attendanceLog database.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{
		service:       service,
		attendanceLog: attendanceLog,
	}
}

// attendanceRequest is the attendance request body; the imageData field name
// is part of the wire contract.
type attendanceRequest struct {
	ImageData string `json:"imageData"`
}

// attendanceResponse is the successful match response. Confidence is a
// percentage with two-decimal precision, rendered as a string for output
// compatibility.
type attendanceResponse struct {
	Success     bool   `json:"success"`
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Confidence  string `json:"confidence"`
	Message     string `json:"message"`
}

// Mark handles POST /api/student/attendance.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, false, errInvalidRequestBody)
		return
	}

	photo, err := imaging.DecodeDataURI(req.ImageData)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid image data.")
		return
	}

	match, err := h.service.Match(r.Context(), photo)
	if err != nil {
		status, message := matchErrorResponse(err)
		respondMessage(w, status, false, message)
		return
	}

	h.recordMatch(r, match)

	respondJSON(w, http.StatusOK, attendanceResponse{
		Success:     true,
		StudentName: match.StudentName,
		StudentID:   match.StudentID,
		Confidence:  fmt.Sprintf("%.2f", match.Confidence),
		Message:     fmt.Sprintf("Attendance marked for %s.", match.StudentName),
	})
}

// matchErrorResponse maps a match failure to an HTTP status and message.
// "No match" is a business outcome (404), not a backend failure.
func matchErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, attendance.ErrNoMatchFound):
		return http.StatusNotFound, "No matching student found."
	case errors.Is(err, imaging.ErrInvalidImage):
		return http.StatusBadRequest, "Invalid image data."
	case errors.Is(err, facedetect.ErrNoFaceDetected):
		return http.StatusBadRequest, "No face detected in the photo."
	default:
		log.Printf("attendance match failed: %v", err)
		return http.StatusInternalServerError, "Failed to match attendance."
	}
}

// recordMatch stores a successful match in the attendance log. Best-effort:
// a log failure never changes the match response.
func (h *AttendanceHandler) recordMatch(r *http.Request, match attendance.Match) {
	if h.attendanceLog == nil {
		return
	}
	event := database.AttendanceEvent{
		ID:          uuid.NewString(),
		StudentID:   match.StudentID,
		StudentName: match.StudentName,
		Confidence:  match.Confidence,
		RecordedAt:  time.Now().UTC(),
	}
	if err := h.attendanceLog.Record(r.Context(), event); err != nil {
		log.Printf("failed to record attendance event for %s: %v", match.StudentID, err)
	}
}

// Log handles GET /api/attendance/log.
func (h *AttendanceHandler) Log(w http.ResponseWriter, r *http.Request) {
	if h.attendanceLog == nil {
		respondMessage(w, http.StatusServiceUnavailable, false, "Attendance log not available.")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.attendanceLog.List(r.Context(), limit)
	if err != nil {
		log.Printf("list attendance log failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, false, "Failed to list attendance log.")
		return
	}
	if events == nil {
		events = []database.AttendanceEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}
