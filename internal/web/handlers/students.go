package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/facedetect"
	"github.com/jsvoboda/rollcall/internal/imaging"
)

// StudentsHandler handles student enrollment and listing endpoints.
type StudentsHandler struct {
	service  *attendance.Service
	students database.StudentReader
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(service *attendance.Service, students database.StudentReader) *StudentsHandler {
	return &StudentsHandler{
		service:  service,
		students: students,
	}
}

// enrollRequest is the enrollment request body; field names are part of the
// wire contract.
type enrollRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Class     string `json:"class"`
	PhotoData string `json:"photoData"`
}

// Enroll handles POST /api/student/enroll.
func (h *StudentsHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, false, errInvalidRequestBody)
		return
	}

	photo, err := imaging.DecodeDataURI(req.PhotoData)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid image data.")
		return
	}

	_, err = h.service.Enroll(r.Context(), attendance.EnrollRequest{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Class: req.Class,
		Photo: photo,
	})
	if err != nil {
		status, message := enrollErrorResponse(err)
		respondMessage(w, status, false, message)
		return
	}

	respondMessage(w, http.StatusOK, true, "Student enrolled successfully.")
}

// enrollErrorResponse maps an enrollment failure to an HTTP status and a
// human-readable message. Client errors are 4xx; storage and other backend
// failures are 5xx.
func enrollErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, attendance.ErrMissingID):
		return http.StatusBadRequest, "Student id is required."
	case errors.Is(err, imaging.ErrInvalidImage):
		return http.StatusBadRequest, "Invalid image data."
	case errors.Is(err, facedetect.ErrNoFaceDetected):
		return http.StatusBadRequest, "No face detected in the photo."
	case errors.Is(err, database.ErrDuplicateID):
		return http.StatusConflict, "Student with this id is already enrolled."
	default:
		log.Printf("enroll failed: %v", err)
		return http.StatusInternalServerError, "Failed to enroll student."
	}
}

// ListAll handles GET /api/student/all. Returns full student documents,
// descriptors included, ordered by id.
func (h *StudentsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.ListAll(r.Context())
	if err != nil {
		log.Printf("list students failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, false, "Failed to list students.")
		return
	}
	if students == nil {
		students = []database.Student{}
	}
	respondJSON(w, http.StatusOK, students)
}
