package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/web/handlers"
	"github.com/jsvoboda/rollcall/internal/web/static"
)

func (s *Server) setupRoutes(
	service *attendance.Service,
	students database.StudentRepository,
	attendanceLog database.AttendanceRepository,
) {
	studentsHandler := handlers.NewStudentsHandler(service, students)
	attendanceHandler := handlers.NewAttendanceHandler(service, attendanceLog)

	s.router.Get("/api/health", handlers.HealthCheck)

	// Field names and paths are part of the compatibility contract.
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/student/enroll", studentsHandler.Enroll)
		r.Get("/student/all", studentsHandler.ListAll)
		r.Post("/student/attendance", attendanceHandler.Mark)
		r.Get("/attendance/log", attendanceHandler.Log)
	})

	// Serve the embedded client application.
	s.router.Get("/*", s.serveStatic)
}

// serveStatic serves the embedded client page, falling back to index.html
// for unknown paths.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	fs := static.GetFileSystem()
	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	f, err := fs.Open(path)
	if err != nil {
		// Unknown path: serve the entry point.
		f, err = fs.Open("/index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		path = "/index.html"
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(path, ".html"):
		contentType = "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".css"):
		contentType = "text/css; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		contentType = "application/javascript; charset=utf-8"
	case strings.HasSuffix(path, ".svg"):
		contentType = "image/svg+xml"
	case strings.HasSuffix(path, ".png"):
		contentType = "image/png"
	case strings.HasSuffix(path, ".ico"):
		contentType = "image/x-icon"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}
