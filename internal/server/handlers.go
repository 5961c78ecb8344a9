package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/services/transfer"
	"github.com/riordanpawley/workouttimer/internal/services/workouts"
)

// maxBodyBytes caps request bodies, imports included
const maxBodyBytes = 10 << 20

// workoutRequest is the body of create and update calls
type workoutRequest struct {
	Name      string            `json:"name"`
	Exercises []domain.Exercise `json:"exercises"`
}

type importResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

type themeBody struct {
	Theme domain.Theme `json:"theme"`
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := s.service.List()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	workout, err := s.service.Get(workoutID(r))
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	workout, err := s.service.Add(r.Context(), req.Name, req.Exercises)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	workout, err := s.service.Update(r.Context(), workoutID(r), req.Name, req.Exercises)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.service.Delete(r.Context(), workoutID(r))
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	workout, err := s.service.RecordCompletion(r.Context(), workoutID(r), s.now())
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode, err := workouts.ParseImportMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return
	}

	s.mu.Lock()
	n, err := s.service.Import(r.Context(), data, mode)
	s.mu.Unlock()

	if err != nil {
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, importResponse{Message: transfer.ImportErrorMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: n, Message: transfer.ImportedMessage(n)})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.service.Clear(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": transfer.ClearedMessage})
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	s.export(w, transfer.FormatJSON, "application/json")
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	s.export(w, transfer.FormatMarkdown, "text/markdown; charset=utf-8")
}

func (s *Server) export(w http.ResponseWriter, format transfer.Format, contentType string) {
	s.mu.Lock()
	list := s.service.List()
	s.mu.Unlock()

	now := s.now()
	data, err := transfer.Export(list, format, now)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNothingToExport) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": transfer.ExportErrorMessage(err, format)})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.Filename(format, now)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.service.Stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	theme := s.service.Theme()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, themeBody{Theme: theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	err := s.service.SetTheme(r.Context(), body.Theme)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func workoutID(r *http.Request) domain.WorkoutID {
	return domain.WorkoutID(chi.URLParam(r, "id"))
}

// decodeBody reads a JSON body, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNoExercises),
		errors.Is(err, domain.ErrInvalidTheme):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
