// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ponto-intake/internal/adjustments"
	"ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/metrics"
)

const maxBodyBytes = 1 << 20

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   *int64 `json:"count,omitempty"`
}

// handleSubmit runs the intake pipeline: validate, normalize, persist, then
// notify best-effort. A notification failure after successful persistence is
// logged and swallowed; the submission still succeeds.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	metrics.SubmissionsReceived.Inc()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, "falha ao ler o corpo da requisição", errors.NewValidationError(err.Error()))
		return
	}

	if err := adjustments.ValidateSubmission(body); err != nil {
		s.fail(w, "corpo da requisição inválido", err)
		return
	}

	var batch adjustments.SubmissionBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		s.fail(w, "corpo da requisição inválido", errors.NewValidationError(err.Error()))
		return
	}

	records, err := adjustments.Normalize(&batch, s.now())
	if err != nil {
		s.fail(w, "nenhum ajuste informado", err)
		return
	}

	if err := s.store.InsertAll(r.Context(), records); err != nil {
		s.fail(w, "erro ao salvar os registros", err)
		return
	}
	metrics.RecordsPersisted.Add(float64(len(records)))

	if err := s.notifier.Notify(r.Context(), records, batch.ManagerEmail, batch.ManagerName); err != nil {
		metrics.EmailsFailed.Inc()
		s.logger.Error("notification failed after persistence, reporting success", map[string]interface{}{
			"error":   err,
			"records": len(records),
			"manager": batch.ManagerEmail,
		})
	} else {
		metrics.EmailsSent.Inc()
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: fmt.Sprintf("%d registro(s) de ajuste salvos com sucesso.", len(records)),
	})
}

// handleDownload streams every persisted record as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.FetchAll(r.Context())
	if err != nil {
		s.fail(w, "erro ao buscar e exportar dados", err)
		return
	}

	content := adjustments.ToCSV(records)
	fileName := fmt.Sprintf("registros_locmed_%s.csv", s.now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)

	metrics.ExportsServed.Inc()
	s.logger.Info("export served", map[string]interface{}{
		"records":  len(records),
		"fileName": fileName,
	})
}

// handleReset unconditionally deletes every record. Irreversible; there is no
// confirmation step.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.ClearAll(r.Context())
	if err != nil {
		s.fail(w, "erro ao limpar os registros", err)
		return
	}

	metrics.ResetsPerformed.Inc()
	s.logger.Info("store reset", map[string]interface{}{
		"count": count,
	})

	s.respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: fmt.Sprintf("%d registro(s) removidos.", count),
		Count:   &count,
	})
}

// fail is the single failure boundary shared by all routes.
func (s *Server) fail(w http.ResponseWriter, prefix string, err error) {
	status := errors.HTTPStatus(err)
	code := errors.CodeOf(err)

	s.logger.Error("request failed", map[string]interface{}{
		"error":     err,
		"errorCode": code,
		"status":    status,
	})
	metrics.RequestsFailed.WithLabelValues(string(code)).Inc()

	s.respondJSON(w, status, apiResponse{
		Success: false,
		Message: fmt.Sprintf("%s: %s", prefix, errors.PublicMessage(err)),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err,
		})
	}
}
