package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"employeemanagement/models"
	"employeemanagement/utils"
)

// Uploader publishes a generated file and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// ExportHandler renders the employee roster as a PDF. With an Uploader set
// the PDF is stored remotely and its URL returned instead of the bytes.
type ExportHandler struct {
	Service  EmployeeService
	Render   func(ctx context.Context, data *models.RosterPDFData) ([]byte, error)
	Uploader Uploader
}

func (h *ExportHandler) RosterPDF(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render := h.Render
	if render == nil {
		render = utils.RosterPDF
	}
	now := time.Now()
	pdf, err := render(r.Context(), utils.BuildRoster(list, now))
	if err != nil {
		writeError(w, r, fmt.Errorf("generate roster pdf: %w", err))
		return
	}

	filename := fmt.Sprintf("employee_roster_%d.pdf", now.Unix())
	if h.Uploader != nil {
		url, err := h.Uploader.Upload(r.Context(), pdf, filename)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Roster uploaded", Data: map[string]string{"url": url}})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
