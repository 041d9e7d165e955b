package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"employeemanagement/models"
)

// EmployeeService is what the employee routes need from the service layer.
type EmployeeService interface {
	List(ctx context.Context) ([]*models.Employee, error)
	Insert(ctx context.Context, e models.Employee) (*models.Employee, error)
	Get(ctx context.Context, id int64) (*models.Employee, error)
	Update(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type EmployeeHandler struct {
	Service EmployeeService
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeFailure(w, http.StatusBadRequest, "Invalid employee id: "+r.PathValue("id"))
		return 0, false
	}
	return id, true
}

func (h *EmployeeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EmployeeHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	created, err := h.Service.Insert(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EmployeeHandler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	e, err := h.Service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete answers an empty 200 on success.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
