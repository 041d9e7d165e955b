package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"employeemanagement/auth"
	"employeemanagement/models"
	"employeemanagement/services"
)

// fakeService counts calls and serves a single employee with id 1.
type fakeService struct {
	calls int
	err   error
}

func (f *fakeService) List(ctx context.Context) ([]*models.Employee, error) {
	f.calls++
	return []*models.Employee{{ID: 1, Name: "Alice"}}, f.err
}

func (f *fakeService) Insert(ctx context.Context, e models.Employee) (*models.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	e.ID = 7
	return &e, nil
}

func (f *fakeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	f.calls++
	if id != 1 {
		return nil, &services.NotFoundError{ID: id}
	}
	return &models.Employee{ID: 1, Name: "Alice"}, nil
}

func (f *fakeService) Update(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	f.calls++
	return nil, &services.NotFoundError{ID: id}
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	f.calls++
	if id != 1 {
		return &services.NotFoundError{ID: id}
	}
	return nil
}

func newGate(csrf bool) *Gate {
	return &Gate{
		Policy:   auth.DefaultPolicy(),
		Sessions: &auth.SessionManager{Store: auth.NewSessionStore(time.Minute)},
		CSRF:     &auth.CSRF{Enabled: csrf},
	}
}

func employeeMux(svc EmployeeService) *http.ServeMux {
	h := &EmployeeHandler{Service: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fetch", h.Fetch)
	mux.HandleFunc("POST /insert", h.Insert)
	mux.HandleFunc("GET /find/{id}", h.Find)
	mux.HandleFunc("PUT /update/{id}", h.Update)
	mux.HandleFunc("DELETE /delete/{id}", h.Delete)
	return mux
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func TestGate_AnonymousNeverReachesService(t *testing.T) {
	svc := &fakeService{}
	h := newGate(false).Wrap(employeeMux(svc))

	reqs := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/fetch", nil),
		httptest.NewRequest(http.MethodPost, "/insert", strings.NewReader(`{"name":"x"}`)),
		httptest.NewRequest(http.MethodGet, "/find/1", nil),
		httptest.NewRequest(http.MethodPut, "/update/1", strings.NewReader(`{}`)),
		httptest.NewRequest(http.MethodDelete, "/delete/1", nil),
	}
	for _, r := range reqs {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s = %d", r.Method, r.URL.Path, w.Code)
		}
		if resp := decodeResponse(t, w); resp.Success || resp.Message != "Authentication required" {
			t.Fatalf("body: %+v", resp)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("service reached %d times", svc.calls)
	}
}

func TestGate_CSRFRequiredForWrites(t *testing.T) {
	svc := &fakeService{}
	g := newGate(true)
	token := g.Sessions.Store.Create(auth.Principal{Username: "admin", Role: auth.RoleAdmin})
	h := g.Wrap(employeeMux(svc))

	r := httptest.NewRequest(http.MethodDelete, "/delete/1", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden || svc.calls != 0 {
		t.Fatalf("missing csrf: code=%d calls=%d", w.Code, svc.calls)
	}

	r = httptest.NewRequest(http.MethodDelete, "/delete/1", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	r.AddCookie(&http.Cookie{Name: auth.CSRFCookieName, Value: "t"})
	r.Header.Set(auth.CSRFHeaderName, "t")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("delete with csrf: code=%d body=%q", w.Code, w.Body.String())
	}
}

func TestGate_TraceDenied(t *testing.T) {
	w := httptest.NewRecorder()
	newGate(false).Wrap(http.HandlerFunc(Home)).ServeHTTP(w, httptest.NewRequest(http.MethodTrace, "/home", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("TRACE = %d", w.Code)
	}
}

func TestEmployeeHandler_StatusMapping(t *testing.T) {
	mux := employeeMux(&fakeService{})
	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/fetch", "", http.StatusOK},
		{http.MethodPost, "/insert", `{"name":"Bob","email":"b@example.com","employee_password":"legacy"}`, http.StatusCreated},
		{http.MethodPost, "/insert", `{not json`, http.StatusBadRequest},
		{http.MethodGet, "/find/1", "", http.StatusOK},
		{http.MethodGet, "/find/2", "", http.StatusNotFound},
		{http.MethodGet, "/find/abc", "", http.StatusBadRequest},
		{http.MethodPut, "/update/5", `{"salary":1}`, http.StatusNotFound},
		{http.MethodDelete, "/delete/1", "", http.StatusOK},
		{http.MethodDelete, "/delete/9", "", http.StatusNotFound},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(c.method, c.path, strings.NewReader(c.body)))
		if w.Code != c.want {
			t.Errorf("%s %s = %d, want %d (%s)", c.method, c.path, w.Code, c.want, w.Body.String())
		}
	}
}

func TestEmployeeHandler_NotFoundMessage(t *testing.T) {
	w := httptest.NewRecorder()
	employeeMux(&fakeService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/find/42", nil))
	if resp := decodeResponse(t, w); resp.Message != "User not found with this id = 42" {
		t.Fatalf("message: %q", resp.Message)
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	employeeMux(&fakeService{err: errors.New("db password leaked")}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch", nil))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "leaked") {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestRecoverWrapper(t *testing.T) {
	h := RecoverWrapper(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", w.Code)
	}
}

type fakeUploader struct{ got []byte }

func (u *fakeUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	u.got = data
	return "https://files.example.com/" + filename, nil
}

func TestExportHandler(t *testing.T) {
	render := func(ctx context.Context, data *models.RosterPDFData) ([]byte, error) {
		if data.Headcount != 1 {
			t.Errorf("headcount %d", data.Headcount)
		}
		return []byte("%PDF-fake"), nil
	}

	h := &ExportHandler{Service: &fakeService{}, Render: render}
	w := httptest.NewRecorder()
	h.RosterPDF(w, httptest.NewRequest(http.MethodGet, "/export/pdf", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" || w.Body.String() != "%PDF-fake" {
		t.Fatalf("direct download: code=%d type=%s", w.Code, w.Header().Get("Content-Type"))
	}

	up := &fakeUploader{}
	h.Uploader = up
	w = httptest.NewRecorder()
	h.RosterPDF(w, httptest.NewRequest(http.MethodGet, "/export/pdf", nil))
	resp := decodeResponse(t, w)
	if !resp.Success || string(up.got) != "%PDF-fake" {
		t.Fatalf("upload: %+v", resp)
	}
}
