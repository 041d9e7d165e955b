package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"employeemanagement/auth"
)

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Please sign in</title></head>
<body>
<form method="post" action="/login">
<h2>Please sign in</h2>
<p><label for="username">Username</label> <input type="text" id="username" name="username" required autofocus></p>
<p><label for="password">Password</label> <input type="password" id="password" name="password" required></p>
{{if .CSRF}}<input type="hidden" name="_csrf" value="{{.CSRF}}">{{end}}
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

type AuthHandler struct {
	Auth        *auth.Authenticator
	Sessions    *auth.SessionManager
	CSRF        *auth.CSRF
	SuccessPath string
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ CSRF string }{CSRF: auth.CSRFTokenFromContext(r.Context())}
	if err := loginPage.Execute(w, data); err != nil {
		log.Printf("render login page: %v", err)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readLogin(r *http.Request) (loginRequest, error) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, nil
}

// Login starts a fresh session on success and redirects to the landing page.
// Every failure gets the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := readLogin(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	p, err := h.Auth.Authenticate(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrBadCredentials) {
			log.Printf("login: %v", err)
		}
		writeFailure(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	h.Sessions.Start(w, r, p)
	r = h.CSRF.Rotate(w, r)
	log.Printf("user %s logged in", p.Username)
	http.Redirect(w, r, h.SuccessPath, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.End(w, r)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Logged out"})
}
