package routes

import (
	"net/http"

	"employeemanagement/handlers"
)

// withCORS allows the configured browser origin to call the API with cookies.
// An empty origin falls back to "*" without credentials.
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-XSRF-TOKEN")

		// Preflight never reaches the gate.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	corsOrigin string,
	gate *handlers.Gate,
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	exportHandler *handlers.ExportHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.Home)
	mux.HandleFunc("GET /home", handlers.Home)
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /dashboard", handlers.Dashboard)

	// Login
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	// Employee records
	mux.HandleFunc("GET /fetch", employeeHandler.Fetch)
	mux.HandleFunc("POST /insert", employeeHandler.Insert)
	mux.HandleFunc("GET /find/{id}", employeeHandler.Find)
	mux.HandleFunc("PUT /update/{id}", employeeHandler.Update)
	mux.HandleFunc("DELETE /delete/{id}", employeeHandler.Delete)

	mux.HandleFunc("GET /export/pdf", exportHandler.RosterPDF)

	return handlers.RecoverWrapper(withCORS(corsOrigin, gate.Wrap(mux)))
}
