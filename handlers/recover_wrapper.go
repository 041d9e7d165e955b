package handlers

import (
	"log"
	"net/http"
	"runtime"
)

// RecoverWrapper turns a panic anywhere below it into a logged 500.
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				writeFailure(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
