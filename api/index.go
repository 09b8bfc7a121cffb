package handler

import (
	"net/http"

	"leaseos-backend/bootstrap"
	"leaseos-backend/internal/interfaces/router"
)

var handler http.Handler

func init() {
	app, err := bootstrap.New()
	if err != nil {
		panic("app create: " + err.Error())
	}
	handler = router.Handler(app)
}

// Handler is the Vercel serverless entry point. All requests are rewritten here.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()
	handler.ServeHTTP(w, r)
}
