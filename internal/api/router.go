package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/opravila/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	todosHandler := &TodosHandler{Service: &service.Service{DB: db}}

	mux.HandleFunc("GET /api/v1/todo", todosHandler.List)
	mux.HandleFunc("POST /api/v1/todo", todosHandler.Create)
	mux.HandleFunc("PUT /api/v1/todo/reorder", todosHandler.Reorder)
	mux.HandleFunc("GET /api/v1/todo/{id}", todosHandler.Get)
	mux.HandleFunc("PATCH /api/v1/todo/{id}", todosHandler.Update)
	mux.HandleFunc("DELETE /api/v1/todo/{id}", todosHandler.Delete)

	return mux
}
