package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"minibrain/internal/handlers"
	"minibrain/internal/rag"
	"minibrain/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine   rag.Engine
	NoteService service.NoteService
	Questions   handlers.QuestionLister
	DB          handlers.Pinger
	// VectorStore is nil when the vector mirror is disabled.
	VectorStore    handlers.CollectionInspector
	CollectionName string
	Validator      TokenValidator
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	notesHandler := handlers.NewNotesHandler(deps.NoteService)
	noteHandler := handlers.NewNoteHandler(deps.NoteService)
	questionsHandler := handlers.NewQuestionsHandler(deps.Questions)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Method(http.MethodGet, "/api/health", healthHandler)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(deps.Validator))

		r.Route("/api/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", askHandler)
			r.Method(http.MethodGet, "/questions", questionsHandler)

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", notesHandler.Create)
				r.Get("/", notesHandler.List)
				r.Get("/{id}", notesHandler.Get)
				r.Put("/{id}", notesHandler.Update)
				r.Delete("/{id}", notesHandler.Delete)
				r.Get("/{id}/related", notesHandler.Related)
			})
		})

		r.Method(http.MethodGet, "/notes/{id}", noteHandler)
	})

	return r
}
