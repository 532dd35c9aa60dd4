package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/hub"
	"github.com/jmreyes/dicesheet-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, loader ws.Loader, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/sheets", CreateSheet(h))
	r.Get("/sheets/{code}/export.csv", ExportCSV(h, loader))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, loader, log))
	return r
}
