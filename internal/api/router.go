package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "stickr/internal/api/context"
	"stickr/internal/api/handlers"
	"stickr/internal/api/middleware"
	"stickr/internal/web"
)

type Dependencies struct {
	StickerHandler *handlers.StickerHandler
	HealthHandler  *handlers.HealthHandler
	WebHandler     *web.Handler
	MaxUploadBytes int64
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	logMid := middleware.RequestLogger
	sizeMid := middleware.MaxUploadSize(deps.MaxUploadBytes)

	// Embedded web form
	router.GET("/", wrap(chainFuncs(deps.WebHandler.Index, logMid)))

	// Sticker generation and retrieval
	router.POST("/api/v1/stickers",
		chain(deps.StickerHandler.Generate, logMid, sizeMid))
	router.GET("/api/v1/stickers/:batch_id",
		chain(deps.StickerHandler.Get, logMid))
	router.GET("/api/v1/stickers/:batch_id/archive",
		chain(deps.StickerHandler.DownloadArchive, logMid))
	router.GET("/api/v1/stickers/:batch_id/preview/:serial",
		chain(deps.StickerHandler.Preview, logMid))

	router.GET("/api/v1/health", chain(deps.HealthHandler.Check, logMid))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	return wrap(chainFuncs(handler, middlewares...))
}

func chainFuncs(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
