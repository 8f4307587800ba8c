package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"releaseapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ReleaseService) {
	// Health endpoints: /health checks DB connectivity, /healthz is liveness only.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Distribution endpoints consumed by the marketing site and desktop app.
	app.Post("/admin-upload", UploadInstaller(svc))
	app.Get("/download-app", ResolveDownload(svc))
	app.Get("/get-total-downloads", TotalDownloads(svc))

	// Admin panel endpoints.
	app.Get("/versions", ListVersions(svc))
	app.Post("/versions/:id/latest", PromoteVersion(svc))
}
