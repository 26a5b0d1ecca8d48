// Package routes wires handlers and middleware onto the router.
package routes

import (
	"github.com/vitraworks/vitra/internal/handler"
	"github.com/vitraworks/vitra/internal/middleware"
)

// Deps contains everything route registration needs.
type Deps struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Quote       *handler.QuoteHandler
	Orders      *handler.OrderHandler
	Attachments *handler.AttachmentHandler

	// Sessions resolves cookies to users for the auth middleware.
	Sessions middleware.SessionReader

	// Metrics serves /metrics and records per-request HTTP metrics.
	Metrics *middleware.Metrics

	// UploadDir is the local directory pattern files are served from.
	UploadDir string
}
