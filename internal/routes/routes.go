package routes

import (
	"net/http"

	"github.com/vitraworks/vitra/internal/middleware"
	"github.com/vitraworks/vitra/internal/router"
)

// Register wires all routes onto the router.
//
// Three access tiers:
//   - public: health, metrics, customer order intake, quote preview, uploads
//   - staff:  order management, catalog read, auth/me
//   - admin:  catalog replacement, permanent order deletion
func Register(r *router.Router, deps Deps) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// Customer intake runs anonymous. Quotes are harmless to expose and the
	// intake form needs them; uploads carry the pattern files attached to
	// customer orders. The upload route carries its own larger body limit,
	// which is why the JSON limit is applied per-group and not globally.
	jsonBody := middleware.MaxBodySize()
	r.Post("/api/auth/login", deps.Auth.Login, jsonBody)
	r.Post("/api/public/orders", deps.Orders.CreatePublic, jsonBody)
	r.Post("/api/quote", deps.Quote.Preview, jsonBody)
	r.Post("/api/quote/interlayer", deps.Quote.SuggestInterlayer, jsonBody)
	r.Post("/api/quote/sekurit", deps.Quote.SetSekurit, jsonBody)
	r.Post("/api/uploads", deps.Attachments.Upload, middleware.MaxBodySize(middleware.UploadMaxBodySize))
	r.Get("/api/catalog", deps.Catalog.Get)

	r.Static("/uploads", deps.UploadDir)

	// Staff routes
	staff := r.Group(jsonBody, middleware.WithUser(deps.Sessions), middleware.RequireAuth)
	staff.Post("/api/auth/logout", deps.Auth.Logout)
	staff.Get("/api/auth/me", deps.Auth.Me)

	staff.Post("/api/orders", deps.Orders.Create)
	staff.Get("/api/orders", deps.Orders.List)
	staff.Get("/api/orders/{id}", deps.Orders.Get)
	staff.Get("/api/orders/code/{code}", deps.Orders.GetByCode)
	staff.Post("/api/orders/{id}/items", deps.Orders.AddItem)
	staff.Put("/api/orders/{id}/items/{itemID}", deps.Orders.UpdateItem)
	staff.Delete("/api/orders/{id}/items/{itemID}", deps.Orders.RemoveItem)
	staff.Post("/api/orders/{id}/payments", deps.Orders.RecordPayment)
	staff.Put("/api/orders/{id}/payments/{paymentID}", deps.Orders.UpdatePayment)
	staff.Delete("/api/orders/{id}/payments/{paymentID}", deps.Orders.DeletePayment)
	staff.Put("/api/orders/{id}/discount", deps.Orders.SetDiscount)
	staff.Put("/api/orders/{id}/tax", deps.Orders.SetTax)
	staff.Put("/api/orders/{id}/notes", deps.Orders.SetNotes)
	staff.Post("/api/orders/{id}/archive", deps.Orders.Archive)

	// Admin routes
	admin := r.Group(jsonBody, middleware.WithUser(deps.Sessions), middleware.RequireAuth, middleware.RequireAdmin)
	admin.Put("/api/catalog", deps.Catalog.Replace)
	admin.Delete("/api/orders/{id}", deps.Orders.Delete)
}
