package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	handleFunc(mux, "GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	handleFunc(mux, "GET /openapi.yaml", handler.OpenAPI)
	handleFunc(mux, "GET /docs", handler.SwaggerUI)
	handleFunc(mux, "GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	// The board list sorts the caller's own listings first when a token is sent.
	handle(mux, "GET /v1/listings", OptionalAuth(verifier, http.HandlerFunc(handler.ListListings)))
	handleFunc(mux, "GET /v1/listings/{listingID}", handler.GetListing)
	handleFunc(mux, "GET /v1/play-style-tags", handler.ListPlayStyleTags)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedListingRoutes(mux, handler, verifier)
	registerAuthorizedApplicationRoutes(mux, handler, verifier)
	registerAuthorizedProfileRoutes(mux, handler, verifier)
}

func registerAuthorizedListingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "GET /v1/board", RequireAuth(verifier, http.HandlerFunc(handler.GetBoard)))
	handle(mux, "POST /v1/listings", RequireAuth(verifier, http.HandlerFunc(handler.CreateListing)))
	handle(mux, "GET /v1/listings/me/active", RequireAuth(verifier, http.HandlerFunc(handler.GetMyActiveListing)))
	handle(mux, "POST /v1/listings/{listingID}/close", RequireAuth(verifier, http.HandlerFunc(handler.CloseListing)))
	handle(mux, "POST /v1/listings/{listingID}/reopen", RequireAuth(verifier, http.HandlerFunc(handler.ReopenListing)))
	handle(mux, "DELETE /v1/listings/{listingID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteListing)))
	handle(mux, "POST /v1/listings/{listingID}/finalize", RequireAuth(verifier, http.HandlerFunc(handler.FinalizeListing)))
}

func registerAuthorizedApplicationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "POST /v1/listings/{listingID}/applications", RequireAuth(verifier, http.HandlerFunc(handler.ApplyToListing)))
	handle(mux, "GET /v1/listings/{listingID}/applications", RequireAuth(verifier, http.HandlerFunc(handler.ListApplicants)))
	handle(mux, "GET /v1/applications/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyApplications)))
	handle(mux, "GET /v1/results/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyResults)))
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "GET /v1/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	handle(mux, "PUT /v1/profile", RequireAuth(verifier, http.HandlerFunc(handler.SaveProfile)))
	handle(mux, "GET /v1/profile/listing-defaults", RequireAuth(verifier, http.HandlerFunc(handler.GetListingDefaults)))
	handle(mux, "GET /v1/profile/tracker", RequireAuth(verifier, http.HandlerFunc(handler.FetchTrackerProfile)))
}

func registerModeratorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	moderator := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireModerator(h))
	}
	handle(mux, "GET /v1/admin/play-style-tags", moderator(handler.AdminListPlayStyleTags))
	handle(mux, "POST /v1/admin/play-style-tags", moderator(handler.AdminCreatePlayStyleTag))
	handle(mux, "PATCH /v1/admin/play-style-tags/{tagID}", moderator(handler.AdminUpdatePlayStyleTag))
	handle(mux, "DELETE /v1/admin/play-style-tags/{tagID}", moderator(handler.AdminDeletePlayStyleTag))
}

func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, routed(pattern, h))
}

func handleFunc(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	handle(mux, pattern, h)
}
