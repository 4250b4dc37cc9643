// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/model"
)

// RouterDeps holds the middleware collaborators the route tree needs
// beyond the Handler itself.
type RouterDeps struct {
	SetupGuard *middleware.SetupGuard
	CSRF       func(http.Handler) http.Handler
}

// Routes builds the full route tree: public marketing API, lead/booking
// capture, and the role-gated back office.
func (h *Handler) Routes(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(h.cfg.IsDevelopment())))

	r.Get("/healthz", h.Healthz)

	// Uploaded media is served directly from disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.cfg.UploadsDir))))

	// Public site API.
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(h.loginProt.Middleware()).Post("/login", h.SiteLogin)
			r.Post("/logout", h.SiteLogout)
			r.With(middleware.LoadSiteUser(h.siteSessions, h.queries)).Get("/session", h.SiteSession)
		})

		r.Get("/services", h.ListServices)
		r.Get("/services/{idOrSlug}", h.GetService)
		r.Get("/case-studies", h.ListCaseStudies)
		r.Get("/case-studies/{idOrSlug}", h.GetCaseStudy)
		r.Get("/blog", h.ListBlogPosts)
		r.Get("/blog/{idOrSlug}", h.GetBlogPost)
		r.Get("/testimonials", h.ListTestimonials)

		r.Get("/content", h.ListContentBlocks)
		r.Get("/content/page/{page}", h.GetPageContent)
		r.Get("/settings", h.GetSettings)

		r.Post("/leads", h.CreateLead)
		r.Post("/bookings", h.CreateBooking)

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			// Setup endpoints stay outside the setup gate so a fresh
			// install can bootstrap itself.
			r.Get("/setup", h.GetSetupStatus)
			r.Post("/setup", h.RunSetup)

			r.Group(func(r chi.Router) {
				r.Use(d.SetupGuard.Middleware())

				r.With(h.loginProt.Middleware()).Post("/login", h.AdminLogin)
				r.Post("/logout", h.AdminLogout)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminAuth(h.adminSessions, h.queries))
					if d.CSRF != nil {
						r.Use(d.CSRF)
					}

					r.Get("/session", h.AdminSession)
					r.Get("/stats", h.GetStats)

					// Content entities: admin and editor roles.
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireEditor())

						r.Get("/services", h.ListServices)
						r.Post("/services", h.CreateService)
						r.Get("/services/{idOrSlug}", h.GetService)
						r.Patch("/services/{id}", h.UpdateService)
						r.Delete("/services/{id}", h.DeleteService)

						r.Get("/case-studies", h.ListCaseStudies)
						r.Post("/case-studies", h.CreateCaseStudy)
						r.Get("/case-studies/{idOrSlug}", h.GetCaseStudy)
						r.Patch("/case-studies/{id}", h.UpdateCaseStudy)
						r.Delete("/case-studies/{id}", h.DeleteCaseStudy)

						r.Get("/testimonials", h.ListTestimonials)
						r.Post("/testimonials", h.CreateTestimonial)
						r.Get("/testimonials/{id}", h.GetTestimonial)
						r.Patch("/testimonials/{id}", h.UpdateTestimonial)
						r.Delete("/testimonials/{id}", h.DeleteTestimonial)

						r.Get("/content", h.ListAllContentBlocks)
						r.Post("/content", h.CreateContentBlock)
						r.Patch("/content/{id}", h.UpdateContentBlock)
						r.Delete("/content/{id}", h.DeleteContentBlock)

						r.Get("/media", h.ListMedia)
						r.Post("/media", h.UploadMedia)
						r.Get("/media/{id}", h.GetMedia)
					})

					// Blog: authors may write; ownership is enforced per
					// post in the handlers.
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRole(model.Role.CanWriteBlog))

						r.Get("/blog", h.ListBlogPosts)
						r.Post("/blog", h.CreateBlogPost)
						r.Get("/blog/{idOrSlug}", h.GetBlogPost)
						r.Patch("/blog/{id}", h.UpdateBlogPost)
						r.Delete("/blog/{id}", h.DeleteBlogPost)
					})

					// Admin-only surface.
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin())

						r.Get("/leads", h.ListLeads)
						r.Get("/leads/{id}", h.GetLead)
						r.Patch("/leads/{id}", h.UpdateLead)
						r.Delete("/leads/{id}", h.DeleteLead)

						r.Get("/bookings", h.ListBookings)
						r.Get("/bookings/{id}", h.GetBooking)
						r.Patch("/bookings/{id}", h.UpdateBooking)
						r.Delete("/bookings/{id}", h.DeleteBooking)

						r.Get("/settings", h.GetAdminSettings)
						r.Patch("/settings", h.UpdateSettings)

						r.Delete("/media/{id}", h.DeleteMedia)

						r.Get("/users", h.ListAdminUsers)
						r.Post("/users", h.CreateAdminUser)
						r.Get("/users/{id}", h.GetAdminUser)
						r.Patch("/users/{id}", h.UpdateAdminUser)
						r.Delete("/users/{id}", h.DeleteAdminUser)
					})
				})
			})
		})
	})

	return r
}
