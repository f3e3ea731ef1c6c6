package app

import (
	"net/http"

	"backoffice/internal/app/handler"
	mw "backoffice/internal/app/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(a.logger))

	auth := mw.Auth(a.session)

	sh := handler.NewSessionHandler(a.admins, a.session)
	rh := handler.NewReviewHandler(a.review, a.receipt)
	fh := handler.NewFeedHandler(a.feed)
	ph := handler.NewProfileHandler(a.profiles)
	prh := handler.NewProductHandler(a.products, a.audit)
	bh := handler.NewBonusCodeHandler(a.codes, a.audit)
	bah := handler.NewBankAccountHandler(a.accounts, a.audit)
	ah := handler.NewAuditLogHandler(a.audit)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session/login", sh.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/locate", rh.Locate)
				r.Get("/feed", fh.List)
				r.Post("/{direction}/{id}/settle", rh.Settle)
				r.Get("/{direction}/{id}/receipt", rh.Receipt)
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", ph.List)
				r.Get("/by-phone/{phone}", ph.ByPhone)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", prh.List)
				r.Post("/", prh.Create)
				r.Put("/{id}", prh.Update)
				r.Delete("/{id}", prh.Deactivate)
			})

			r.Route("/bonus-codes", func(r chi.Router) {
				r.Get("/", bh.List)
				r.Post("/", bh.Issue)
				r.Delete("/{id}", bh.Deactivate)
			})

			r.Route("/bank-accounts", func(r chi.Router) {
				r.Get("/", bah.List)
				r.Post("/", bah.Create)
				r.Put("/{id}", bah.Update)
				r.Delete("/{id}", bah.Deactivate)
			})

			r.Get("/audit-log", ah.List)
		})
	})

	return r
}
