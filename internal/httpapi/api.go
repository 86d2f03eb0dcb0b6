// Package httpapi is the HTTP surface of the service. Every protected
// route sits behind the access gate, a three-stage middleware chain:
// withAuth resolves the bearer credential, requireRole checks the live
// role in storage, recordActivity appends the audit entry. Any stage can
// short-circuit with a rejection.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"harborview.org/internal/audit"
	"harborview.org/internal/auth"
	"harborview.org/internal/config"
	"harborview.org/internal/hotel"
	"harborview.org/internal/identity"
	"harborview.org/internal/mailer"
	"harborview.org/internal/obs"
	"harborview.org/internal/provider"
)

// ReadyProbe reports whether the service can take traffic.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Deps are the collaborators the API needs; all are injected.
type Deps struct {
	Identities identity.Store
	Hotel      hotel.Store
	Signer     *auth.Signer
	Recorder   *audit.Recorder
	Mailer     mailer.Sender
	Google     provider.GoogleVerifier
	Ready      ReadyProbe
	Version    string
}

// API is the HTTP layer.
type API struct {
	cfg      config.Config
	log      *zerolog.Logger
	idents   identity.Store
	hotel    hotel.Store
	signer   *auth.Signer
	recorder *audit.Recorder
	mail     mailer.Sender
	google   provider.GoogleVerifier
	ready    ReadyProbe
	version  string
	validate *validator.Validate
	router   chi.Router
}

func New(cfg config.Config, deps Deps) *API {
	a := &API{
		cfg:      cfg,
		log:      obs.Logger(),
		idents:   deps.Identities,
		hotel:    deps.Hotel,
		signer:   deps.Signer,
		recorder: deps.Recorder,
		mail:     deps.Mailer,
		google:   deps.Google,
		ready:    deps.Ready,
		version:  deps.Version,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	a.router = a.routes()
	return a
}

func (a *API) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(SecurityHeaders)
	r.Use(CORS)
	r.Use(MaxBodyBytes(1 << 20))
	r.Use(RateLimit(a.cfg.RateBurst, a.cfg.RatePerSec))

	r.Get("/healthz", a.handleHealthz)
	r.Get("/readyz", a.handleReadyz)
	r.Get("/v1/info", a.handleInfo)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	admin := func(r chi.Router) {
		r.Use(a.withAuth, a.requireRole(identity.RoleAdmin), a.recordActivity)
	}
	desk := func(r chi.Router) {
		r.Use(a.withAuth, a.requireRole(identity.RoleAdmin, identity.RoleReceptionist), a.recordActivity)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", a.handleLogin)
		r.Post("/signup", a.handleSignup)
		r.Post("/google", a.handleGoogleLogin)
		r.Group(func(r chi.Router) {
			r.Use(a.withAuth, a.requireRole())
			r.Get("/me", a.handleMe)
		})
		r.Group(func(r chi.Router) {
			admin(r)
			r.Patch("/assign-role/{id}", a.handleAssignRole)
		})
	})

	r.Route("/auths", func(r chi.Router) {
		r.Post("/forgot-password", a.handleForgotPassword)
		r.Post("/reset-password", a.handleResetPassword)
	})

	r.Route("/staff", func(r chi.Router) {
		admin(r)
		r.Post("/add", a.handleAddStaff)
		r.Put("/edit/{id}", a.handleEditStaff)
		r.Delete("/delete/{id}", a.handleDeleteStaff)
		r.Patch("/assign-role/{id}", a.handleAssignStaffPosition)
		r.Get("/performance/{id}", a.handleStaffPerformance)
		r.Get("/all", a.handleListStaff)
	})

	r.Route("/rooms", func(r chi.Router) {
		admin(r)
		r.Post("/add", a.handleAddRoom)
		r.Put("/edit/{id}", a.handleEditRoom)
		r.Delete("/delete/{id}", a.handleDeleteRoom)
		r.Get("/all", a.handleListRooms)
		r.Get("/{id}", a.handleGetRoom)
	})

	r.Route("/services", func(r chi.Router) {
		admin(r)
		r.Post("/add", a.handleAddService)
		r.Put("/edit/{id}", a.handleEditService)
		r.Delete("/delete/{id}", a.handleDeleteService)
		r.Get("/all", a.handleListServices)
		r.Get("/{id}", a.handleGetService)
	})

	r.Route("/system-logs", func(r chi.Router) {
		r.Use(a.withAuth, a.requireRole(identity.RoleAdmin))
		r.Get("/all", a.handleListSystemLogs)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Use(a.withAuth, a.requireRole(identity.RoleAdmin))
		r.Get("/", a.handleGetSettings)
		r.Put("/", a.handleUpdateSettings)
		r.Delete("/", a.handleResetSettings)
	})

	r.Route("/notifications", func(r chi.Router) {
		admin(r)
		r.Post("/send", a.handleSendNotification)
	})

	r.Route("/guests", func(r chi.Router) {
		desk(r)
		r.Post("/add", a.handleAddGuest)
		r.Delete("/delete/{id}", a.handleDeleteGuest)
		r.Get("/all", a.handleListGuests)
	})

	r.Route("/bookings", func(r chi.Router) {
		desk(r)
		r.Post("/add", a.handleAddBooking)
		r.Patch("/status/{id}", a.handleUpdateBookingStatus)
		r.Get("/all", a.handleListBookings)
	})

	r.Route("/guest", func(r chi.Router) {
		desk(r)
		r.Post("/{guestID}/notify", a.handleNotifyGuest)
	})

	return r
}

// Handler returns the full middleware-wrapped handler for the server.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "harborview-api",
		"version": a.version,
	})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.ready.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (a *API) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "harborview-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
