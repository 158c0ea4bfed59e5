package main

import (
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/httpx"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/assets"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/config"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/db"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/handlers"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/realtime"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
	"github.com/nethal17/Ramanayake-Travels-sub001/view"
)

const healthTimeout = 2 * time.Second

// Deps are the long-lived services the routes are built from.
type Deps struct {
	Config   *config.Config
	Log      logger.ILogger
	API      *api.Client
	Sessions *session.Manager
	DB       *gorm.DB
	Hub      *realtime.Hub
}

// App is the main application handler that sets up all routes.
type App struct {
	router  *mux.Router
	handler http.Handler
	base    *handlers.Base
	cookies *auth.Cookies
	deps    Deps
}

// NewApp creates a new application with all routes configured.
func NewApp(d Deps) *App {
	ag := policy.NewAuthGate()
	renderer := view.New(
		view.WithDev(d.Config.App.Dev),
		view.WithLangResolver(middleware.LangFrom),
		view.WithAssetResolver(assets.URL),
		view.WithCanResolver(func(r *http.Request, resource, action string) bool {
			return ag.CanProfile(r.Context(), gate.Action(action), resource)
		}),
	)
	cookies := auth.NewCookies(d.Config.Session.Secret, d.Config.Session.TTL, d.Config.Session.SecureCookie)

	app := &App{
		router:  mux.NewRouter(),
		cookies: cookies,
		deps:    d,
		base: &handlers.Base{
			API:      d.API,
			Sessions: d.Sessions,
			Cookies:  cookies,
			View:     renderer,
			Gate:     ag,
			Log:      d.Log,
		},
	}
	app.setupRoutes()
	app.handler = app.middleware(app.router)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// middleware wraps the router so that 404 pages see the session too.
func (a *App) middleware(next http.Handler) http.Handler {
	z := logger.Zap(a.deps.Log)
	h := auth.Middleware(a.cookies, a.deps.Sessions)(next)
	h = middleware.Prefs(a.deps.Config.App.DefaultLang)(h)
	h = ghandlers.ProxyHeaders(h)
	h = ghandlers.CombinedLoggingHandler(zap.NewStdLog(z.Named("access")).Writer(), h)
	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(zap.NewStdLog(z.Named("panic"))),
		ghandlers.PrintRecoveryStack(a.deps.Config.App.Dev),
	)(h)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	r := a.router
	r.NotFoundHandler = http.HandlerFunc(a.base.NotFound)

	// Infrastructure
	r.PathPrefix("/static/").Handler(assets.Handler())
	r.Handle("/healthz", httpx.Health(healthTimeout, httpx.Check{Name: "sessions", Probe: db.Ping(a.deps.DB)})).Methods(http.MethodGet)
	if a.deps.Hub != nil {
		r.Handle("/ws/session", a.deps.Hub).Methods(http.MethodGet)
	}

	// Public
	vh := handlers.NewVehicleHandler(a.base)
	ah := handlers.NewAuthHandler(a.base)
	r.HandleFunc("/", vh.Home).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", vh.List).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", vh.Show).Methods(http.MethodGet)
	r.HandleFunc("/login", ah.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/register", ah.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/forgot-password", ah.Forgot).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/reset-password/{token}", ah.Reset).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", ah.Logout).Methods(http.MethodPost)

	// Customer shell
	rh := handlers.NewReservationHandler(a.base)
	r.Handle("/customer-profile", policy.RequireCustomerShell(http.HandlerFunc(rh.Profile))).Methods(http.MethodGet)
	r.Handle("/reservations/new", policy.RequireCustomerShell(
		a.base.Gate.RequirePermission(policy.ResourceReservation, gate.ActionCreate)(http.HandlerFunc(rh.New)))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/driver-profile", policy.RequireRole(models.RoleDriver)(http.HandlerFunc(rh.DriverProfile))).Methods(http.MethodGet)
	r.Handle("/technician-profile", policy.RequireRole(models.RoleTechnician)(http.HandlerFunc(rh.TechnicianProfile))).Methods(http.MethodGet)
	// Admins act on reservations from their own shell; the gate decides per action.
	r.Handle("/reservations/{id}/action", auth.RequireAuth(http.HandlerFunc(rh.Act))).Methods(http.MethodPost)

	// Admin shell
	adm := handlers.NewAdminHandler(a.base)
	r.Handle("/admin", http.RedirectHandler("/admin/dashboard", http.StatusSeeOther))
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(policy.RequireAdminShell)
	admin.HandleFunc("/dashboard", adm.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles", adm.Vehicles).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/new", adm.NewVehicle).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/vehicles/{id}/edit", adm.EditVehicle).Methods(http.MethodGet, http.MethodPost)
	admin.Handle("/vehicles/{id}/delete",
		a.base.Gate.RequirePermission(policy.ResourceVehicle, gate.ActionDelete)(http.HandlerFunc(adm.DeleteVehicle))).Methods(http.MethodPost)
	admin.HandleFunc("/reservations", adm.Reservations).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}/payment", adm.RecordPayment).Methods(http.MethodPost)
	admin.HandleFunc("/drivers", adm.Drivers).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/inquiries", adm.Inquiries).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/{id}", adm.RespondInquiry).Methods(http.MethodPost)
	admin.HandleFunc("/inquiries/{id}/delete", adm.DeleteInquiry).Methods(http.MethodPost)
	admin.Handle("/users",
		a.base.Gate.RequirePermission(policy.ResourceUser, gate.ActionList)(http.HandlerFunc(adm.Users))).Methods(http.MethodGet)
}
