package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
	"github.com/nethal17/Ramanayake-Travels-sub001/view"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeAPI answers backend calls from a route table and records them. List
// endpoints nobody configured answer an empty array.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recorded
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{r.Method, r.URL.Path, string(body)})
	h := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if h != nil {
		h(w, r)
		return
	}
	if r.Method == http.MethodGet {
		reply(http.StatusOK, []any{})(w, r)
		return
	}
	reply(http.StatusNotFound, map[string]string{"message": "no route"})(w, r)
}

func (f *fakeAPI) calls(method string) []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recorded
	for _, r := range f.requests {
		if r.method == method {
			out = append(out, r)
		}
	}
	return out
}

func reply(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func newTestBase(t *testing.T, routes map[string]http.HandlerFunc) (*Base, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{routes: routes}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	b := &Base{
		API:      api.New(srv.URL),
		Sessions: session.NewManager(session.NewMemoryStore(), time.Hour, session.WithClock(func() time.Time { return testNow })),
		Cookies:  auth.NewCookies("test-secret", time.Hour, false),
		View:     view.New(),
		Gate:     policy.NewAuthGate(),
		Log:      logger.Nop(),
		Now:      func() time.Time { return testNow },
	}
	return b, fake
}

func signIn(t *testing.T, b *Base, r *http.Request, user models.User) (*http.Request, *session.Session) {
	t.Helper()
	s, err := b.Sessions.Login(context.Background(), "", "opaque-token", &user)
	if err != nil {
		t.Fatal(err)
	}
	return r.WithContext(auth.WithSession(r.Context(), s)), s
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashOf(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			v, _ := url.QueryUnescape(c.Value)
			return v
		}
	}
	return ""
}

func reservationJSON(id, userID, status, trip string) map[string]any {
	return map[string]any{
		"_id":            id,
		"userId":         userID,
		"vehicleId":      map[string]any{"_id": "v1", "make": "Toyota", "model": "Axio", "year": 2020},
		"pickupDate":     "2024-07-01",
		"returnDate":     "2024-07-03",
		"pickupLocation": "Colombo",
		"returnLocation": "Kandy",
		"status":         status,
		"tripStatus":     trip,
		"paymentStatus":  "unpaid",
		"totalPrice":     20000,
		"createdAt":      "2024-06-01T08:00:00Z",
		"driverId":       nil,
	}
}

var (
	customer  = models.User{ID: "cust-1", Name: "Nimal", Email: "nimal@example.lk", Role: models.RoleCustomer}
	adminUser = models.User{ID: "adm-1", Name: "Admin", Role: models.RoleAdmin}
)

func TestLoginRedirectsToLandingPath(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleDriver, models.RoleTechnician, models.RoleCustomer} {
		t.Run(string(role), func(t *testing.T) {
			b, _ := newTestBase(t, map[string]http.HandlerFunc{
				"POST /auth/login": reply(http.StatusOK, map[string]any{
					"token": "opaque",
					"user":  map[string]any{"_id": "u1", "name": "Kasun", "email": "k@example.lk", "role": role},
				}),
			})
			rec := httptest.NewRecorder()
			NewAuthHandler(b).Login(rec, postForm("/login", url.Values{"email": {"k@example.lk"}, "password": {"secret1"}}))

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("code = %d", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != policy.LandingPath(role) {
				t.Fatalf("location = %q", got)
			}
			var sid string
			for _, c := range rec.Result().Cookies() {
				if c.Name == auth.CookieName {
					sid = c.Value
				}
			}
			if sid == "" {
				t.Fatal("session cookie not set")
			}
		})
	}
}

func TestLoginRejectedShowsBackendMessage(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"POST /auth/login": reply(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"}),
	})
	rec := httptest.NewRecorder()
	NewAuthHandler(b).Login(rec, postForm("/login", url.Values{"email": {"k@example.lk"}, "password": {"nope"}}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatal("backend message not shown")
	}
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	b, fake := newTestBase(t, nil)
	rec := httptest.NewRecorder()
	NewAuthHandler(b).Login(rec, postForm("/login", url.Values{"email": {"not-an-email"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rec.Code)
	}
	if len(fake.calls(http.MethodPost)) != 0 {
		t.Fatal("backend called with an invalid form")
	}
}

func TestRegisterChecksPhone(t *testing.T) {
	b, fake := newTestBase(t, nil)
	rec := httptest.NewRecorder()
	NewAuthHandler(b).Register(rec, postForm("/register", url.Values{
		"name": {"Nimal"}, "email": {"nimal@example.lk"}, "phone": {"12345"},
		"password": {"secret1"}, "confirm": {"secret1"},
	}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sri Lankan") {
		t.Fatal("phone error not rendered")
	}
	if len(fake.calls(http.MethodPost)) != 0 {
		t.Fatal("backend called")
	}
}

func TestBackend401EndsSession(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations": reply(http.StatusUnauthorized, map[string]string{"message": "jwt expired"}),
	})
	req, s := signIn(t, b, httptest.NewRequest(http.MethodGet, "/customer-profile", nil), customer)
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Profile(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := b.Sessions.Current(context.Background(), s.ID); err == nil {
		t.Fatal("session still present after 401")
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
	if !strings.Contains(flashOf(rec), "expired") {
		t.Fatalf("flash = %q", flashOf(rec))
	}
}

func TestBookingForm401EndsSession(t *testing.T) {
	expired := reply(http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"get", httptest.NewRequest(http.MethodGet, "/reservations/new?vehicle=v1", nil)},
		{"invalid post", postForm("/reservations/new", url.Values{
			"vehicleId": {"v1"}, "pickupDate": {"2024-07-05"}, "returnDate": {"2024-07-01"},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fake := newTestBase(t, map[string]http.HandlerFunc{
				"GET /vehicles":             expired,
				"GET /reservations/drivers": expired,
			})
			req, s := signIn(t, b, tt.req, customer)
			rec := httptest.NewRecorder()
			NewReservationHandler(b).New(rec, req)

			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
				t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
			}
			if _, err := b.Sessions.Current(context.Background(), s.ID); err == nil {
				t.Fatal("session still present after 401")
			}
			if n := len(fake.calls(http.MethodPost)); n != 0 {
				t.Fatalf("%d POST calls", n)
			}
		})
	}
}

func TestBookingFormSurvivesDriverListFailure(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations/drivers": reply(http.StatusInternalServerError, map[string]string{"message": "boom"}),
	})
	req, _ := signIn(t, b, httptest.NewRequest(http.MethodGet, "/reservations/new", nil), customer)
	rec := httptest.NewRecorder()
	NewReservationHandler(b).New(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}

func actRequest(t *testing.T, b *Base, user models.User, id, action string) *http.Request {
	req := postForm("/reservations/"+id+"/action", url.Values{"action": {action}, "next": {"/customer-profile"}})
	req = mux.SetURLVars(req, map[string]string{"id": id})
	req, _ = signIn(t, b, req, user)
	return req
}

func TestCancelIssuesSingleRequest(t *testing.T) {
	b, fake := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations":           reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "pending", "pending")}),
		"PUT /reservations/r1/status": reply(http.StatusOK, map[string]string{"message": "ok"}),
	})
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Act(rec, actRequest(t, b, customer, "r1", "cancel"))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/customer-profile" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	puts := fake.calls(http.MethodPut)
	if len(puts) != 1 {
		t.Fatalf("PUT calls = %+v", puts)
	}
	if puts[0].path != "/reservations/r1/status" || !strings.Contains(puts[0].body, `"cancelled"`) {
		t.Fatalf("unexpected call %+v", puts[0])
	}
	if !strings.HasPrefix(flashOf(rec), "success:") {
		t.Fatalf("flash = %q", flashOf(rec))
	}
}

func TestActionDeniedSendsNothing(t *testing.T) {
	tests := []struct {
		name   string
		user   models.User
		owner  string
		action string
	}{
		{"other customer", models.User{ID: "cust-2", Role: models.RoleCustomer}, "cust-1", "cancel"},
		{"driver cancels", models.User{ID: "drv-1", Role: models.RoleDriver}, "cust-1", "cancel"},
		{"customer confirms", customer, "cust-1", "confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fake := newTestBase(t, map[string]http.HandlerFunc{
				"GET /reservations": reply(http.StatusOK, []any{reservationJSON("r1", tt.owner, "pending", "pending")}),
			})
			rec := httptest.NewRecorder()
			NewReservationHandler(b).Act(rec, actRequest(t, b, tt.user, "r1", tt.action))
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("code = %d", rec.Code)
			}
			if n := len(fake.calls(http.MethodPut)); n != 0 {
				t.Fatalf("%d PUT calls", n)
			}
			if !strings.HasPrefix(flashOf(rec), "error:") {
				t.Fatalf("flash = %q", flashOf(rec))
			}
		})
	}
}

func TestValidationErrorFlashesBackendMessage(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations":           reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "pending", "pending")}),
		"PUT /reservations/r1/status": reply(http.StatusBadRequest, map[string]string{"message": "Reservation is locked"}),
	})
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Act(rec, actRequest(t, b, customer, "r1", "cancel"))
	if got := flashOf(rec); got != "error:Reservation is locked" {
		t.Fatalf("flash = %q", got)
	}
}

func TestUnexpectedErrorFlashesGenericMessage(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations":           reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "pending", "pending")}),
		"PUT /reservations/r1/status": reply(http.StatusInternalServerError, map[string]string{"message": "stack trace"}),
	})
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Act(rec, actRequest(t, b, customer, "r1", "cancel"))
	if got := flashOf(rec); got != "error:Something went wrong. Please try again" {
		t.Fatalf("flash = %q", got)
	}
}

func TestDriverStartsTrip(t *testing.T) {
	res := reservationJSON("r1", "cust-1", "confirmed", "pending")
	res["driverId"] = map[string]any{"_id": "d1", "userId": "drv-1"}
	b, fake := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations":                reply(http.StatusOK, []any{res}),
		"PUT /reservations/r1/trip-status": reply(http.StatusOK, map[string]string{}),
	})
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Act(rec, actRequest(t, b, models.User{ID: "drv-1", Role: models.RoleDriver}, "r1", "start_trip"))
	puts := fake.calls(http.MethodPut)
	if len(puts) != 1 || !strings.Contains(puts[0].body, `"started"`) {
		t.Fatalf("PUT calls = %+v", puts)
	}
}

func TestRecordPaymentValidatesLocally(t *testing.T) {
	b, fake := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations": reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "confirmed", "pending")}),
	})
	form := url.Values{
		"paymentStatus": {"paid"}, "receiptNumber": {"RC-1"},
		"amountPaid": {"23000"}, "paymentDate": {"2024-06-09"},
	}
	req := mux.SetURLVars(postForm("/admin/reservations/r1/payment", form), map[string]string{"id": "r1"})
	req, _ = signIn(t, b, req, models.User{ID: "adm-1", Role: models.RoleAdmin})
	rec := httptest.NewRecorder()
	NewAdminHandler(b).RecordPayment(rec, req)

	if n := len(fake.calls(http.MethodPut)); n != 0 {
		t.Fatalf("%d PUT calls", n)
	}
	if got := flashOf(rec); !strings.Contains(got, "110%") {
		t.Fatalf("flash = %q", got)
	}
}

func TestRecordPaymentSends(t *testing.T) {
	b, fake := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations":                   reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "confirmed", "pending")}),
		"PUT /reservations/r1/payment-status": reply(http.StatusOK, map[string]string{}),
	})
	form := url.Values{
		"paymentStatus": {"partially_paid"}, "receiptNumber": {"RC-2"},
		"amountPaid": {"5000"}, "paymentDate": {"2024-06-10"}, "paymentMethod": {"cash"},
	}
	req := mux.SetURLVars(postForm("/admin/reservations/r1/payment", form), map[string]string{"id": "r1"})
	req, _ = signIn(t, b, req, models.User{ID: "adm-1", Role: models.RoleAdmin})
	rec := httptest.NewRecorder()
	NewAdminHandler(b).RecordPayment(rec, req)

	puts := fake.calls(http.MethodPut)
	if len(puts) != 1 || !strings.Contains(puts[0].body, `"partially_paid"`) || !strings.Contains(puts[0].body, `"RC-2"`) {
		t.Fatalf("PUT calls = %+v", puts)
	}
}

func TestNewReservationRejectsReversedDates(t *testing.T) {
	b, fake := newTestBase(t, nil)
	req, _ := signIn(t, b, postForm("/reservations/new", url.Values{
		"vehicleId": {"v1"}, "pickupDate": {"2024-07-05"}, "returnDate": {"2024-07-01"},
		"pickupLocation": {"Colombo"}, "returnLocation": {"Kandy"},
	}), customer)
	rec := httptest.NewRecorder()
	NewReservationHandler(b).New(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rec.Code)
	}
	if len(fake.calls(http.MethodPost)) != 0 {
		t.Fatal("reservation created despite reversed dates")
	}
}

func TestNewReservationCreates(t *testing.T) {
	b, fake := newTestBase(t, map[string]http.HandlerFunc{
		"POST /reservations": reply(http.StatusCreated, map[string]any{"reservation": reservationJSON("r9", "cust-1", "pending", "pending")}),
	})
	req, _ := signIn(t, b, postForm("/reservations/new", url.Values{
		"vehicleId": {"v1"}, "pickupDate": {"2024-07-01"}, "returnDate": {"2024-07-03"},
		"pickupLocation": {"Colombo"}, "returnLocation": {"Kandy"},
	}), customer)
	rec := httptest.NewRecorder()
	NewReservationHandler(b).New(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/customer-profile" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	posts := fake.calls(http.MethodPost)
	if len(posts) != 1 || !strings.Contains(posts[0].body, `"vehicleId":"v1"`) {
		t.Fatalf("POST calls = %+v", posts)
	}
}

func TestCustomerProfileShowsCancelOnlyForPending(t *testing.T) {
	b, _ := newTestBase(t, map[string]http.HandlerFunc{
		"GET /reservations": reply(http.StatusOK, []any{
			reservationJSON("r1", "cust-1", "pending", "pending"),
			reservationJSON("r2", "cust-1", "completed", "completed"),
			reservationJSON("r3", "cust-2", "pending", "pending"),
		}),
	})
	req, _ := signIn(t, b, httptest.NewRequest(http.MethodGet, "/customer-profile", nil), customer)
	rec := httptest.NewRecorder()
	NewReservationHandler(b).Profile(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if strings.Count(body, `value="cancel"`) != 1 {
		t.Fatal("expected exactly one cancel button")
	}
	if strings.Contains(body, "/reservations/r3/") {
		t.Fatal("another customer's reservation rendered")
	}
}

func TestPagesRender(t *testing.T) {
	admin := models.User{ID: "adm-1", Name: "Admin", Role: models.RoleAdmin}
	tests := []struct {
		name string
		user *models.User
		path string
		h    func(*Base) http.HandlerFunc
	}{
		{"home", nil, "/", func(b *Base) http.HandlerFunc { return NewVehicleHandler(b).Home }},
		{"vehicles", nil, "/vehicles?make=Toyota&seats=4", func(b *Base) http.HandlerFunc { return NewVehicleHandler(b).List }},
		{"login", nil, "/login", func(b *Base) http.HandlerFunc { return NewAuthHandler(b).Login }},
		{"register", nil, "/register", func(b *Base) http.HandlerFunc { return NewAuthHandler(b).Register }},
		{"forgot", nil, "/forgot-password", func(b *Base) http.HandlerFunc { return NewAuthHandler(b).Forgot }},
		{"reset", nil, "/reset-password/tok", func(b *Base) http.HandlerFunc { return NewAuthHandler(b).Reset }},
		{"booking form", &customer, "/reservations/new", func(b *Base) http.HandlerFunc { return NewReservationHandler(b).New }},
		{"driver", &models.User{ID: "drv-1", Role: models.RoleDriver}, "/driver-profile", func(b *Base) http.HandlerFunc { return NewReservationHandler(b).DriverProfile }},
		{"technician", &models.User{ID: "t-1", Role: models.RoleTechnician}, "/technician-profile", func(b *Base) http.HandlerFunc { return NewReservationHandler(b).TechnicianProfile }},
		{"dashboard", &admin, "/admin/dashboard", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Dashboard }},
		{"admin vehicles", &admin, "/admin/vehicles?tab=customer", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Vehicles }},
		{"vehicle form", &admin, "/admin/vehicles/new", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).NewVehicle }},
		{"admin reservations", &admin, "/admin/reservations", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Reservations }},
		{"drivers", &admin, "/admin/drivers", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Drivers }},
		{"inquiries", &admin, "/admin/inquiries", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Inquiries }},
		{"users", &admin, "/admin/users", func(b *Base) http.HandlerFunc { return NewAdminHandler(b).Users }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBase(t, map[string]http.HandlerFunc{
				"GET /reservations": reply(http.StatusOK, []any{reservationJSON("r1", "cust-1", "confirmed", "pending")}),
			})
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != nil {
				req, _ = signIn(t, b, req, *tt.user)
			}
			rec := httptest.NewRecorder()
			tt.h(b)(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "</html>") {
				t.Fatal("page not wrapped in its layout")
			}
		})
	}
}

func TestVehicleFormRejectsUnknownStatus(t *testing.T) {
	b, fake := newTestBase(t, nil)
	req, _ := signIn(t, b, postForm("/admin/vehicles/new", url.Values{
		"make": {"Toyota"}, "model": {"Axio"}, "year": {"2020"}, "price": {"9000"},
		"seats": {"5"}, "status": {"scrapped"},
	}), adminUser)
	rec := httptest.NewRecorder()
	NewAdminHandler(b).NewVehicle(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown status") {
		t.Fatal("status error not rendered")
	}
	if n := len(fake.calls(http.MethodPost)); n != 0 {
		t.Fatalf("%d POST calls", n)
	}
}

func TestRespondInquiryStatus(t *testing.T) {
	tests := []struct {
		status string
		puts   int
		flash  string
	}{
		{"archived", 0, "error:"},
		{"resolved", 1, "success:"},
		{"", 1, "success:"},
	}
	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			b, fake := newTestBase(t, map[string]http.HandlerFunc{
				"PUT /inquiries/q1": reply(http.StatusOK, map[string]string{"message": "ok"}),
			})
			req := postForm("/admin/inquiries/q1", url.Values{"status": {tt.status}, "adminResponse": {"On it"}})
			req = mux.SetURLVars(req, map[string]string{"id": "q1"})
			req, _ = signIn(t, b, req, adminUser)
			rec := httptest.NewRecorder()
			NewAdminHandler(b).RespondInquiry(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("code = %d", rec.Code)
			}
			if n := len(fake.calls(http.MethodPut)); n != tt.puts {
				t.Fatalf("PUT calls = %d, want %d", n, tt.puts)
			}
			if !strings.HasPrefix(flashOf(rec), tt.flash) {
				t.Fatalf("flash = %q", flashOf(rec))
			}
		})
	}
}
