package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/http/middleware"
	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Minimal in-memory repositories so the handlers run against real
// services without a database.

type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	writes int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.writes++
	for _, u := range r.users {
		if u.Telephone == user.Telephone {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByTelephone(_ context.Context, telephone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Telephone == telephone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (r *memUserRepo) SetResetToken(_ context.Context, telephone, token string, expiry time.Time) error {
	u, err := r.GetByTelephone(context.Background(), telephone)
	if err != nil {
		return err
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (r *memUserRepo) GetByResetToken(_ context.Context, telephone, token string, now time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.Telephone == telephone && u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) UpdatePin(_ context.Context, id uint, hashedPin string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Pin = hashedPin
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (r *memUserRepo) PurgeExpiredResetTokens(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type memTicketRepo struct {
	tickets map[uint]*models.Ticket
	nextID  uint
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[uint]*models.Ticket), nextID: 1}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id uint) (*models.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *memTicketRepo) sorted() []*models.Ticket {
	out := make([]*models.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memTicketRepo) List(_ context.Context) ([]*models.Ticket, error) {
	return r.sorted(), nil
}

func (r *memTicketRepo) ListPage(_ context.Context, offset, limit int) ([]*models.Ticket, int64, error) {
	all := r.sorted()
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *models.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *memTicketRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.tickets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tickets, id)
	return nil
}

type nopSMS struct{}

func (nopSMS) Send(_, _ string) error { return nil }

func newTestApp(t *testing.T) (*fiber.App, *memUserRepo, *memTicketRepo, services.SessionStore) {
	t.Helper()

	userRepo := newMemUserRepo()
	ticketRepo := newMemTicketRepo()
	sessions := services.NewSessionStore()

	userService := services.NewUserService(userRepo, sessions, nopSMS{})
	ticketService := services.NewTicketService(ticketRepo)

	authHandler := NewAuthHandler(userService)
	ticketHandler := NewTicketHandler(ticketService)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})

	api := app.Group("/api")
	api.Post("/signup", authHandler.Signup)
	api.Post("/login", authHandler.Login)
	api.Post("/forgot-password", authHandler.ForgotPassword)
	api.Post("/reset-password", authHandler.ResetPassword)

	tickets := api.Group("/tickets")
	tickets.Get("/page/:page/limit/:limit", ticketHandler.ListPage)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/:id", ticketHandler.Get)

	protected := api.Group("/protected", middleware.UserAuth(sessions))
	protected.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals(middleware.LocalUserID)})
	})

	return app, userRepo, ticketRepo, sessions
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, header map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

var (
	_ repositories.UserRepository   = (*memUserRepo)(nil)
	_ repositories.TicketRepository = (*memTicketRepo)(nil)
)

func TestSignupRejectsBadTelephoneBeforeStore(t *testing.T) {
	app, userRepo, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/signup", map[string]string{
		"amazina":       "Mutesi",
		"ref_telephone": "0788000001",
		"telephone":     "0881234567", // wrong prefix
		"pin":           "1234",
	}, nil)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if userRepo.writes != 0 {
		t.Errorf("store saw %d writes, validation must fire first", userRepo.writes)
	}
}

func TestSignupThenLoginFlow(t *testing.T) {
	app, _, _, sessions := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/signup", map[string]string{
		"amazina":       "Mutesi",
		"ref_telephone": "0788000001",
		"telephone":     "0781234567",
		"pin":           "1234",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201", resp.StatusCode)
	}

	resp, body := doJSON(t, app, "POST", "/api/login", map[string]string{
		"telephone": "0781234567",
		"pin":       "1234",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if _, leaked := user["pin"]; leaked {
		t.Error("login response must not carry the pin")
	}

	sessionID, _ := data["sessionId"].(string)
	if sessionID == "" {
		t.Fatal("login must return a session id")
	}
	if _, ok := sessions.Resolve(sessionID); !ok {
		t.Error("returned session id must resolve in the store")
	}
}

func TestLoginWrongPin(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	doJSON(t, app, "POST", "/api/signup", map[string]string{
		"amazina": "Mutesi", "ref_telephone": "0788000001", "telephone": "0781234567", "pin": "1234",
	}, nil)

	resp, body := doJSON(t, app, "POST", "/api/login", map[string]string{
		"telephone": "0781234567", "pin": "9999",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "PIN siyo!" {
		t.Errorf("error = %v, want PIN siyo!", body["error"])
	}
}

func TestSessionMiddleware(t *testing.T) {
	app, _, _, sessions := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/protected/ping", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no header status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "Access denied. No session ID provided." {
		t.Errorf("error = %v", body["error"])
	}

	resp, body = doJSON(t, app, "GET", "/api/protected/ping", nil, map[string]string{
		"X-Session-ID": "not-a-session",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad header status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "Invalid session. Please login again." {
		t.Errorf("error = %v", body["error"])
	}

	// an admin session must not pass the user gate
	adminID := sessions.Create(services.SessionIdentity{Kind: services.SessionKindAdmin, ID: 1})
	resp, _ = doJSON(t, app, "GET", "/api/protected/ping", nil, map[string]string{
		"X-Session-ID": adminID,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("admin-session status = %d, want 401", resp.StatusCode)
	}

	userID := sessions.Create(services.SessionIdentity{Kind: services.SessionKindUser, ID: 7})
	resp, body = doJSON(t, app, "GET", "/api/protected/ping", nil, map[string]string{
		"X-Session-ID": userID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid session status = %d, want 200", resp.StatusCode)
	}
	if body["userID"] != float64(7) {
		t.Errorf("userID = %v, want 7", body["userID"])
	}
}

func TestTicketPagination(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	for i := 0; i < 12; i++ {
		resp, _ := doJSON(t, app, "POST", "/api/tickets/", map[string]string{
			"amazina":     "Mutesi",
			"telephone":   "0781234567",
			"description": "ikibazo",
		}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status = %d, want 201", resp.StatusCode)
		}
	}

	resp, body := doJSON(t, app, "GET", "/api/tickets/page/2/limit/5", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data := body["data"].(map[string]interface{})
	if got := data["totalTickets"].(float64); got != 12 {
		t.Errorf("totalTickets = %v, want 12", got)
	}
	if got := data["totalPages"].(float64); got != 3 {
		t.Errorf("totalPages = %v, want 3", got)
	}
	if got := data["currentPage"].(float64); got != 2 {
		t.Errorf("currentPage = %v, want 2", got)
	}
	if data["hasNext"] != true || data["hasPrev"] != true {
		t.Errorf("hasNext = %v, hasPrev = %v, both should be true on page 2 of 3", data["hasNext"], data["hasPrev"])
	}
	if tickets := data["tickets"].([]interface{}); len(tickets) != 5 {
		t.Errorf("page size = %d, want 5", len(tickets))
	}
}

func TestTicketNotFound(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/tickets/99", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "Ticket ntibonetse!" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestResetPasswordFlowOverHTTP(t *testing.T) {
	app, userRepo, _, _ := newTestApp(t)

	doJSON(t, app, "POST", "/api/signup", map[string]string{
		"amazina": "Mutesi", "ref_telephone": "0788000001", "telephone": "0781234567", "pin": "1234",
	}, nil)

	resp, body := doJSON(t, app, "POST", "/api/forgot-password", map[string]string{
		"telephone": "0781234567",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot status = %d, want 200", resp.StatusCode)
	}
	if data, ok := body["data"].(map[string]interface{}); ok {
		if _, leaked := data["token"]; leaked {
			t.Error("reset token must never appear in the response")
		}
	}

	user, err := userRepo.GetByTelephone(context.Background(), "0781234567")
	if err != nil || user.ResetToken == nil {
		t.Fatalf("token not stored: %v", err)
	}

	resp, _ = doJSON(t, app, "POST", "/api/reset-password", map[string]string{
		"telephone":   "0781234567",
		"token":       *user.ResetToken,
		"newPassword": "5678",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/login", map[string]string{
		"telephone": "0781234567", "pin": "5678",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login with new PIN status = %d, want 200", resp.StatusCode)
	}
}
