package handler

// Test harness: an Echo app wired exactly like the server entry point
// but over in-memory stores, so requests exercise the full
// middleware -> handler -> service path without MySQL.

import (
	"context"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/cache"
	"github.com/rdrx/rdrx/internal/middleware"
	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
	"github.com/rdrx/rdrx/internal/service"
)

const testSecret = "handler-test-secret"

type memStore struct {
	nextID   uint64
	users    map[uint64]model.User
	links    map[string]model.ShortLink
	profiles map[uint64]model.BioProfile
	files    map[string]model.FileUpload
	clicks   []model.ClickEvent
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint64]model.User{},
		links:    map[string]model.ShortLink{},
		profiles: map[uint64]model.BioProfile{},
		files:    map[string]model.FileUpload{},
	}
}

func (m *memStore) Create(_ context.Context, email, username, passwordHash, verificationToken string) (uint64, error) {
	for _, u := range m.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	m.nextID++
	tok := verificationToken
	m.users[m.nextID] = model.User{ID: m.nextID, Email: email, Username: username, PasswordHash: passwordHash, VerificationToken: &tok}
	return m.nextID, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) VerifyByToken(_ context.Context, token string) error {
	for id, u := range m.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.EmailVerified = true
			u.VerificationToken = nil
			m.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) SetResetToken(_ context.Context, email, token string, expires time.Time) error {
	for id, u := range m.users {
		if u.Email == email {
			u.ResetToken = &token
			u.ResetTokenExpires = &expires
			m.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) ResetPassword(_ context.Context, token, newHash string) error {
	for id, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.PasswordHash = newHash
			u.ResetToken = nil
			m.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) UpdatePasswordHash(_ context.Context, id uint64, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetByShortcode(_ context.Context, code string) (model.ShortLink, error) {
	l, ok := m.links[code]
	if !ok {
		return model.ShortLink{}, repository.ErrNotFound
	}
	return l, nil
}

func (m *memStore) Upsert(_ context.Context, l model.ShortLink) error {
	m.links[l.Shortcode] = l
	return nil
}

func (m *memStore) DeleteByShortcode(_ context.Context, code string) error {
	if _, ok := m.links[code]; !ok {
		return repository.ErrNotFound
	}
	delete(m.links, code)
	return nil
}

func (m *memStore) FindBioByCreator(_ context.Context, userID uint64) (model.ShortLink, error) {
	for _, l := range m.links {
		if l.Kind == model.KindBio && l.CreatorID != nil && *l.CreatorID == userID {
			return l, nil
		}
	}
	return model.ShortLink{}, repository.ErrNotFound
}

func (m *memStore) ListByCreator(_ context.Context, userID uint64) ([]model.ShortLink, error) {
	var out []model.ShortLink
	for _, l := range m.links {
		if l.CreatorID != nil && *l.CreatorID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) CountByKind(_ context.Context) (map[model.LinkKind]int64, error) {
	out := map[model.LinkKind]int64{}
	for _, l := range m.links {
		out[l.Kind]++
	}
	return out, nil
}

func (m *memStore) GetByUserID(_ context.Context, userID uint64) (model.BioProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return model.BioProfile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *memStore) GetByPublicID(_ context.Context, publicID string) (model.BioProfile, error) {
	for _, p := range m.profiles {
		if p.PublicID == publicID {
			return p, nil
		}
	}
	return model.BioProfile{}, repository.ErrNotFound
}

func (m *memStore) UpsertProfile(_ context.Context, p model.BioProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memStore) Insert(_ context.Context, e model.ClickEvent) error {
	m.clicks = append(m.clicks, e)
	return nil
}

func (m *memStore) CountByShortcode(_ context.Context, code string) (int64, error) {
	var n int64
	for _, e := range m.clicks {
		if e.Shortcode == code {
			n++
		}
	}
	return n, nil
}

func (m *memStore) RecentByShortcode(_ context.Context, code string, limit int) ([]model.ClickEvent, error) {
	var out []model.ClickEvent
	for i := len(m.clicks) - 1; i >= 0 && len(out) < limit; i-- {
		if m.clicks[i].Shortcode == code {
			out = append(out, m.clicks[i])
		}
	}
	return out, nil
}

func (m *memStore) TopCountries(_ context.Context, limit int) ([]repository.CountryCount, error) {
	counts := map[string]int64{}
	for _, e := range m.clicks {
		if e.Country != nil {
			counts[*e.Country]++
		}
	}
	out := make([]repository.CountryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, repository.CountryCount{Country: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.clicks)), nil
}

func (m *memStore) Put(_ context.Context, f model.FileUpload) error {
	m.files[f.Shortcode] = f
	return nil
}

func (m *memStore) Get(_ context.Context, code string) (model.FileUpload, error) {
	f, ok := m.files[code]
	if !ok {
		return model.FileUpload{}, repository.ErrNotFound
	}
	return f, nil
}

// bioStoreAdapter maps the BioStore interface onto memStore, whose
// Upsert name is taken by the link store.
type bioStoreAdapter struct{ *memStore }

func (a bioStoreAdapter) Upsert(ctx context.Context, p model.BioProfile) error {
	return a.UpsertProfile(ctx, p)
}

type testApp struct {
	e     *echo.Echo
	store *memStore
	auth  *service.AuthService
	short *service.ShortenerService
}

func newTestApp() *testApp {
	store := newMemStore()
	log := zap.NewNop()
	linkCache := cache.NewLinkCache(nil, 0)

	authSvc := service.NewAuthService(store, testSecret, 4, log)
	shortSvc := service.NewShortenerService(store, store, store, linkCache, 4, log)
	bioSvc := service.NewBioService(bioStoreAdapter{store}, store, linkCache, log)
	clickSvc := service.NewClickService(nil, store, log)

	e := echo.New()
	e.Use(middleware.Authenticate(testSecret))

	authH := NewAuthHandler(authSvc, log)
	linkH := NewLinkHandler(shortSvc, "http://rdrx.test", log)
	bioH := NewBioHandler(bioSvc, log)
	redirectH := NewRedirectHandler(shortSvc, clickSvc, log)
	adminH := NewAdminHandler(store, store, store, log)

	e.POST("/api/auth/signup", authH.Signup)
	e.POST("/api/auth/login", authH.Login)
	e.POST("/api/auth/logout", authH.Logout)
	e.GET("/api/auth/me", authH.Me, middleware.RequireAuth)
	e.POST("/api/shorten", linkH.Shorten, middleware.RequireAuth)
	e.GET("/api/links", linkH.List, middleware.RequireAuth)
	e.DELETE("/api/links/:code", linkH.Delete, middleware.RequireAuth)
	e.POST("/api/links/:code/unlock", linkH.Unlock)
	e.POST("/api/bio", bioH.Save, middleware.RequireAuth)
	e.GET("/bio/:id", bioH.Get)
	e.GET("/api/admin/stats", adminH.Stats, middleware.RequireAdmin)
	e.GET("/api/admin/users", adminH.ListUsers, middleware.RequireAdmin)
	e.GET("/:code", redirectH.Resolve)

	return &testApp{e: e, store: store, auth: authSvc, short: shortSvc}
}

// seedUser registers a verified account and returns its session token.
func (a *testApp) seedUser(email, username, password string, admin bool) (model.User, string, error) {
	ctx := context.Background()
	u, verify, err := a.auth.Signup(ctx, email, username, password)
	if err != nil {
		return model.User{}, "", err
	}
	if err := a.auth.VerifyEmail(ctx, verify); err != nil {
		return model.User{}, "", err
	}
	if admin {
		stored := a.store.users[u.ID]
		stored.IsAdmin = true
		a.store.users[u.ID] = stored
	}
	_, token, err := a.auth.Login(ctx, email, password)
	return u, token, err
}
