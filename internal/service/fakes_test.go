package service

// In-memory store fakes backing the service tests. They honor the
// repository sentinel errors so the services see the same contract
// the MySQL gateway provides.

import (
	"context"
	"sort"
	"time"

	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
)

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, email, username, passwordHash, verificationToken string) (uint64, error) {
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	f.nextID++
	tok := verificationToken
	f.users[f.nextID] = model.User{
		ID:                f.nextID,
		Email:             email,
		Username:          username,
		PasswordHash:      passwordHash,
		VerificationToken: &tok,
		CreatedAt:         time.Now().UTC(),
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) VerifyByToken(_ context.Context, token string) error {
	for id, u := range f.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.EmailVerified = true
			u.VerificationToken = nil
			f.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserStore) SetResetToken(_ context.Context, email, token string, expires time.Time) error {
	for id, u := range f.users {
		if u.Email == email {
			u.ResetToken = &token
			u.ResetTokenExpires = &expires
			f.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserStore) ResetPassword(_ context.Context, token, newHash string) error {
	for id, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(time.Now()) {
			u.PasswordHash = newHash
			u.ResetToken = nil
			u.ResetTokenExpires = nil
			f.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserStore) UpdatePasswordHash(_ context.Context, id uint64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeLinkStore struct {
	links map[string]model.ShortLink
}

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{links: map[string]model.ShortLink{}}
}

func (f *fakeLinkStore) GetByShortcode(_ context.Context, code string) (model.ShortLink, error) {
	l, ok := f.links[code]
	if !ok {
		return model.ShortLink{}, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeLinkStore) Upsert(_ context.Context, l model.ShortLink) error {
	if existing, ok := f.links[l.Shortcode]; ok {
		l.CreatedAt = existing.CreatedAt
	} else if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	f.links[l.Shortcode] = l
	return nil
}

func (f *fakeLinkStore) DeleteByShortcode(_ context.Context, code string) error {
	if _, ok := f.links[code]; !ok {
		return repository.ErrNotFound
	}
	delete(f.links, code)
	return nil
}

func (f *fakeLinkStore) FindBioByCreator(_ context.Context, userID uint64) (model.ShortLink, error) {
	for _, l := range f.links {
		if l.Kind == model.KindBio && l.CreatorID != nil && *l.CreatorID == userID {
			return l, nil
		}
	}
	return model.ShortLink{}, repository.ErrNotFound
}

func (f *fakeLinkStore) ListByCreator(_ context.Context, userID uint64) ([]model.ShortLink, error) {
	var out []model.ShortLink
	for _, l := range f.links {
		if l.CreatorID != nil && *l.CreatorID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shortcode < out[j].Shortcode })
	return out, nil
}

func (f *fakeLinkStore) CountByKind(_ context.Context) (map[model.LinkKind]int64, error) {
	out := map[model.LinkKind]int64{}
	for _, l := range f.links {
		out[l.Kind]++
	}
	return out, nil
}

type fakeBioStore struct {
	profiles map[uint64]model.BioProfile
}

func newFakeBioStore() *fakeBioStore {
	return &fakeBioStore{profiles: map[uint64]model.BioProfile{}}
}

func (f *fakeBioStore) GetByUserID(_ context.Context, userID uint64) (model.BioProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return model.BioProfile{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeBioStore) GetByPublicID(_ context.Context, publicID string) (model.BioProfile, error) {
	for _, p := range f.profiles {
		if p.PublicID == publicID {
			return p, nil
		}
	}
	return model.BioProfile{}, repository.ErrNotFound
}

func (f *fakeBioStore) Upsert(_ context.Context, p model.BioProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

type fakeClickStore struct {
	events []model.ClickEvent
}

func (f *fakeClickStore) Insert(_ context.Context, e model.ClickEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeClickStore) CountByShortcode(_ context.Context, code string) (int64, error) {
	var n int64
	for _, e := range f.events {
		if e.Shortcode == code {
			n++
		}
	}
	return n, nil
}

func (f *fakeClickStore) RecentByShortcode(_ context.Context, code string, limit int) ([]model.ClickEvent, error) {
	var out []model.ClickEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].Shortcode == code {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeClickStore) TopCountries(_ context.Context, limit int) ([]repository.CountryCount, error) {
	counts := map[string]int64{}
	for _, e := range f.events {
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

func (f *fakeClickStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

type fakeFileStore struct {
	files map[string]model.FileUpload
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string]model.FileUpload{}}
}

func (f *fakeFileStore) Put(_ context.Context, u model.FileUpload) error {
	f.files[u.Shortcode] = u
	return nil
}

func (f *fakeFileStore) Get(_ context.Context, code string) (model.FileUpload, error) {
	u, ok := f.files[code]
	if !ok {
		return model.FileUpload{}, repository.ErrNotFound
	}
	return u, nil
}
