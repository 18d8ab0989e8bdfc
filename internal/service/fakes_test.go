package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"feedback_system/internal/domain"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// ---- users ----

type fakeUsers struct {
	mu        sync.Mutex
	byEmail   map[string]*domain.User
	seq       int
	createErr error
	findErr   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	key := strings.ToLower(u.Email)
	if _, ok := f.byEmail[key]; ok {
		return domain.NewError(domain.ErrConflict, "Email already registered")
	}
	f.seq++
	u.ID = "user-" + strconv.Itoa(f.seq)
	cp := *u
	f.byEmail[key] = &cp
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}

// ---- feedback ----

type fakeFeedback struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	records   []domain.Feedback
	seq       int
	createErr error
	findErr   error
}

func newFakeFeedback(users ...*domain.User) *fakeFeedback {
	f := &fakeFeedback{users: map[string]*domain.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeFeedback) Create(_ context.Context, fb *domain.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	if fb.ID == "" {
		fb.ID = "fb-" + strconv.Itoa(f.seq)
	}
	f.records = append(f.records, *fb)
	return nil
}

func (f *fakeFeedback) resolve(fb domain.Feedback) domain.Feedback {
	if u, ok := f.users[fb.CreatedByID]; ok {
		fb.Creator = &domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return fb
}

func (f *fakeFeedback) ByID(_ context.Context, id string) (*domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fb := range f.records {
		if fb.ID == id {
			out := f.resolve(fb)
			return &out, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "feedback not found")
}

func matches(fb domain.Feedback, flt domain.FeedbackFilter) bool {
	switch {
	case flt.CreatedByID != "" && fb.CreatedByID != flt.CreatedByID:
		return false
	case flt.Rating != 0 && fb.Rating != flt.Rating:
		return false
	case flt.Source != "" && fb.Source != flt.Source:
		return false
	case flt.From != nil && fb.CreatedAt.Before(*flt.From):
		return false
	case flt.To != nil && fb.CreatedAt.After(*flt.To):
		return false
	}
	return true
}

func (f *fakeFeedback) filtered(flt domain.FeedbackFilter) []domain.Feedback {
	var out []domain.Feedback
	for _, fb := range f.records {
		if matches(fb, flt) {
			out = append(out, fb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeFeedback) Find(_ context.Context, flt domain.FeedbackFilter, offset, limit int) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	all := f.filtered(flt)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]domain.Feedback, 0, end-offset)
	for _, fb := range all[offset:end] {
		out = append(out, f.resolve(fb))
	}
	return out, nil
}

func (f *fakeFeedback) Count(_ context.Context, flt domain.FeedbackFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return 0, f.findErr
	}
	return int64(len(f.filtered(flt))), nil
}

func (f *fakeFeedback) RatingSummary(_ context.Context) (*domain.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	s := &domain.RatingSummary{TotalFeedback: int64(len(f.records))}
	if len(f.records) == 0 {
		return s, nil
	}
	lo, hi, sum := f.records[0].Rating, f.records[0].Rating, 0
	for _, fb := range f.records {
		sum += fb.Rating
		lo = min(lo, fb.Rating)
		hi = max(hi, fb.Rating)
	}
	s.AverageRating = float64(sum) / float64(len(f.records))
	s.MinRating, s.MaxRating = &lo, &hi
	return s, nil
}

func (f *fakeFeedback) DailyStats(_ context.Context, from, to *time.Time) ([]domain.DailyStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	sums := map[string]int{}
	counts := map[string]int64{}
	for _, fb := range f.filtered(domain.FeedbackFilter{From: from, To: to}) {
		day := fb.CreatedAt.UTC().Format("2006-01-02")
		sums[day] += fb.Rating
		counts[day]++
	}
	out := make([]domain.DailyStat, 0, len(counts))
	for day, n := range counts {
		out = append(out, domain.DailyStat{Date: day, Count: n, AverageRating: float64(sums[day]) / float64(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ---- tokens, cache, events ----

type fakeTokens struct{ err error }

func (f fakeTokens) GenerateToken(userID string, role domain.Role) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID + "-" + string(role), nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]any
	deleted []string
	err     error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]any{}} }

func (c *fakeCache) Get(context.Context, string, any) (bool, error) { return false, c.err }

func (c *fakeCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return c.err
}

func (c *fakeCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, prefix)
	return c.err
}

type published struct {
	key string
	v   any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, v: v})
	return nil
}

func (p *fakePublisher) Close() error { return nil }
