// Package testutil provides in-memory stand-ins for the PostgreSQL and Redis
// repositories so services and handlers can be exercised without either.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
)

// ErrInjected is returned by stores whose Fail field is set.
var ErrInjected = errors.New("injected store failure")

// Accounts is an in-memory account store.
type Accounts struct {
	mu     sync.Mutex
	rows   []model.Account
	nextID int

	// Fail makes every call return ErrInjected.
	Fail bool

	// SetCalls counts SetAdmin writes.
	SetCalls int
}

// NewAccounts creates an empty store whose IDs start at 1.
func NewAccounts() *Accounts {
	return &Accounts{nextID: 1}
}

// GetByID returns a copy of the account or repository.ErrNotFound.
func (s *Accounts) GetByID(_ context.Context, id int) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	for _, a := range s.rows {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByUsername matches usernames case-sensitively.
func (s *Accounts) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	for _, a := range s.rows {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Count returns the number of stored accounts.
func (s *Accounts) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return 0, ErrInjected
	}
	return len(s.rows), nil
}

// Create assigns ID and CreatedAt, or returns repository.ErrDuplicate.
func (s *Accounts) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	for _, existing := range s.rows {
		if existing.Username == a.Username {
			return repository.ErrDuplicate
		}
	}
	a.ID = s.nextID
	a.CreatedAt = time.Now().UTC()
	s.nextID++
	s.rows = append(s.rows, *a)
	return nil
}

// List returns accounts in insertion order.
func (s *Accounts) List(_ context.Context) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return nil, ErrInjected
	}
	out := make([]model.Account, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// SetAdmin updates the admin flag and counts the call.
func (s *Accounts) SetAdmin(_ context.Context, id int, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	s.SetCalls++
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].IsAdmin = isAdmin
			return nil
		}
	}
	return repository.ErrNotFound
}

// Put inserts an account as-is, assigning an ID when it has none.
func (s *Accounts) Put(a model.Account) model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID
	}
	if a.ID >= s.nextID {
		s.nextID = a.ID + 1
	}
	s.rows = append(s.rows, a)
	return a
}

// Results is an in-memory result ledger.
type Results struct {
	mu       sync.Mutex
	rows     []model.Result
	nextID   int
	accounts *Accounts
	clock    func() time.Time

	// Fail makes every call return ErrInjected.
	Fail bool
}

// NewResults creates a ledger. accounts, when given, fills in usernames.
func NewResults(accounts *Accounts) *Results {
	return &Results{nextID: 1, accounts: accounts, clock: time.Now}
}

// WithClock overrides the timestamp source for DateTaken.
func (s *Results) WithClock(clock func() time.Time) *Results {
	s.clock = clock
	return s
}

// Create stamps ID and DateTaken from the clock.
func (s *Results) Create(_ context.Context, res *model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrInjected
	}
	res.ID = s.nextID
	res.DateTaken = s.clock().UTC()
	s.nextID++
	s.rows = append(s.rows, *res)
	return nil
}

// ListByAccount returns one account's results, newest first.
func (s *Results) ListByAccount(ctx context.Context, accountID int) ([]model.Result, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Result{}
	for _, r := range all {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListAll returns every result with its username, newest first.
func (s *Results) ListAll(ctx context.Context) ([]model.Result, error) {
	s.mu.Lock()
	if s.Fail {
		s.mu.Unlock()
		return nil, ErrInjected
	}
	out := make([]model.Result, len(s.rows))
	copy(out, s.rows)
	s.mu.Unlock()

	for i := range out {
		if s.accounts != nil {
			if a, err := s.accounts.GetByID(ctx, out[i].AccountID); err == nil {
				out[i].Username = a.Username
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DateTaken.Equal(out[j].DateTaken) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateTaken.After(out[j].DateTaken)
	})
	return out, nil
}

// Len returns the number of persisted results.
func (s *Results) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Sessions is an in-memory session store. TTLs are recorded but not enforced.
type Sessions struct {
	mu   sync.Mutex
	rows map[string]int
	TTLs map[string]time.Duration
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{rows: map[string]int{}, TTLs: map[string]time.Duration{}}
}

// Create maps a session ID to its account.
func (s *Sessions) Create(_ context.Context, sessionID string, accountID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[sessionID] = accountID
	s.TTLs[sessionID] = ttl
	return nil
}

// AccountID returns the owner of a session or repository.ErrNotFound.
func (s *Sessions) AccountID(_ context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.rows[sessionID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

// Delete ends a session. Unknown IDs are ignored.
func (s *Sessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, sessionID)
	return nil
}

// Progress is an in-memory progress store. Values round-trip through JSON
// like the Redis repository does.
type Progress struct {
	mu   sync.Mutex
	rows map[string][]byte
}

// NewProgress creates an empty progress store.
func NewProgress() *Progress {
	return &Progress{rows: map[string][]byte{}}
}

// Get returns the session's progress or repository.ErrNotFound.
func (s *Progress) Get(_ context.Context, sessionID string) (*model.SurveyProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.rows[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var p model.SurveyProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save replaces the session's progress.
func (s *Progress) Save(_ context.Context, sessionID string, p *model.SurveyProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[sessionID] = raw
	return nil
}

// Delete drops the session's progress.
func (s *Progress) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, sessionID)
	return nil
}

// Feed records published results and fans them out to listeners.
type Feed struct {
	mu        sync.Mutex
	Published []model.Result
	listeners []chan model.Result
}

// Publish records res and offers it to every listener without blocking.
func (f *Feed) Publish(_ context.Context, res *model.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, *res)
	for _, l := range f.listeners {
		select {
		case l <- *res:
		default:
		}
	}
	return nil
}

// Listen registers a listener that is closed once ctx is done.
func (f *Feed) Listen(ctx context.Context) (<-chan model.Result, error) {
	ch := make(chan model.Result, 16)
	f.mu.Lock()
	f.listeners = append(f.listeners, ch)
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, l := range f.listeners {
			if l == ch {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

// Listeners returns the number of active listeners.
func (f *Feed) Listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// Counter is an in-memory fixed-window counter for the auth rate limiter.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounter creates a counter with no keys.
func NewCounter() *Counter {
	return &Counter{counts: map[string]int64{}}
}

// Incr bumps key and returns the new count. Windows never expire.
func (c *Counter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}
