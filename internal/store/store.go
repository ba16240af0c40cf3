// Package store implements the session and favorites store, the single
// process-wide authority over "who is signed in" and "what has been saved".
//
// Authentication here is a deliberate placeholder carried over from the
// original application: credentials are accepted on shape alone (non-empty
// email, password of at least six characters) and are never checked against
// any stored value. Upgrading this to real verification would change
// behavior and is out of scope.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/countrybook/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned by Login when the email is empty or
	// the password is too short.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRegistrationFailed is returned by Register under the same policy.
	ErrRegistrationFailed = errors.New("registration failed, please check your details")
	// ErrNoSession is returned by favorites mutations when nobody is signed in.
	ErrNoSession = errors.New("no active session")
)

// minPasswordLen is the only credential rule the placeholder policy enforces.
const minPasswordLen = 6

// loginSessionID is the fixed user id of the minimal login path. Registration
// generates a fresh timestamp-derived id instead.
const loginSessionID = "1"

// Repository defines the persistence operations required by the Store.
type Repository interface {
	// LoadSession returns the persisted session, or nil if none is stored.
	LoadSession(ctx context.Context) (*models.Session, error)
	// SaveSession writes the session record.
	SaveSession(ctx context.Context, s *models.Session) error
	// DeleteSession erases the session record. A missing record is not an error.
	DeleteSession(ctx context.Context) error
	// LoadFavorites returns the persisted favorites sequence in insertion order.
	LoadFavorites(ctx context.Context) ([]models.FavoriteEntry, error)
	// SaveFavorites rewrites the full favorites sequence.
	SaveFavorites(ctx context.Context, favorites []models.FavoriteEntry) error
}

// Store owns the current session and the favorites collection. All state is
// guarded by a mutex; every mutation persists through the Repository before
// the in-memory state changes, so the two never diverge.
type Store struct {
	mu        sync.Mutex
	session   *models.Session
	favorites []models.FavoriteEntry

	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// New constructs a Store. Load must be called once before serving requests.
func New(repo Repository, log *zap.Logger) *Store {
	return &Store{repo: repo, log: log, now: time.Now}
}

// Load performs the one-time startup read of the session and favorites
// records. Absent or malformed records yield empty state (the repository
// absorbs malformed data). The store is ready once Load returns.
func (s *Store) Load(ctx context.Context) error {
	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	favorites, err := s.repo.LoadFavorites(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.favorites = favorites
	return nil
}

// Login starts a session for the given email. The password is validated by
// length only and never verified against anything.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" || len(password) < minPasswordLen {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		ID:    loginSessionID,
		Email: email,
		Name:  localPart(email),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.session = session
	s.log.Info("session started", zap.String("email", email))
	return session, nil
}

// Register starts a session with a freshly generated user id. The display
// name defaults to the local part of the email when none is given.
func (s *Store) Register(ctx context.Context, email, password, name string) (*models.Session, error) {
	if email == "" || len(password) < minPasswordLen {
		return nil, ErrRegistrationFailed
	}
	if name == "" {
		name = localPart(email)
	}

	session := &models.Session{
		ID:    strconv.FormatInt(s.now().UnixMilli(), 10),
		Email: email,
		Name:  name,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.session = session
	s.log.Info("user registered", zap.String("email", email))
	return session, nil
}

// Logout clears the current session from memory and storage. Favorites are
// left untouched so they survive login cycles. Calling Logout while signed
// out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	if err := s.repo.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.session = nil
	s.log.Info("session ended")
	return nil
}

// AddFavorite appends an entry derived from the given country and persists
// the full sequence. Adding a country that is already saved is a no-op.
// Requires an active session.
func (s *Store) AddFavorite(ctx context.Context, country *models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ErrNoSession
	}
	for _, f := range s.favorites {
		if f.CCA3 == country.CCA3 {
			return nil
		}
	}

	next := make([]models.FavoriteEntry, 0, len(s.favorites)+1)
	next = append(next, s.favorites...)
	next = append(next, models.FavoriteEntry{
		CCA3: country.CCA3,
		Name: country.Name.Common,
		Flag: country.FlagURL(),
	})

	if err := s.repo.SaveFavorites(ctx, next); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	s.favorites = next
	return nil
}

// RemoveFavorite removes the entry with the given code and persists the
// resulting sequence. An unknown code is a no-op. Requires an active session.
func (s *Store) RemoveFavorite(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ErrNoSession
	}

	next := make([]models.FavoriteEntry, 0, len(s.favorites))
	found := false
	for _, f := range s.favorites {
		if f.CCA3 == code {
			found = true
			continue
		}
		next = append(next, f)
	}
	if !found {
		return nil
	}

	if err := s.repo.SaveFavorites(ctx, next); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	s.favorites = next
	return nil
}

// IsFavorite reports whether the given code is in the favorites collection.
func (s *Store) IsFavorite(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.CCA3 == code {
			return true
		}
	}
	return false
}

// Favorites returns a copy of the favorites collection in insertion order.
func (s *Store) Favorites() []models.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FavoriteEntry, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// CurrentSession returns a copy of the active session, or nil when signed out.
func (s *Store) CurrentSession() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// localPart returns the part of the email before the '@', or the whole
// string when there is none.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
