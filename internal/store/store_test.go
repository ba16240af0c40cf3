package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/countrybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory Repository recording calls.
type fakeRepo struct {
	session   *models.Session
	favorites []models.FavoriteEntry

	saveSessionErr   error
	saveFavoritesErr error
	favoriteSaves    int
}

func (f *fakeRepo) LoadSession(ctx context.Context) (*models.Session, error) {
	return f.session, nil
}

func (f *fakeRepo) SaveSession(ctx context.Context, s *models.Session) error {
	if f.saveSessionErr != nil {
		return f.saveSessionErr
	}
	f.session = s
	return nil
}

func (f *fakeRepo) DeleteSession(ctx context.Context) error {
	f.session = nil
	return nil
}

func (f *fakeRepo) LoadFavorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	return f.favorites, nil
}

func (f *fakeRepo) SaveFavorites(ctx context.Context, favorites []models.FavoriteEntry) error {
	if f.saveFavoritesErr != nil {
		return f.saveFavoritesErr
	}
	f.favoriteSaves++
	f.favorites = favorites
	return nil
}

func newTestStore(t *testing.T, repo *fakeRepo) *Store {
	t.Helper()
	s := New(repo, zap.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func country(code, name string) *models.Country {
	return &models.Country{
		Name:  models.CountryName{Common: name},
		Flags: models.Flags{PNG: "https://flags.example/" + code + ".png"},
		CCA3:  code,
	}
}

func TestLogin_ShortPassword(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})

	_, err := s.Login(context.Background(), "user@example.com", "short")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, s.CurrentSession(), "failed login must leave the session unchanged")
}

func TestLogin_EmptyEmail(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})

	_, err := s.Login(context.Background(), "", "longenough")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)

	session, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "1", session.ID)
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, "user", session.Name, "display name is the local part of the email")
	require.NotNil(t, repo.session, "session must be persisted")
	assert.Equal(t, *session, *s.CurrentSession())
}

func TestLogin_PersistFailureLeavesStateUnchanged(t *testing.T) {
	repo := &fakeRepo{saveSessionErr: errors.New("disk full")}
	s := newTestStore(t, repo)

	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.Error(t, err)
	assert.Nil(t, s.CurrentSession())
}

func TestRegister_DefaultsNameAndGeneratesFreshIDs(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})
	base := time.UnixMilli(1700000000000)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}

	first, err := s.Register(context.Background(), "alice@example.com", "longenough", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Name)

	second, err := s.Register(context.Background(), "alice@example.com", "longenough", "Alice B")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", second.Name)
	assert.NotEqual(t, first.ID, second.ID, "repeated registrations must not collide")
}

func TestRegister_PolicyFailure(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})

	_, err := s.Register(context.Background(), "alice@example.com", "short", "Alice")
	require.ErrorIs(t, err, ErrRegistrationFailed)
}

func TestLogout_ClearsSessionLeavesFavorites(t *testing.T) {
	repo := &fakeRepo{
		session:   &models.Session{ID: "1", Email: "user@example.com", Name: "user"},
		favorites: []models.FavoriteEntry{{CCA3: "FRA", Name: "France"}},
	}
	s := newTestStore(t, repo)
	before := s.Favorites()

	require.NoError(t, s.Logout(context.Background()))
	assert.Nil(t, s.CurrentSession())
	assert.Equal(t, before, s.Favorites(), "favorites must survive logout")
	assert.Nil(t, repo.session, "durable session record must be erased")

	// Logging out again is a no-op.
	require.NoError(t, s.Logout(context.Background()))
}

func TestAddFavorite_RequiresSession(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})

	err := s.AddFavorite(context.Background(), country("FRA", "France"))
	require.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, s.Favorites())
}

func TestAddFavorite_DuplicateIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(context.Background(), country("FRA", "France")))
	require.NoError(t, s.AddFavorite(context.Background(), country("FRA", "France")))

	assert.Len(t, s.Favorites(), 1, "no two entries may share a code")
	assert.Equal(t, 1, repo.favoriteSaves, "duplicate add must not rewrite storage")
	assert.True(t, s.IsFavorite("FRA"))
}

func TestFavorites_InsertionOrderPreserved(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(context.Background(), country("FRA", "France")))
	require.NoError(t, s.AddFavorite(context.Background(), country("DEU", "Germany")))
	require.NoError(t, s.AddFavorite(context.Background(), country("JPN", "Japan")))

	codes := func(favorites []models.FavoriteEntry) []string {
		out := make([]string, len(favorites))
		for i, f := range favorites {
			out[i] = f.CCA3
		}
		return out
	}
	assert.Equal(t, []string{"FRA", "DEU", "JPN"}, codes(s.Favorites()))

	// Round-trip through the repository into a fresh store.
	reloaded := newTestStore(t, repo)
	assert.Equal(t, s.Favorites(), reloaded.Favorites())
}

func TestRemoveFavorite_UnknownCodeIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.RemoveFavorite(context.Background(), "XYZ"))
	assert.False(t, s.IsFavorite("XYZ"))
	assert.Equal(t, 0, repo.favoriteSaves)
}

func TestRemoveFavorite_RemovesAndPersists(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.AddFavorite(context.Background(), country("FRA", "France")))
	require.NoError(t, s.AddFavorite(context.Background(), country("DEU", "Germany")))
	require.NoError(t, s.RemoveFavorite(context.Background(), "FRA"))

	assert.False(t, s.IsFavorite("FRA"))
	assert.True(t, s.IsFavorite("DEU"))
	assert.Len(t, repo.favorites, 1, "resulting sequence must be persisted")
}

func TestAddFavorite_PersistFailureLeavesStateUnchanged(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "user@example.com", "longenough")
	require.NoError(t, err)

	repo.saveFavoritesErr = errors.New("disk full")
	require.Error(t, s.AddFavorite(context.Background(), country("FRA", "France")))
	assert.False(t, s.IsFavorite("FRA"))
	assert.Empty(t, s.Favorites())
}
