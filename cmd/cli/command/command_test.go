package command

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"cinelog/cmd/cli/authentication"
	"cinelog/internal/catalog/tmdb"
	"cinelog/internal/microservices/http-api/handler"
	"cinelog/internal/microservices/http-api/repository"
	"cinelog/internal/microservices/http-api/service"
	"cinelog/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testsupport.NewDB(t)
	cfg := testsupport.NewConfig(t)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statusRepo := repository.NewUserMovieListRepository(db)
	ratings := service.NewRatingService(repository.NewRatingRepository(db))

	srv := httptest.NewServer(handler.NewRouter(cfg, handler.Services{
		Auth:     service.NewAuthService(userRepo, repository.NewRefreshTokenRepository(db), cfg),
		Movies:   service.NewMovieService(tmdb.NewFallback(), ratings, reviewRepo, cfg.TMDBImageURL),
		Ratings:  ratings,
		Reviews:  service.NewReviewService(reviewRepo),
		Lists:    service.NewCustomListService(repository.NewCustomListRepository(db)),
		Statuses: service.NewUserListService(statusRepo),
		Users:    service.NewUserService(userRepo, reviewRepo, statusRepo),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLISessionFlow(t *testing.T) {
	keyring.MockInit()
	srv := newAPIServer(t)

	out, err := run(t, srv, "auth", "register", "--name", "Alice", "--email", "alice@example.com", "--password", "password123")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Registration successful")

	_, err = run(t, srv, "rating", "rate", "550", "4")
	require.ErrorIs(t, err, authentication.ErrNotLoggedIn)

	out, err = run(t, srv, "auth", "login", "--email", "alice@example.com", "--password", "password123")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Logged in as Alice")

	creds, err := authentication.GetTokens()
	require.NoError(t, err)
	assert.NotEmpty(t, creds.AccessToken)
	assert.False(t, creds.Expired(time.Now()))

	out, err = run(t, srv, "rating", "rate", "550", "4")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Your Rating: 4/5")

	out, err = run(t, srv, "rating", "show", "550")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Community rating: 4.0 from 1 ratings")

	out, err = run(t, srv, "list", "create", "Favorites")
	require.NoError(t, err, out)
	lists, err := authenticatedLists(t, srv)
	require.NoError(t, err)
	require.Len(t, lists, 1)

	out, err = run(t, srv, "list", "add", lists[0], "550", "Fight Club")
	require.NoError(t, err, out)
	out, err = run(t, srv, "list", "show", lists[0])
	require.NoError(t, err, out)
	assert.Contains(t, out, "Fight Club")

	out, err = run(t, srv, "status", "set", "550", "want-to-watch")
	require.NoError(t, err, out)
	assert.Contains(t, out, "WANT_TO_WATCH")

	out, err = run(t, srv, "auth", "logout")
	require.NoError(t, err, out)
	_, err = authentication.GetTokens()
	assert.ErrorIs(t, err, authentication.ErrNotLoggedIn)
}

func TestCLIExpiredSessionRefreshes(t *testing.T) {
	keyring.MockInit()
	srv := newAPIServer(t)

	_, err := run(t, srv, "auth", "register", "--name", "Bob", "--email", "bob@example.com", "--password", "password123")
	require.NoError(t, err)
	_, err = run(t, srv, "auth", "login", "--email", "bob@example.com", "--password", "password123")
	require.NoError(t, err)

	creds, err := authentication.GetTokens()
	require.NoError(t, err)
	staleRefresh := creds.RefreshToken
	creds.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	require.NoError(t, authentication.StoreTokens(creds))

	out, err := run(t, srv, "profile")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Bob <bob@example.com>")

	creds, err = authentication.GetTokens()
	require.NoError(t, err)
	assert.NotEqual(t, staleRefresh, creds.RefreshToken)
}

func TestCatalogCommands(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "movies", "search", "godfather")
	require.NoError(t, err, out)
	assert.Contains(t, out, "The Godfather")
	assert.Contains(t, out, "1972")

	out, err = run(t, srv, "movies", "show", "155")
	require.NoError(t, err, out)
	assert.Contains(t, out, "The Dark Knight (2008)")

	_, err = run(t, srv, "movies", "show", "abc")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]string{
		"favorite":      "FAVORITE",
		"want-to-watch": "WANT_TO_WATCH",
		" WATCHED ":     "WATCHED",
	} {
		got, err := parseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, string(got))
	}
	_, err := parseStatus("loved")
	assert.Error(t, err)
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"ID", "Title"}, [][]string{{"550"}}, []columnAlignment{alignRight})
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "550")
	assert.Empty(t, renderTable(nil, nil, nil))
}

func authenticatedLists(t *testing.T, srv *httptest.Server) ([]string, error) {
	t.Helper()
	apiURL = srv.URL
	c, err := GetAuthenticatedClient(rootCmd)
	if err != nil {
		return nil, err
	}
	lists, err := c.MyLists(t.Context())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return ids, nil
}
