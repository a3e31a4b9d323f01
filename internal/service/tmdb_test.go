package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/repository"
)

func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tmdb-token", r.Header.Get("Authorization"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title": "The Matrix",
			"overview": "A hacker learns the truth.",
			"release_date": "1999-03-31",
			"runtime": 136,
			"genres": [{"name": "Action"}, {"name": "Science Fiction"}],
			"poster_path": "/matrix.jpg"
		}`))
	})
	mux.HandleFunc("/tv/70523", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Dark",
			"first_air_date": "2017-12-01",
			"episode_run_time": [50, 60],
			"number_of_episodes": 26,
			"genres": [{"name": "Drama"}]
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestTMDB(t *testing.T, token string) (*TMDBService, *CatalogService) {
	catalog := NewCatalogService(repository.NewMemoryStore().Catalog())
	svc := NewTMDBService(catalog, token)
	svc.baseURL = newTMDBServer(t).URL
	return svc, catalog
}

func TestTMDBImportMovie(t *testing.T) {
	svc, catalog := newTestTMDB(t, "tmdb-token")

	entry, err := svc.Import(context.Background(), ImportInput{TMDBID: 603, Type: "movie"})
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", entry.Title)
	assert.Equal(t, model.TypeMovie, entry.Type)
	assert.Equal(t, "Action, Science Fiction", entry.Genre)
	assert.Equal(t, 1999, entry.Year)
	assert.Equal(t, 136, entry.Duration)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", entry.PosterURL)

	got, err := catalog.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", got.Title)
}

func TestTMDBImportSeriesDuration(t *testing.T) {
	svc, _ := newTestTMDB(t, "tmdb-token")

	entry, err := svc.Import(context.Background(), ImportInput{TMDBID: 70523, Type: "series"})
	require.NoError(t, err)
	assert.Equal(t, "Dark", entry.Title)
	assert.Equal(t, model.TypeSeries, entry.Type)
	assert.Equal(t, 55*26, entry.Duration)
	assert.Empty(t, entry.PosterURL)
}

func TestTMDBGenreTruncatesOnCharacters(t *testing.T) {
	d := tmdbDetails{Title: "流浪地球", ReleaseDate: "2019-02-05"}
	for i := 0; i < 30; i++ {
		d.Genres = append(d.Genres, tmdbGenre{Name: "奇幻冒险"})
	}

	in := d.toInput(model.TypeMovie)
	assert.True(t, utf8.ValidString(in.Genre))
	assert.Equal(t, maxGenreRunes, utf8.RuneCountInString(in.Genre))
	assert.True(t, strings.HasPrefix(in.Genre, "奇幻冒险, 奇幻冒险"))
	assert.True(t, strings.HasSuffix(in.Genre, ", 奇幻冒险"))

	// 截断后仍能通过目录校验
	entry, err := NewCatalogService(repository.NewMemoryStore().Catalog()).Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Genre, entry.Genre)
}

func TestTMDBImportErrors(t *testing.T) {
	disabled, _ := newTestTMDB(t, "")
	assert.False(t, disabled.Enabled())
	_, err := disabled.Import(context.Background(), ImportInput{TMDBID: 603, Type: "movie"})
	assert.Equal(t, KindValidation, KindOf(err))

	svc, _ := newTestTMDB(t, "tmdb-token")
	_, err = svc.Import(context.Background(), ImportInput{TMDBID: 603, Type: "anime"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Import(context.Background(), ImportInput{TMDBID: 1, Type: "movie"})
	assert.Equal(t, KindStore, KindOf(err))
}
