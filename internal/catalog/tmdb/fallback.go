package tmdb

import (
	"context"
	"strings"
)

const fallbackPerPage = 10

// Fallback serves a fixed set of well-known movies so the application runs
// without TMDB credentials. Every list endpoint returns the same set.
type Fallback struct {
	movies []Movie
}

var _ Catalog = (*Fallback)(nil)

func NewFallback() *Fallback {
	return &Fallback{movies: fallbackMovies()}
}

func (f *Fallback) Popular(_ context.Context, page int) (*MoviePage, error) {
	return f.page(page), nil
}

func (f *Fallback) Trending(_ context.Context, page int) (*MoviePage, error) {
	return f.page(page), nil
}

func (f *Fallback) TopRated(_ context.Context, page int) (*MoviePage, error) {
	return f.page(page), nil
}

func (f *Fallback) NowPlaying(_ context.Context, page int) (*MoviePage, error) {
	return f.page(page), nil
}

// Search matches titles case-insensitively. All matches come back on page 1.
func (f *Fallback) Search(_ context.Context, query string, _ int) (*MoviePage, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Movie, 0)
	for _, m := range f.movies {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			results = append(results, m)
		}
	}
	return &MoviePage{Page: 1, Results: results, TotalPages: 1, TotalResults: len(results)}, nil
}

// Discover ignores every filter except the page.
func (f *Fallback) Discover(_ context.Context, params DiscoverParams) (*MoviePage, error) {
	return f.page(params.Page), nil
}

func (f *Fallback) ByGenre(_ context.Context, _, page int, _ string) (*MoviePage, error) {
	return f.page(page), nil
}

func (f *Fallback) MovieDetails(_ context.Context, movieID int64) (*MovieDetails, error) {
	for _, m := range f.movies {
		if m.ID != movieID {
			continue
		}
		runtime := 120
		tagline := "An unforgettable story"
		return &MovieDetails{
			Movie:   m,
			Runtime: &runtime,
			Genres: []Genre{
				{ID: 18, Name: "Drama"},
				{ID: 53, Name: "Thriller"},
			},
			Budget:              50000000,
			Revenue:             150000000,
			Status:              "Released",
			Tagline:             &tagline,
			ProductionCompanies: []Company{},
		}, nil
	}
	return nil, ErrNotFound
}

// MovieCredits returns the same placeholder crew for any id.
func (f *Fallback) MovieCredits(_ context.Context, movieID int64) (*Credits, error) {
	return &Credits{
		ID: movieID,
		Cast: []CastMember{
			{ID: 1, Name: "Actor Principal", Character: "Character", Order: 0},
			{ID: 2, Name: "Actor Secundario", Character: "Other Character", Order: 1},
		},
		Crew: []CrewMember{
			{ID: 3, Name: "Director Famoso", Job: "Director", Department: "Directing"},
		},
	}, nil
}

func (f *Fallback) Genres(_ context.Context) (*GenreList, error) {
	return &GenreList{Genres: []Genre{
		{ID: 18, Name: "Drama"},
		{ID: 28, Name: "Acción"},
		{ID: 35, Name: "Comedia"},
	}}, nil
}

func (f *Fallback) page(page int) *MoviePage {
	page = normalizePage(page)
	start := (page - 1) * fallbackPerPage
	results := make([]Movie, 0, fallbackPerPage)
	if start < len(f.movies) {
		end := min(start+fallbackPerPage, len(f.movies))
		results = append(results, f.movies[start:end]...)
	}
	return &MoviePage{
		Page:         page,
		Results:      results,
		TotalPages:   1,
		TotalResults: len(f.movies),
	}
}

func strPtr(s string) *string { return &s }

func fallbackMovies() []Movie {
	return []Movie{
		{ID: 550, Title: "Fight Club", OriginalTitle: "Fight Club", Overview: "A ticking-Loss explosive story of a modern working-class male.", PosterPath: strPtr("/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"), BackdropPath: strPtr("/hZkgoQYus5vegHoetLkCJzb17zJ.jpg"), ReleaseDate: "1999-10-15", VoteAverage: 8.4, VoteCount: 26000, Popularity: 80, GenreIDs: []int{18, 53, 35}, OriginalLanguage: "en"},
		{ID: 238, Title: "The Godfather", OriginalTitle: "The Godfather", Overview: "Spanning the years 1945 to 1955, a chronicle of the fictional Italian-American Corleone crime family.", PosterPath: strPtr("/3bhkrj58Vtu7enYsRolD1fZdja1.jpg"), BackdropPath: strPtr("/tmU7GeKVybMWFButWEGl2M4GeiP.jpg"), ReleaseDate: "1972-03-14", VoteAverage: 8.7, VoteCount: 18000, Popularity: 120, GenreIDs: []int{18, 80}, OriginalLanguage: "en"},
		{ID: 424, Title: "Schindler's List", OriginalTitle: "Schindler's List", Overview: "The true story of how businessman Oskar Schindler saved over a thousand Jewish lives.", PosterPath: strPtr("/sF1U4EUQS8YHUYjNl3pMGNIQyr0.jpg"), BackdropPath: strPtr("/loRmRzQXZeqG78TqZuyvSlEQfZb.jpg"), ReleaseDate: "1993-12-15", VoteAverage: 8.6, VoteCount: 14000, Popularity: 60, GenreIDs: []int{18, 36, 10752}, OriginalLanguage: "en"},
		{ID: 155, Title: "The Dark Knight", OriginalTitle: "The Dark Knight", Overview: "Batman raises the stakes in his war on crime.", PosterPath: strPtr("/qJ2tW6WMUDux911r6m7haRef0WH.jpg"), BackdropPath: strPtr("/hkBaDkMWbLaf8B1lsWsKX7Ew3Xq.jpg"), ReleaseDate: "2008-07-16", VoteAverage: 8.5, VoteCount: 30000, Popularity: 150, GenreIDs: []int{18, 28, 80}, OriginalLanguage: "en"},
		{ID: 680, Title: "Pulp Fiction", OriginalTitle: "Pulp Fiction", Overview: "A burger-loving hit man, his philosophical partner, a drug-addled gangster's moll.", PosterPath: strPtr("/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg"), BackdropPath: strPtr("/suaEOtk1N1sgg2MTM7oZd2cfVp3.jpg"), ReleaseDate: "1994-09-10", VoteAverage: 8.5, VoteCount: 25000, Popularity: 90, GenreIDs: []int{53, 80}, OriginalLanguage: "en"},
		{ID: 13, Title: "Forrest Gump", OriginalTitle: "Forrest Gump", Overview: "A man with a low IQ has accomplished great things in his life.", PosterPath: strPtr("/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg"), BackdropPath: strPtr("/3h1JZGDhZ8nzxdgvkxha0qBqi05.jpg"), ReleaseDate: "1994-06-23", VoteAverage: 8.5, VoteCount: 24000, Popularity: 85, GenreIDs: []int{35, 18, 10749}, OriginalLanguage: "en"},
		{ID: 122, Title: "The Lord of the Rings: The Return of the King", OriginalTitle: "The Lord of the Rings: The Return of the King", Overview: "Aragorn is revealed as the heir to the ancient kings.", PosterPath: strPtr("/rCzpDGLbOoPwLjy3OAm5NUPOTrC.jpg"), BackdropPath: strPtr("/2u7zbn8EudG6kLlBzUYqP8RyFU4.jpg"), ReleaseDate: "2003-12-01", VoteAverage: 8.5, VoteCount: 22000, Popularity: 110, GenreIDs: []int{12, 14, 28}, OriginalLanguage: "en"},
		{ID: 27205, Title: "Inception", OriginalTitle: "Inception", Overview: "A thief who steals corporate secrets through the use of dream-sharing technology.", PosterPath: strPtr("/9gk7adHYeDvHkCSEqAvQNLV5Ber.jpg"), BackdropPath: strPtr("/s3TBrRGB1iav7gFOCNx3H31MoES.jpg"), ReleaseDate: "2010-07-15", VoteAverage: 8.4, VoteCount: 33000, Popularity: 140, GenreIDs: []int{28, 878, 12}, OriginalLanguage: "en"},
		{ID: 497, Title: "The Green Mile", OriginalTitle: "The Green Mile", Overview: "A supernatural tale set on death row in a Southern prison.", PosterPath: strPtr("/velWPhVMQeQKcxggNEU8YmIo52R.jpg"), BackdropPath: strPtr("/Adrip2Jqzw56KeuV2nAxucKMNXA.jpg"), ReleaseDate: "1999-12-10", VoteAverage: 8.5, VoteCount: 16000, Popularity: 75, GenreIDs: []int{14, 18, 80}, OriginalLanguage: "en"},
		{ID: 389, Title: "12 Angry Men", OriginalTitle: "12 Angry Men", Overview: "The defense and the prosecution have rested and the jury is filing into the jury room.", PosterPath: strPtr("/ow3wq89wM8qd5X7hWKxiRfsFf9C.jpg"), BackdropPath: strPtr("/qqHQsStV6exghCM7zbObuYBiYxw.jpg"), ReleaseDate: "1957-04-10", VoteAverage: 8.5, VoteCount: 7000, Popularity: 45, GenreIDs: []int{18}, OriginalLanguage: "en"},
	}
}
