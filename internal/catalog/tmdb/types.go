package tmdb

// Movie is a catalog entry as it appears in TMDB list and search responses.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language"`
}

// MoviePage models the TMDB paginated movie response.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the body of /genre/movie/list.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

type Company struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// MovieDetails extends Movie with the fields only /movie/{id} returns.
type MovieDetails struct {
	Movie
	Runtime             *int      `json:"runtime"`
	Genres              []Genre   `json:"genres"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	Status              string    `json:"status"`
	Tagline             *string   `json:"tagline"`
	ProductionCompanies []Company `json:"production_companies"`
}

type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits is the body of /movie/{id}/credits.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}
