package command

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"cinelog/cmd/cli/command/client"
	"cinelog/internal/catalog/tmdb"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the movie catalog",
}

var browseCmd = &cobra.Command{
	Use:   "list",
	Short: "List popular, trending, top rated or now playing movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listType, _ := cmd.Flags().GetString("type")
		page, _ := cmd.Flags().GetInt("page")

		movies, err := client.NewHTTPClient(apiURL).ListMovies(cmd.Context(), listType, page)
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}
		printMoviePage(cmd.OutOrStdout(), movies)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search by title, or discover by genre, year and rating",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := url.Values{}
		if len(args) == 1 {
			filters.Set("q", args[0])
		}
		for _, name := range []string{"genre", "year", "sort-by", "min-rating", "max-rating", "min-votes", "page"} {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				filters.Set(strings.ReplaceAll(name, "-", "_"), f.Value.String())
			}
		}

		movies, err := client.NewHTTPClient(apiURL).SearchMovies(cmd.Context(), filters)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		printMoviePage(cmd.OutOrStdout(), movies)
		return nil
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List catalog genres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := client.NewHTTPClient(apiURL).Genres(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load genres: %w", err)
		}
		rows := make([][]string, 0, len(genres.Genres))
		for _, g := range genres.Genres {
			rows = append(rows, []string{strconv.Itoa(g.ID), g.Name})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Name"}, rows, []columnAlignment{alignRight})
		return nil
	},
}

var showMovieCmd = &cobra.Command{
	Use:   "show [movie-id]",
	Short: "Show a movie with its cast, community rating and latest reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		movie, err := client.NewHTTPClient(apiURL).GetMovie(cmd.Context(), movieID)
		if err != nil {
			return fmt.Errorf("failed to load movie: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", movie.Title, releaseYear(movie.ReleaseDate))
		if movie.Tagline != nil && *movie.Tagline != "" {
			fmt.Fprintf(out, "%q\n", *movie.Tagline)
		}
		fmt.Fprintf(out, "\n%s\n\n", movie.Overview)
		fmt.Fprintf(out, "TMDB: %.1f (%d votes)   Community: %s (%d ratings)\n",
			movie.VoteAverage, movie.VoteCount, formatAverage(movie.CommunityRating), movie.RatingCount)
		fmt.Fprintf(out, "Poster: %s\n", movie.PosterURL)

		if movie.Credits != nil && len(movie.Credits.Cast) > 0 {
			rows := make([][]string, 0, len(movie.Credits.Cast))
			for _, c := range movie.Credits.Cast {
				rows = append(rows, []string{c.Name, c.Character})
			}
			fmt.Fprintln(out)
			printTable(out, []string{"Cast", "Character"}, rows, nil)
		}
		if len(movie.Reviews) > 0 {
			fmt.Fprintln(out)
			printReviews(out, movie.Reviews)
		}
		return nil
	},
}

func init() {
	moviesCmd.AddCommand(browseCmd, searchCmd, genresCmd, showMovieCmd)

	browseCmd.Flags().StringP("type", "t", "popular", "popular, trending, top_rated or now_playing")
	browseCmd.Flags().Int("page", 1, "Page number")

	searchCmd.Flags().Int("genre", 0, "Genre id")
	searchCmd.Flags().String("year", "", "Release year (YYYY)")
	searchCmd.Flags().String("sort-by", "", "TMDB sort, e.g. vote_average.desc")
	searchCmd.Flags().Float64("min-rating", 0, "Minimum TMDB vote average")
	searchCmd.Flags().Float64("max-rating", 10, "Maximum TMDB vote average")
	searchCmd.Flags().Int("min-votes", 0, "Minimum vote count")
	searchCmd.Flags().Int("page", 1, "Page number")
}

func printMoviePage(w io.Writer, page *tmdb.MoviePage) {
	if len(page.Results) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return
	}
	rows := make([][]string, 0, len(page.Results))
	for _, m := range page.Results {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			truncate(m.Title, 48),
			releaseYear(m.ReleaseDate),
			strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
		})
	}
	printTable(w, []string{"ID", "Title", "Year", "Rating"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight})
	fmt.Fprintf(w, "Page %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie ID %q", s)
	}
	return id, nil
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return "-"
	}
	return date[:4]
}
