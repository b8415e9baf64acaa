package command

import (
	"fmt"
	"strconv"

	"cinelog/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rating management commands",
	Long:  `Rate movies from 1 to 5 and view community ratings`,
}

var rateCmd = &cobra.Command{
	Use:   "rate [movie-id] [rating]",
	Short: "Rate a movie (1-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating: %w", err)
		}
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		result, err := httpClient.RateMovie(cmd.Context(), movieID, rating)
		if err != nil {
			return fmt.Errorf("failed to rate movie: %w", err)
		}

		success(cmd.OutOrStdout(), "Rating submitted successfully!")
		fmt.Fprintf(cmd.OutOrStdout(), "Movie ID: %d\n", result.MovieID)
		fmt.Fprintf(cmd.OutOrStdout(), "Your Rating: %d/5\n", result.Rating)
		return nil
	},
}

var myRatingCmd = &cobra.Command{
	Use:   "get [movie-id]",
	Short: "Get your rating for a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		result, err := httpClient.MyRating(cmd.Context(), movieID)
		if err != nil {
			return fmt.Errorf("failed to get rating: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Your rating for movie %d: %d/5 (updated %s)\n",
			movieID, result.Rating, result.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var communityRatingCmd = &cobra.Command{
	Use:   "show [movie-id]",
	Short: "Show the community rating of a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		result, err := client.NewHTTPClient(apiURL).MovieRatings(cmd.Context(), movieID)
		if err != nil {
			return fmt.Errorf("failed to load ratings: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Community rating: %s from %d ratings\n", formatAverage(result.Average), result.Count)
		return nil
	},
}

func init() {
	ratingCmd.AddCommand(rateCmd, myRatingCmd, communityRatingCmd)
}
