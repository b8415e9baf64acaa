package command

import (
	"fmt"
	"io"
	"strconv"

	"cinelog/cmd/cli/command/client"
	"cinelog/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Write, read and like movie reviews",
}

var writeReviewCmd = &cobra.Command{
	Use:   "write [movie-id]",
	Short: "Write or replace your review of a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		req := dto.CreateReviewDTO{MovieID: movieID}
		req.Content, _ = cmd.Flags().GetString("content")
		req.Rating, _ = cmd.Flags().GetInt("rating")

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		review, err := httpClient.SubmitReview(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}
		success(cmd.OutOrStdout(), "Review saved (id %s)", review.ID)
		return nil
	},
}

var readReviewsCmd = &cobra.Command{
	Use:   "list [movie-id]",
	Short: "List a movie's reviews, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		result, err := client.NewHTTPClient(apiURL).MovieReviews(cmd.Context(), movieID, page, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(result.Data) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
			return nil
		}
		printReviews(cmd.OutOrStdout(), result.Data)
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d reviews)\n", result.Page, result.TotalPages, result.Total)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like [review-id]",
	Short: "Like a review, or remove your like",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		liked, err := httpClient.ToggleLike(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to update like: %w", err)
		}
		if liked {
			success(cmd.OutOrStdout(), "Liked")
		} else {
			success(cmd.OutOrStdout(), "Like removed")
		}
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(writeReviewCmd, readReviewsCmd, likeCmd)

	writeReviewCmd.Flags().StringP("content", "c", "", "Review text (at least 10 characters)")
	writeReviewCmd.Flags().IntP("rating", "r", 0, "Rating from 1 to 5")
	writeReviewCmd.MarkFlagRequired("content")
	writeReviewCmd.MarkFlagRequired("rating")

	readReviewsCmd.Flags().Int("page", 1, "Page number")
	readReviewsCmd.Flags().Int("page-size", 10, "Reviews per page (max 50)")
}

func printReviews(w io.Writer, reviews []dto.ReviewResponse) {
	rows := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		author := r.UserID
		if r.User != nil {
			author = r.User.Name
		}
		rows = append(rows, []string{
			r.ID,
			author,
			strconv.Itoa(r.Rating),
			strconv.Itoa(r.Likes),
			truncate(r.Content, 60),
		})
	}
	printTable(w, []string{"ID", "Author", "Rating", "Likes", "Review"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight})
}
