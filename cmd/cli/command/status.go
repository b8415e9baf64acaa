package command

import (
	"fmt"
	"strconv"
	"strings"

	"cinelog/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Tag movies as FAVORITE, WANT_TO_WATCH or WATCHED",
}

var setStatusCmd = &cobra.Command{
	Use:   "set [movie-id] [status]",
	Short: "Tag a movie",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		status, err := parseStatus(args[1])
		if err != nil {
			return err
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if _, err := httpClient.SetStatus(cmd.Context(), movieID, status); err != nil {
			return fmt.Errorf("failed to tag movie: %w", err)
		}
		success(cmd.OutOrStdout(), "Movie %d tagged %s", movieID, status)
		return nil
	},
}

var listStatusCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tagged movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var status models.ListStatus
		if raw, _ := cmd.Flags().GetString("status"); raw != "" {
			var err error
			if status, err = parseStatus(raw); err != nil {
				return err
			}
		}
		movieID, _ := cmd.Flags().GetInt64("movie")

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		entries, err := httpClient.Statuses(cmd.Context(), movieID, status)
		if err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing tagged yet.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{strconv.FormatInt(e.MovieID, 10), string(e.Status), e.CreatedAt.Format("2006-01-02")})
		}
		printTable(cmd.OutOrStdout(), []string{"Movie ID", "Status", "Since"}, rows, []columnAlignment{alignRight})
		return nil
	},
}

var removeStatusCmd = &cobra.Command{
	Use:   "remove [movie-id] [status]",
	Short: "Remove a tag from a movie",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		status, err := parseStatus(args[1])
		if err != nil {
			return err
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if err := httpClient.RemoveStatus(cmd.Context(), movieID, status); err != nil {
			return fmt.Errorf("failed to remove tag: %w", err)
		}
		success(cmd.OutOrStdout(), "Tag removed")
		return nil
	},
}

func init() {
	statusCmd.AddCommand(setStatusCmd, listStatusCmd, removeStatusCmd)

	listStatusCmd.Flags().String("status", "", "Only show this status")
	listStatusCmd.Flags().Int64("movie", 0, "Only show this movie")
}

// parseStatus accepts any case and dashes, e.g. "want-to-watch".
func parseStatus(s string) (models.ListStatus, error) {
	status := models.ListStatus(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q, want FAVORITE, WANT_TO_WATCH or WATCHED", s)
	}
	return status, nil
}
