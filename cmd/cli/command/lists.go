package command

import (
	"fmt"
	"io"
	"strconv"

	"cinelog/cmd/cli/command/client"
	"cinelog/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage your custom movie lists",
}

var myListsCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show the lists you own",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		lists, err := httpClient.MyLists(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load lists: %w", err)
		}
		if len(lists) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "You have no lists yet.")
			return nil
		}

		rows := make([][]string, 0, len(lists))
		for _, l := range lists {
			rows = append(rows, []string{l.ID, l.Name, visibility(l.IsPublic), strconv.FormatInt(l.MovieCount, 10)})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Name", "Visibility", "Movies"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight})
		return nil
	},
}

var createListCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.CreateCustomListDTO{Name: args[0]}
		req.IsPublic, _ = cmd.Flags().GetBool("public")
		if cmd.Flags().Changed("description") {
			desc, _ := cmd.Flags().GetString("description")
			req.Description = &desc
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		list, err := httpClient.CreateList(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create list: %w", err)
		}
		success(cmd.OutOrStdout(), "Created list %q (id %s)", list.Name, list.ID)
		return nil
	},
}

// The session is optional here; public lists are readable by anyone.
var showListCmd = &cobra.Command{
	Use:   "show [list-id]",
	Short: "Show a list and its movies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			httpClient = client.NewHTTPClient(apiURL)
		}
		list, err := httpClient.GetList(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load list: %w", err)
		}
		printList(cmd.OutOrStdout(), list)
		return nil
	},
}

var updateListCmd = &cobra.Command{
	Use:   "update [list-id]",
	Short: "Rename a list, change its description or visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateCustomListDTO
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("description") {
			desc, _ := cmd.Flags().GetString("description")
			req.Description = &desc
		}
		if cmd.Flags().Changed("public") {
			public, _ := cmd.Flags().GetBool("public")
			req.IsPublic = &public
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		list, err := httpClient.UpdateList(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}
		printList(cmd.OutOrStdout(), list)
		return nil
	},
}

var deleteListCmd = &cobra.Command{
	Use:   "delete [list-id]",
	Short: "Delete a list and its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if err := httpClient.DeleteList(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		success(cmd.OutOrStdout(), "List deleted")
		return nil
	},
}

var addListMovieCmd = &cobra.Command{
	Use:   "add [list-id] [movie-id] [title]",
	Short: "Add a movie to a list",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[1])
		if err != nil {
			return err
		}
		req := dto.AddListMovieDTO{ListID: args[0], MovieID: movieID, MovieTitle: args[2]}
		if cmd.Flags().Changed("poster") {
			poster, _ := cmd.Flags().GetString("poster")
			req.MoviePoster = &poster
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if _, err := httpClient.AddToList(cmd.Context(), req); err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}
		success(cmd.OutOrStdout(), "Added %q", req.MovieTitle)
		return nil
	},
}

var removeListMovieCmd = &cobra.Command{
	Use:   "remove [list-id] [movie-id]",
	Short: "Remove a movie from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[1])
		if err != nil {
			return err
		}
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if err := httpClient.RemoveFromList(cmd.Context(), args[0], movieID); err != nil {
			return fmt.Errorf("failed to remove movie: %w", err)
		}
		success(cmd.OutOrStdout(), "Movie removed")
		return nil
	},
}

func init() {
	listCmd.AddCommand(myListsCmd, createListCmd, showListCmd, updateListCmd, deleteListCmd, addListMovieCmd, removeListMovieCmd)

	createListCmd.Flags().StringP("description", "d", "", "List description")
	createListCmd.Flags().Bool("public", false, "Make the list visible to everyone")

	updateListCmd.Flags().String("name", "", "New list name")
	updateListCmd.Flags().StringP("description", "d", "", "New description")
	updateListCmd.Flags().Bool("public", false, "Set visibility")

	addListMovieCmd.Flags().String("poster", "", "Poster path to store with the entry")
}

func printList(w io.Writer, list *dto.CustomListResponse) {
	fmt.Fprintf(w, "%s (%s, %d movies)\n", list.Name, visibility(list.IsPublic), list.MovieCount)
	if list.Description != nil && *list.Description != "" {
		fmt.Fprintln(w, *list.Description)
	}
	if len(list.Movies) == 0 {
		return
	}
	rows := make([][]string, 0, len(list.Movies))
	for _, m := range list.Movies {
		rows = append(rows, []string{strconv.FormatInt(m.MovieID, 10), m.MovieTitle, m.AddedAt.Format("2006-01-02")})
	}
	printTable(w, []string{"Movie ID", "Title", "Added"}, rows, []columnAlignment{alignRight})
}

func visibility(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
