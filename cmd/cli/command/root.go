package command

// root.go defines the root command for the cinelog CLI and the global flags.

import (
	"fmt"
	"os"
	"time"

	"cinelog/cmd/cli/authentication"
	"cinelog/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cinelog",
	Short: "cinelog - movie discovery and reviews from the terminal",
	Long: `cinelog talks to a cinelog API server. Use it to:
- Browse, search and inspect movies
- Rate and review movies, and like other people's reviews
- Keep custom lists and favorite / want-to-watch / watched tags

Use "cinelog [command] --help" to see what each command accepts.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	def := defaultAPIURL
	if v := os.Getenv("CINELOG_API"); v != "" {
		def = v
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", def, "API server URL (env CINELOG_API)")

	rootCmd.AddCommand(authCmd, moviesCmd, ratingCmd, reviewCmd, listCmd, statusCmd, profileCmd)
}

// GetAuthenticatedClient returns a client carrying the stored access token,
// refreshing the session first when the token has expired.
func GetAuthenticatedClient(cmd *cobra.Command) (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}

	httpClient := client.NewHTTPClient(apiURL)
	if creds.Expired(time.Now()) && creds.RefreshToken != "" {
		auth, err := httpClient.RefreshToken(cmd.Context(), creds.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("session expired, log in again: %w", err)
		}
		creds = credentialsFrom(auth, creds.Email)
		if err := authentication.StoreTokens(creds); err != nil {
			return nil, fmt.Errorf("save refreshed session: %w", err)
		}
	}

	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}
