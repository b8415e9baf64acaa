package command

import (
	"fmt"
	"time"

	"cinelog/cmd/cli/authentication"
	"cinelog/cmd/cli/command/client"
	"cinelog/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the cinelog API server. Supports register, login, refresh and logout.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		user, err := client.NewHTTPClient(apiURL).Register(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		success(cmd.OutOrStdout(), "Registration successful! Please login to continue.")
		fmt.Fprintf(cmd.OutOrStdout(), "UserID: %s\n", user.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session in the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		auth, err := client.NewHTTPClient(apiURL).Login(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := authentication.StoreTokens(credentialsFrom(auth, req.Email)); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		name := req.Email
		if auth.User != nil {
			name = auth.User.Name
		}
		success(cmd.OutOrStdout(), "Logged in as %s", name)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rotate the stored session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		auth, err := client.NewHTTPClient(apiURL).RefreshToken(cmd.Context(), creds.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		if err := authentication.StoreTokens(credentialsFrom(auth, creds.Email)); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		success(cmd.OutOrStdout(), "Session refreshed")
		return nil
	},
}

// logoutCmd revokes the refresh token on the server and clears the keychain.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if creds, err := authentication.GetTokens(); err == nil {
			if err := client.NewHTTPClient(apiURL).Logout(cmd.Context(), creds.RefreshToken); err != nil {
				warn(cmd.ErrOrStderr(), "server logout failed: %v", err)
			}
		}
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		success(cmd.OutOrStdout(), "Successfully logged out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, refreshCmd, logoutCmd)

	registerCmd.Flags().StringP("name", "n", "", "Display name for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

func credentialsFrom(auth *dto.AuthResponse, email string) *authentication.StoredCredentials {
	creds := &authentication.StoredCredentials{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		Email:        email,
	}
	if auth.ExpiresIn > 0 {
		creds.ExpiresAt = time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second).Unix()
	}
	return creds
}
