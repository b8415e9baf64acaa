package command

import (
	"fmt"

	"cinelog/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile, recent reviews and tagged movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		profile, err := httpClient.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s <%s>\n", profile.User.Name, profile.User.Email)
		if profile.User.Bio != nil && *profile.User.Bio != "" {
			fmt.Fprintln(out, *profile.User.Bio)
		}
		fmt.Fprintf(out, "Favorites: %d   Want to watch: %d   Watched: %d\n",
			len(profile.Favorites), len(profile.WantToWatch), len(profile.Watched))
		if len(profile.RecentReviews) > 0 {
			fmt.Fprintln(out)
			printReviews(out, profile.RecentReviews)
		}
		return nil
	},
}

var updateProfileCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name, bio or avatar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateProfileDTO
		for flag, target := range map[string]**string{"name": &req.Name, "bio": &req.Bio, "image": &req.Image} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*target = &v
			}
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		user, err := httpClient.UpdateProfile(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		success(cmd.OutOrStdout(), "Profile updated for %s", user.Name)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(updateProfileCmd)

	updateProfileCmd.Flags().String("name", "", "Display name")
	updateProfileCmd.Flags().String("bio", "", "Short bio")
	updateProfileCmd.Flags().String("image", "", "Avatar URL")
}
