package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Sign in as a learner",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.store.ProfileRepo().SignIn(cmd.Context(), strings.Join(args, " "), role)
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		fmt.Printf("Signed in as %s (%s)\n", p.Name, p.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out the current learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.ProfileRepo()
		p, err := repo.Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("current profile: %w", err)
		}
		if p == nil {
			fmt.Println("Nobody is signed in.")
			return nil
		}
		if err := repo.SignOut(cmd.Context()); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		fmt.Printf("Signed out %s\n", p.Name)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("role", "student", "Learner role")
}
