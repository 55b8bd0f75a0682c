package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// newCalendarAuthCommand authorizes read-only calendar access for OAuth Desktop
// credentials and writes the token the availability provider loads.
func newCalendarAuthCommand() *cobra.Command {
	var credsPath, tokenPath string
	cmd := &cobra.Command{
		Use:   "calendar-auth",
		Short: "Authorize Google Calendar free/busy access and save the OAuth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if credsPath == "" || tokenPath == "" {
				e, err := loadEnv()
				if err != nil {
					return err
				}
				if credsPath == "" {
					credsPath = e.cfg.GoogleCalendar.CredentialsPath
				}
				if tokenPath == "" {
					tokenPath = e.cfg.GoogleCalendar.TokenPath
				}
			}

			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("failed to read credentials file %q: %w", credsPath, err)
			}
			config, err := google.ConfigFromJSON(data, calendar.CalendarReadonlyScope)
			if err != nil {
				return fmt.Errorf("failed to parse credentials, %q must be an OAuth Desktop App credentials file: %w", credsPath, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "1. Open this URL and sign in with the calendar's Google account:")
			fmt.Fprintln(w)
			fmt.Fprintln(w, config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			fmt.Fprintln(w)
			fmt.Fprint(w, "2. Paste the authorization code and press Enter: ")

			var code string
			if _, err := fmt.Fscan(cmd.InOrStdin(), &code); err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			tok, err := config.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}

			f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", tokenPath, err)
			}
			defer f.Close()
			if err := json.NewEncoder(f).Encode(tok); err != nil {
				return fmt.Errorf("failed to write %s: %w", tokenPath, err)
			}

			fmt.Fprintf(w, "\ntoken saved to %s; restart the planner to enable calendar availability\n", tokenPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&credsPath, "credentials", "", "OAuth credentials file (default: google_calendar.credentials_path)")
	cmd.Flags().StringVar(&tokenPath, "token", "", "Token output file (default: google_calendar.token_path)")
	return cmd
}
