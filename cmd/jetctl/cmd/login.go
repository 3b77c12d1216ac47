package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type loginResult struct {
	Authenticated bool      `json:"authenticated"`
	State         string    `json:"state"`
	Expires       time.Time `json:"expires,omitzero"`
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and run the live auth test",
		Long: "Exchange the configured credentials for a bearer token and confirm\n" +
			"the API accepts it. Exits non-zero when the credentials are rejected.",
		Example: `  # Credentials from the environment
  JETCTL_USERNAME=merchant JETCTL_PASSWORD=secret jetctl login

  # Credentials from a config file
  jetctl login --config jetctl.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := setup()
			if err != nil {
				return err
			}

			ok, err := c.Login(cmd.Context())
			if err != nil {
				return err
			}

			res := loginResult{
				Authenticated: ok,
				State:         c.State().String(),
				Expires:       c.Credentials().Expiry(),
			}
			if jsonOutput() {
				return outputJSON(res)
			}

			if !ok {
				fmt.Println("Token issued but the auth test rejected it; session cleared.")
				return nil
			}
			fmt.Printf("Logged in as %s (token expires %s)\n",
				c.Credentials().Username(), res.Expires.Format(time.RFC3339))
			return nil
		},
	}
}
