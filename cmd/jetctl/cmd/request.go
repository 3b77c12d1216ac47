package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func requestCmd() *cobra.Command {
	requestRoot := &cobra.Command{
		Use:   "request",
		Short: "Send raw authenticated requests",
	}

	requestRoot.AddCommand(requestGetCmd())
	return requestRoot
}

func requestGetCmd() *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET a path under the API root",
		Long: "Send an authenticated GET and print the status class and body.\n" +
			"Paths are relative to the configured base URL; absolute URLs are sent as is.",
		Example: `  jetctl request get /merchant-skus/WIDGET-001
  jetctl request get /orders/ready -H "Accept: application/json"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			c, err := setup()
			if err != nil {
				return err
			}

			resp, err := c.Get(cmd.Context(), args[0], h)
			if err != nil {
				return err
			}

			if jsonOutput() {
				body, jsonErr := resp.JSON()
				if jsonErr != nil {
					body = resp.Content()
				}
				return outputJSON(map[string]any{
					"status": resp.StatusCode(),
					"class":  resp.Class().String(),
					"body":   body,
				})
			}
			return printResponse(os.Stdout, resp)
		},
	}
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, `extra header as "Name: value" (repeatable)`)

	return cmd
}

func parseHeaders(raw []string) (http.Header, error) {
	h := make(http.Header)
	for _, line := range raw {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", line)
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}
