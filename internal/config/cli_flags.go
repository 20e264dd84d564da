package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file (optional)")
	cmd.PersistentFlags().String("endpoint", "", "Search endpoint URL")
	cmd.PersistentFlags().String("proxy", "", "Comma separated HTTP/SOCKS5 proxies to rotate through")
	cmd.PersistentFlags().String("timeout", "", "Per-request timeout (e.g. 30s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", []string{}, "Extra request header (e.g. -H \"Referer: x\")")
	cmd.PersistentFlags().Int("retries", 0, "Attempts per request on network errors (1 disables retry)")
	cmd.PersistentFlags().Float64("rate-limit", 0, "Maximum requests per second to the endpoint")
	cmd.PersistentFlags().Bool("no-progress", false, "Disable the page progress bar")
}
