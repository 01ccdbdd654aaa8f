// Package cli implements the developer command line: direct weather and
// crypto lookups plus a chat entry into the agent. It reuses the same
// gateway, store and agent the HTTP server runs on.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/store"
)

// DataSource is the slice of the gateway the commands need.
type DataSource interface {
	FetchWeather(ctx context.Context, city string) (*gateway.WeatherReport, error)
	FetchCryptoPrice(ctx context.Context, coin string) (*gateway.CryptoQuote, error)
}

// AgentRunner answers one natural-language message.
type AgentRunner interface {
	Run(ctx context.Context, message string) (string, error)
}

// Deps holds the shared services the commands close over.
type Deps struct {
	Source DataSource
	Agent  AgentRunner
	Store  *store.Store
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "agentfetch",
		Short:         "Weather & crypto tools for the agentic dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newWeatherCommand(deps))
	root.AddCommand(newCryptoCommand(deps))
	root.AddCommand(newChatCommand(deps))
	return root
}

func newWeatherCommand(deps Deps) *cobra.Command {
	var (
		city   string
		raw    bool
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Get current weather for a city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			report, err := deps.Source.FetchWeather(cmd.Context(), city)
			if err != nil {
				fmt.Fprintf(out, "[Error] %v\n", err)
				return err
			}

			fmt.Fprintf(out, "\nWeather in %s, %s\n", report.City, report.Country)
			fmt.Fprintf(out, "  Temperature: %s °C (feels like %s °C)\n",
				formatFloat(report.TemperatureC), formatFloat(report.FeelsLikeC))
			fmt.Fprintf(out, "  Conditions:  %s\n", report.Description)
			fmt.Fprintf(out, "  Humidity:    %s%%\n\n", formatInt(report.Humidity))

			if raw {
				fmt.Fprintln(out, "Raw JSON (OpenWeatherMap):")
				fmt.Fprintln(out, string(report.Raw))
			}
			if !noSave {
				path, err := deps.Store.Save("weather", report.City, report.Raw)
				if err != nil {
					fmt.Fprintf(out, "[Error] %v\n", err)
					return err
				}
				fmt.Fprintf(out, "Raw JSON saved to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&city, "city", "c", "", "City name, e.g. Hyderabad, London, New York.")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw JSON response as well.")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save JSON to the data/ folder.")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func newCryptoCommand(deps Deps) *cobra.Command {
	var (
		coin   string
		raw    bool
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "crypto",
		Short: "Get current crypto price for a coin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			quote, err := deps.Source.FetchCryptoPrice(cmd.Context(), coin)
			if err != nil {
				fmt.Fprintf(out, "[Error] %v\n", err)
				return err
			}

			fmt.Fprintf(out, "\nCrypto: %s\n", quote.CoinID)
			fmt.Fprintf(out, "  Price (USD): %s\n", strconv.FormatFloat(quote.PriceUSD, 'f', -1, 64))
			if quote.Change24h != nil {
				fmt.Fprintf(out, "  24h Change:  %.2f%%\n", *quote.Change24h)
			}
			fmt.Fprintln(out)

			if raw {
				fmt.Fprintln(out, "Raw JSON (CoinGecko):")
				fmt.Fprintln(out, string(quote.Raw))
			}
			if !noSave {
				path, err := deps.Store.Save("crypto", quote.CoinID, quote.Raw)
				if err != nil {
					fmt.Fprintf(out, "[Error] %v\n", err)
					return err
				}
				fmt.Fprintf(out, "Raw JSON saved to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&coin, "coin", "k", "", "CoinGecko coin id (lowercase), e.g. bitcoin, ethereum, solana.")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw JSON response as well.")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save JSON to the data/ folder.")
	_ = cmd.MarkFlagRequired("coin")
	return cmd
}

func newChatCommand(deps Deps) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask a natural language question to the AI agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			// Prompt interactively when --message is omitted.
			if message == "" {
				fmt.Fprint(out, "You: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read message: %w", err)
				}
				message = strings.TrimSpace(line)
			}

			answer, err := deps.Agent.Run(cmd.Context(), message)
			if err != nil {
				fmt.Fprintf(out, "[Error] %v\n", err)
				return err
			}
			fmt.Fprintf(out, "Agent: %s\n", answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Question for the AI agent about weather/crypto. If omitted, you'll be prompted.")
	return cmd
}

func formatFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}
