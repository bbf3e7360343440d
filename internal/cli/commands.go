package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dyike/PowerupGo/config"
	"github.com/dyike/PowerupGo/internal/purchase"
)

const version = "v1.0.0"

// app carries the configuration resolved by the root command's pre-run.
type app struct {
	configPath string
	cfg        *config.Config

	// Replaced in tests; defaults to purchase.NewNodeClient.
	newChainClient func(endpoint string) purchase.ChainClient
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "powerup",
		Short: "PowerupGo - rent CPU and NET from the powerup market",
		Long: `PowerupGo reads the on-chain powerup market, prices a purchase for your budget
and submits a signed powerup transaction on EOS or WAX.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return a.runInteractive(cmd)
		},
	}

	rootCmd.AddCommand(newBuyCmd(a))
	rootCmd.AddCommand(newQuoteCmd(a))
	rootCmd.AddCommand(newStateCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("chain", "", "Chain profile (eos, wax)")
	rootCmd.PersistentFlags().String("endpoint", "", "Override the profile's API endpoint")
	addBudgetFlags(rootCmd.PersistentFlags())

	return rootCmd
}

// load resolves configuration: defaults, config file, environment, flags.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	// --chain may have changed which key variable applies.
	cfg.ResolvePrivateKey()

	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	a.cfg = cfg
	return nil
}

func newBuyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy CPU and NET with the configured budget",
		Long: `Read the market, compute the fractions the budget buys and submit one powerup
transaction. Example: powerup buy --chain wax --max-payment "0.50000000 WAX" --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return a.runBuy(cmd, !yes)
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Submit without asking for confirmation")
	cmd.Flags().Bool("allow-empty", false, "Submit even when the budget buys nothing")

	return cmd
}

func newQuoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Show what the budget would buy without submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuote(cmd)
		},
	}
}

func newStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current powerup market state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runState(cmd)
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "PowerupGo %s\n", version)
			fmt.Fprintln(cmd.OutOrStdout(), "Powerup resource purchaser for EOS and WAX")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Show, validate or create the PowerupGo configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration for purchasing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cmd, a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, a.configPath, a.cfg)
		},
	})

	return configCmd
}

// showConfig displays the current configuration. The private key is only
// reported as present or missing.
func showConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("📋 Current PowerupGo Configuration"))
	fmt.Fprintln(out, string(data))

	if p, err := cfg.Profile(); err == nil {
		fmt.Fprintf(out, "Endpoint:       %s\n", p.Endpoint)
		fmt.Fprintf(out, "Currency:       %s (%d decimals)\n", p.CurrencyUnit, p.DecimalPlaces)
		fmt.Fprintf(out, "Expiration:     %ds\n", p.ExpireSeconds)
	}
	if cfg.PrivateKey != "" {
		fmt.Fprintln(out, "Private key:    ✅ Configured")
	} else {
		fmt.Fprintln(out, "Private key:    ❌ Not configured")
	}
	return nil
}

// validateConfig checks that everything needed to sign a purchase is present.
func validateConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Validating PowerupGo configuration...")

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(out, errorStyle.Render("❌ "+err.Error()))
		return err
	}
	if err := cfg.ValidateForPurchase(); err != nil {
		fmt.Fprintln(out, warningStyle.Render("⚠️  "+err.Error()))
		fmt.Fprintln(out, "Quotes and market state are available; buying is not.")
		return nil
	}

	budget, _ := cfg.Budget()
	fmt.Fprintln(out, completedStyle.Render("✅ Configuration is ready to buy"))
	fmt.Fprintf(out, "   %s pays up to %s for %s\n", cfg.Payer, budget.MaxPayment, cfg.ReceiverAccount())
	return nil
}

func initConfig(cmd *cobra.Command, path string, cfg *config.Config) error {
	manager, err := config.NewManager(config.WithConfigPath(path), config.WithInitialConfig(cfg))
	if err != nil {
		return err
	}
	if err := manager.Update(*cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration written to %s\n", manager.Path())
	return nil
}
