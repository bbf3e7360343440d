package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dyike/PowerupGo/config"
)

func addBudgetFlags(flags *pflag.FlagSet) {
	flags.String("payer", "", "Account paying for the powerup")
	flags.String("receiver", "", "Account receiving the resources (defaults to payer)")
	flags.String("permission", "", "Permission used to sign (defaults to active)")
	flags.String("max-payment", "", `Maximum payment, e.g. "0.1000 EOS"`)
	flags.Float64("net-ratio", 0, "Share of the budget spent on NET")
	flags.Float64("cpu-ratio", 0, "Share of the budget spent on CPU")
	flags.Uint32("days", 0, "Rental period in days")
}

// applyFlags overrides configuration with the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	str := func(name string, dst *string) {
		if err == nil && flags.Changed(name) {
			*dst, err = flags.GetString(name)
		}
	}
	str("chain", &cfg.Chain)
	str("endpoint", &cfg.Endpoint)
	str("payer", &cfg.Payer)
	str("receiver", &cfg.Receiver)
	str("permission", &cfg.Permission)
	str("max-payment", &cfg.MaxPayment)

	// Setting one ratio implies the other.
	netSet, cpuSet := flags.Changed("net-ratio"), flags.Changed("cpu-ratio")
	if err == nil && netSet {
		cfg.NetRatio, err = flags.GetFloat64("net-ratio")
		if err == nil && !cpuSet {
			cfg.CPURatio = 1 - cfg.NetRatio
		}
	}
	if err == nil && cpuSet {
		cfg.CPURatio, err = flags.GetFloat64("cpu-ratio")
		if err == nil && !netSet {
			cfg.NetRatio = 1 - cfg.CPURatio
		}
	}

	if err == nil && flags.Changed("days") {
		cfg.Days, err = flags.GetUint32("days")
	}
	if err == nil && flags.Changed("debug") {
		cfg.Debug, err = flags.GetBool("debug")
	}
	if err == nil && flags.Changed("allow-empty") {
		cfg.AllowEmpty, err = flags.GetBool("allow-empty")
	}

	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	return nil
}
