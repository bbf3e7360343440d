package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/PowerupGo/config"
	"github.com/dyike/PowerupGo/models"
)

// PromptForChain asks which chain profile to use.
func PromptForChain(current string) (string, error) {
	var chain string
	prompt := &survey.Select{
		Message: "Select the chain:",
		Options: config.ProfileNames(),
		Default: current,
	}

	if err := survey.AskOne(prompt, &chain); err != nil {
		return "", err
	}
	return chain, nil
}

// PromptForMaxPayment asks for the budget in the profile's currency.
func PromptForMaxPayment(profile config.ChainProfile, current string) (string, error) {
	if current == "" {
		current = profile.DefaultMaxPayment
	}

	var payment string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Maximum payment in %s:", profile.CurrencyUnit),
		Help:    fmt.Sprintf("Amount and symbol with %d decimals, e.g. %s", profile.DecimalPlaces, profile.DefaultMaxPayment),
		Default: current,
	}

	err := survey.AskOne(prompt, &payment, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		amount, err := models.ParseAmount(str)
		if err != nil {
			return err
		}
		if amount.Symbol != profile.CurrencyUnit {
			return fmt.Errorf("amount must be in %s", profile.CurrencyUnit)
		}
		if amount.Value.IsNegative() {
			return fmt.Errorf("amount cannot be negative")
		}
		if _, err := amount.WithPrecision(profile.DecimalPlaces); err != nil {
			return err
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(payment), nil
}

// PromptForPayer asks for the paying account when none is configured.
func PromptForPayer() (string, error) {
	var payer string
	prompt := &survey.Input{
		Message: "Payer account:",
		Help:    "Up to 12 characters: a-z, 1-5 and dots",
	}

	err := survey.AskOne(prompt, &payer, survey.WithValidator(survey.Required))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(payer), nil
}

// PromptForConfirmation shows the quote and asks before broadcasting.
func PromptForConfirmation(payer, receiver string, quote *models.PurchaseQuote) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Submit powerup from %s to %s for at most %s?", payer, receiver, quote.MaxPayment),
		Default: false,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}
