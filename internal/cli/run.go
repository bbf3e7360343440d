package cli

import (
	"github.com/spf13/cobra"

	"github.com/dyike/PowerupGo/internal/chain"
	"github.com/dyike/PowerupGo/internal/display"
	"github.com/dyike/PowerupGo/internal/powerup"
	"github.com/dyike/PowerupGo/internal/purchase"
	"github.com/dyike/PowerupGo/models"
)

// chainClient returns the node client used for signing and pushing.
func (a *app) chainClient(endpoint string) purchase.ChainClient {
	if a.newChainClient != nil {
		return a.newChainClient(endpoint)
	}
	return purchase.NewNodeClient(endpoint)
}

// runBuy executes one purchase. With confirm set the user is asked before the
// transaction is broadcast.
func (a *app) runBuy(cmd *cobra.Command, confirm bool) error {
	cfg := a.cfg
	r := display.NewRenderer(cmd.OutOrStdout())

	if err := cfg.ValidateForPurchase(); err != nil {
		return err
	}
	profile, err := cfg.Profile()
	if err != nil {
		return err
	}
	budget, err := cfg.Budget()
	if err != nil {
		return err
	}

	submitter, err := purchase.NewSubmitter(purchase.SubmitterConfig{
		Payer:         cfg.Payer,
		Receiver:      cfg.ReceiverAccount(),
		Permission:    cfg.Permission,
		PrivateKey:    cfg.PrivateKey,
		BlocksBehind:  cfg.BlocksBehind,
		ExpireSeconds: profile.ExpireSeconds,
		Timeout:       cfg.RequestTimeout(),
	}, a.chainClient(profile.Endpoint))
	if err != nil {
		r.Failure(err)
		return err
	}

	session := powerup.NewPowerupSession(
		chain.NewStateReader(profile.Endpoint, cfg.RequestTimeout()),
		submitter,
		budget,
		powerup.WithExplorer(profile.ExplorerURL),
		powerup.WithAllowEmpty(cfg.AllowEmpty),
		powerup.WithConfirm(func(state *models.MarketState, quote *models.PurchaseQuote) (bool, error) {
			r.Quote(quote)
			if !confirm {
				return true, nil
			}
			return PromptForConfirmation(cfg.Payer, cfg.ReceiverAccount(), quote)
		}),
	)

	result, err := session.Execute(cmd.Context())
	if err != nil {
		r.Failure(err)
		return err
	}

	r.Result(result)
	return nil
}

// runQuote prices the budget against the live market without signing.
func (a *app) runQuote(cmd *cobra.Command) error {
	cfg := a.cfg
	r := display.NewRenderer(cmd.OutOrStdout())

	if err := cfg.Validate(); err != nil {
		return err
	}
	profile, err := cfg.Profile()
	if err != nil {
		return err
	}
	budget, err := cfg.Budget()
	if err != nil {
		return err
	}

	session := powerup.NewPowerupSession(chain.NewStateReader(profile.Endpoint, cfg.RequestTimeout()), nil, budget)
	_, quote, err := session.Quote(cmd.Context())
	if err != nil {
		r.Failure(err)
		return err
	}

	r.Quote(quote)
	return nil
}

func (a *app) runState(cmd *cobra.Command) error {
	cfg := a.cfg
	r := display.NewRenderer(cmd.OutOrStdout())

	profile, err := cfg.Profile()
	if err != nil {
		return err
	}

	state, err := chain.NewStateReader(profile.Endpoint, cfg.RequestTimeout()).ReadMarketState(cmd.Context())
	if err != nil {
		r.Failure(err)
		return err
	}

	r.MarketState(profile.Name, state)
	return nil
}

// runInteractive fills in chain, payer and budget through prompts, then buys
// with confirmation.
func (a *app) runInteractive(cmd *cobra.Command) error {
	cfg := a.cfg
	DisplayWelcomeBanner(cmd.OutOrStdout())

	chainName, err := PromptForChain(cfg.Chain)
	if err != nil {
		return err
	}
	if chainName != cfg.Chain {
		cfg.Chain = chainName
		// The payment default belongs to the previous chain's currency.
		cfg.MaxPayment = ""
		cfg.ResolvePrivateKey()
	}

	profile, err := cfg.Profile()
	if err != nil {
		return err
	}

	if cfg.Payer == "" {
		if cfg.Payer, err = PromptForPayer(); err != nil {
			return err
		}
	}

	if cfg.MaxPayment, err = PromptForMaxPayment(profile, cfg.MaxPayment); err != nil {
		return err
	}

	return a.runBuy(cmd, true)
}
