package config

import (
	"fmt"
	"sort"
	"strings"
)

// ChainProfile holds everything that differs between supported chains.
type ChainProfile struct {
	Name                string `json:"name"`
	Endpoint            string `json:"endpoint"`
	CurrencyUnit        string `json:"currency_unit"`
	DecimalPlaces       int32  `json:"decimal_places"`
	ExplorerURLTemplate string `json:"explorer_url_template"`
	ExpireSeconds       int    `json:"expire_seconds"`
	DefaultMaxPayment   string `json:"default_max_payment"`
	PrivateKeyEnv       string `json:"private_key_env"`
}

var profiles = map[string]ChainProfile{
	"eos": {
		Name:                "eos",
		Endpoint:            "https://vaulta.greymass.com",
		CurrencyUnit:        "EOS",
		DecimalPlaces:       4,
		ExplorerURLTemplate: "https://coffe.bloks.io/transaction/%s",
		ExpireSeconds:       120,
		DefaultMaxPayment:   "0.1000 EOS",
		PrivateKeyEnv:       "EOS_PRIVATE_KEY",
	},
	"wax": {
		Name:                "wax",
		Endpoint:            "https://wax.greymass.com",
		CurrencyUnit:        "WAX",
		DecimalPlaces:       8,
		ExplorerURLTemplate: "https://waxblock.io/transaction/%s",
		ExpireSeconds:       30,
		DefaultMaxPayment:   "1.00000000 WAX",
		PrivateKeyEnv:       "WAX_PRIVATE_KEY",
	},
}

// LookupProfile returns the preset for a chain name (case-insensitive).
func LookupProfile(name string) (ChainProfile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ChainProfile{}, fmt.Errorf("unknown chain %q (supported: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExplorerURL builds the block explorer link for a transaction id.
func (p ChainProfile) ExplorerURL(txID string) string {
	if p.ExplorerURLTemplate == "" {
		return ""
	}
	return fmt.Sprintf(p.ExplorerURLTemplate, txID)
}
