package purchase

import (
	"fmt"

	eos "github.com/eoscanada/eos-go"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

// PowerUp is the payload of the system contract's powerup action. Field order
// matches the contract ABI.
type PowerUp struct {
	Payer      eos.AccountName `json:"payer"`
	Receiver   eos.AccountName `json:"receiver"`
	Days       uint32          `json:"days"`
	NetFrac    int64           `json:"net_frac"`
	CPUFrac    int64           `json:"cpu_frac"`
	MaxPayment eos.Asset       `json:"max_payment"`
}

// NewPowerUpAction builds the single action of a purchase.
func NewPowerUpAction(payer, receiver, permission string, quote *models.PurchaseQuote) (*eos.Action, error) {
	if quote == nil {
		return nil, fmt.Errorf("%w: no quote", models.ErrInvalidBudget)
	}
	maxPayment, err := eos.NewAssetFromString(quote.MaxPayment.String())
	if err != nil {
		return nil, fmt.Errorf("%w: max payment %s: %v", models.ErrInvalidBudget, quote.MaxPayment, err)
	}

	return &eos.Action{
		Account: eos.AN(consts.SystemContract),
		Name:    eos.ActN(consts.PowerupAction),
		Authorization: []eos.PermissionLevel{
			{Actor: eos.AN(payer), Permission: eos.PN(permission)},
		},
		ActionData: eos.NewActionData(PowerUp{
			Payer:      eos.AN(payer),
			Receiver:   eos.AN(receiver),
			Days:       quote.Days,
			NetFrac:    quote.NetFrac,
			CPUFrac:    quote.CPUFrac,
			MaxPayment: maxPayment,
		}),
	}, nil
}
