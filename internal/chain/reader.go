package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

// StateReader reads the powerup market singleton through the chain's
// table-query API.
type StateReader struct {
	client   *resty.Client
	endpoint string
	log      *logrus.Entry
}

// NewStateReader creates a reader for a node endpoint such as
// https://wax.greymass.com.
func NewStateReader(endpoint string, timeout time.Duration) *StateReader {
	endpoint = strings.TrimRight(endpoint, "/")

	client := resty.New()
	client.SetBaseURL(endpoint)
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &StateReader{
		client:   client,
		endpoint: endpoint,
		log:      logrus.WithField("component", "state_reader"),
	}
}

type tableRowsRequest struct {
	Code      string `json:"code"`
	Table     string `json:"table"`
	Scope     string `json:"scope"`
	Limit     int    `json:"limit"`
	JSON      bool   `json:"json"`
	Reverse   bool   `json:"reverse"`
	ShowPayer bool   `json:"show_payer"`
}

type tableRowsResponse struct {
	Rows []json.RawMessage `json:"rows"`
	More bool              `json:"more"`
}

// powup.state row as served by nodeos. 64-bit integers may be rendered as
// strings; decimal.Decimal accepts both forms.
type stateRow struct {
	Net           resourceRow `json:"net"`
	CPU           resourceRow `json:"cpu"`
	PowerupDays   uint32      `json:"powerup_days"`
	MinPowerupFee string      `json:"min_powerup_fee"`
}

type resourceRow struct {
	Weight              decimal.Decimal `json:"weight"`
	Exponent            decimal.Decimal `json:"exponent"`
	DecaySecs           uint32          `json:"decay_secs"`
	MinPrice            string          `json:"min_price"`
	MaxPrice            string          `json:"max_price"`
	Utilization         decimal.Decimal `json:"utilization"`
	AdjustedUtilization decimal.Decimal `json:"adjusted_utilization"`
}

// ReadMarketState fetches the first (and only) row of the market state table.
// A single attempt is made.
func (r *StateReader) ReadMarketState(ctx context.Context) (*models.MarketState, error) {
	req := tableRowsRequest{
		Code:  consts.SystemContract,
		Table: consts.PowerupStateTable,
		Scope: "",
		Limit: 1,
		JSON:  true,
	}

	r.log.WithFields(logrus.Fields{
		"endpoint": r.endpoint,
		"table":    req.Table,
	}).Debug("reading market state")

	var out tableRowsResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/chain/get_table_rows")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMarketUnavailable, r.endpoint, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %d: %s", models.ErrMarketUnavailable, r.endpoint, resp.StatusCode(), resp.String())
	}

	if len(out.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s on %s", models.ErrMarketStateEmpty, consts.PowerupStateTable, r.endpoint)
	}

	state, err := decodeState(out.Rows[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMarketUnavailable, err)
	}

	r.log.WithFields(logrus.Fields{
		"net_utilization": state.Net.AdjustedUtilization.String(),
		"cpu_utilization": state.CPU.AdjustedUtilization.String(),
	}).Debug("market state loaded")

	return state, nil
}

func decodeState(raw json.RawMessage) (*models.MarketState, error) {
	var row stateRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", consts.PowerupStateTable, err)
	}

	net, err := row.Net.toModel()
	if err != nil {
		return nil, fmt.Errorf("net: %w", err)
	}
	cpu, err := row.CPU.toModel()
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	state := &models.MarketState{
		Net:         net,
		CPU:         cpu,
		PowerupDays: row.PowerupDays,
	}
	if row.MinPowerupFee != "" {
		if state.MinPowerupFee, err = models.ParseAmount(row.MinPowerupFee); err != nil {
			return nil, fmt.Errorf("min_powerup_fee: %w", err)
		}
	}
	return state, nil
}

func (r resourceRow) toModel() (models.ResourceState, error) {
	minPrice, err := models.ParseAmount(r.MinPrice)
	if err != nil {
		return models.ResourceState{}, fmt.Errorf("min_price: %w", err)
	}
	maxPrice, err := models.ParseAmount(r.MaxPrice)
	if err != nil {
		return models.ResourceState{}, fmt.Errorf("max_price: %w", err)
	}

	return models.ResourceState{
		MinPrice:            minPrice,
		MaxPrice:            maxPrice,
		AdjustedUtilization: r.AdjustedUtilization,
		Utilization:         r.Utilization,
		Weight:              r.Weight,
		Exponent:            r.Exponent,
		DecaySecs:           r.DecaySecs,
	}, nil
}
