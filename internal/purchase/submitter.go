package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	eos "github.com/eoscanada/eos-go"
	"github.com/eoscanada/eos-go/ecc"
	"github.com/sirupsen/logrus"

	"github.com/dyike/PowerupGo/consts"
	"github.com/dyike/PowerupGo/models"
)

// ChainClient is the part of the node API the submitter needs. *eos.API and
// *NodeClient satisfy it.
type ChainClient interface {
	GetInfo(ctx context.Context) (*eos.InfoResp, error)
	GetBlockByNum(ctx context.Context, num uint32) (*eos.BlockResp, error)
	PushTransaction(ctx context.Context, tx *eos.PackedTransaction) (*eos.PushTransactionFullResp, error)
}

// errorBodySource is implemented by clients that keep the raw body of the
// last failed node response, such as NodeClient.
type errorBodySource interface {
	ErrorBody() []byte
}

type SubmitterConfig struct {
	Payer      string
	Receiver   string
	Permission string
	PrivateKey string

	// The transaction references the block BlocksBehind below head and
	// expires ExpireSeconds after submission.
	BlocksBehind  uint32
	ExpireSeconds int

	Timeout time.Duration
}

// Submitter signs and broadcasts powerup transactions.
type Submitter struct {
	cfg       SubmitterConfig
	client    ChainClient
	keys      *eos.KeyBag
	publicKey ecc.PublicKey
	log       *logrus.Entry
}

// NewSubmitter parses the signing key up front so that credential problems
// surface before any network call.
func NewSubmitter(cfg SubmitterConfig, client ChainClient) (*Submitter, error) {
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: no private key configured", models.ErrSigningFailed)
	}
	if cfg.Payer == "" {
		return nil, fmt.Errorf("%w: no payer account configured", models.ErrSigningFailed)
	}
	if cfg.Receiver == "" {
		cfg.Receiver = cfg.Payer
	}
	if cfg.Permission == "" {
		cfg.Permission = consts.ActivePermission
	}

	key, err := ecc.NewPrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", models.ErrSigningFailed, err)
	}

	return &Submitter{
		cfg:       cfg,
		client:    client,
		keys:      &eos.KeyBag{Keys: []*ecc.PrivateKey{key}},
		publicKey: key.PublicKey(),
		log: logrus.WithFields(logrus.Fields{
			"component": "submitter",
			"payer":     cfg.Payer,
			"receiver":  cfg.Receiver,
		}),
	}, nil
}

// Submit builds, signs and pushes one powerup transaction for the quote.
func (s *Submitter) Submit(ctx context.Context, quote *models.PurchaseQuote) (*models.TransactionResult, error) {
	action, err := NewPowerUpAction(s.cfg.Payer, s.cfg.Receiver, s.cfg.Permission, quote)
	if err != nil {
		return nil, err
	}

	chainID, refBlockID, err := s.referenceBlock(ctx)
	if err != nil {
		return nil, err
	}

	tx := eos.NewTransaction([]*eos.Action{action}, &eos.TxOptions{
		ChainID:     chainID,
		HeadBlockID: refBlockID,
	})
	tx.SetExpiration(time.Duration(s.cfg.ExpireSeconds) * time.Second)

	signed, err := s.keys.Sign(ctx, eos.NewSignedTransaction(tx), chainID, s.publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSigningFailed, err)
	}
	packed, err := signed.Pack(eos.CompressionNone)
	if err != nil {
		return nil, fmt.Errorf("%w: pack transaction: %v", models.ErrSigningFailed, err)
	}

	s.log.WithFields(logrus.Fields{
		"net_frac":    quote.NetFrac,
		"cpu_frac":    quote.CPUFrac,
		"max_payment": quote.MaxPayment.String(),
	}).Debug("pushing powerup transaction")

	bodies, _ := s.client.(errorBodySource)
	if bodies != nil {
		bodies.ErrorBody()
	}

	pushCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	resp, err := s.client.PushTransaction(pushCtx, packed)
	if err != nil {
		var body []byte
		if bodies != nil {
			body = bodies.ErrorBody()
		}
		return nil, classifyPushError(err, body)
	}

	s.log.WithField("transaction_id", resp.TransactionID).Info("powerup transaction accepted")

	return &models.TransactionResult{
		TransactionID: resp.TransactionID,
		Quote:         quote,
	}, nil
}

// referenceBlock returns the chain id and the id of the block the
// transaction is anchored to.
func (s *Submitter) referenceBlock(ctx context.Context) (eos.Checksum256, eos.Checksum256, error) {
	infoCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	info, err := s.client.GetInfo(infoCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: get_info: %v", models.ErrChainUnavailable, err)
	}

	if s.cfg.BlocksBehind == 0 || info.HeadBlockNum <= s.cfg.BlocksBehind {
		return info.ChainID, info.HeadBlockID, nil
	}

	num := info.HeadBlockNum - s.cfg.BlocksBehind
	blockCtx, cancelBlock := s.withTimeout(ctx)
	defer cancelBlock()
	block, err := s.client.GetBlockByNum(blockCtx, num)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: get_block %d: %v", models.ErrChainUnavailable, num, err)
	}
	return info.ChainID, block.ID, nil
}

func (s *Submitter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// classifyPushError turns any node response into a rejection carrying the
// node's body. Without a raw body the decoded eos.APIError is re-encoded, which
// drops fields it does not model. No response at all is a transport failure.
func classifyPushError(err error, body []byte) error {
	apiErr := nodeAPIError(err)
	message := err.Error()
	if apiErr != nil {
		message = apiErr.Message
	}

	if len(body) > 0 && json.Valid(body) {
		return &models.RejectionError{Message: message, Payload: json.RawMessage(body)}
	}
	if apiErr != nil {
		raw, _ := json.Marshal(apiErr)
		return &models.RejectionError{Message: message, Payload: raw}
	}
	return fmt.Errorf("%w: push_transaction: %v", models.ErrChainUnavailable, err)
}

// nodeAPIError finds the decoded node error; eos-go returns it by value.
func nodeAPIError(err error) *eos.APIError {
	var value eos.APIError
	if errors.As(err, &value) {
		return &value
	}
	var ptr *eos.APIError
	if errors.As(err, &ptr) {
		return ptr
	}
	return nil
}
