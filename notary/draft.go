package notary

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// FeeQuote is the nonce and gas price resolved from the node for one call.
type FeeQuote struct {
	Nonce    uint64
	GasPrice *big.Int
}

// Draft is a fully populated, unsigned evidence transaction. It can only be
// built by newDraft, so the signer never sees placeholder fields.
type Draft struct {
	chainID  *big.Int
	from     common.Address
	nonce    uint64
	gasPrice *big.Int
	gasLimit uint64
	payload  EvidencePayload
}

func newDraft(chainID *big.Int, from common.Address, fees FeeQuote, gasLimit uint64, payload EvidencePayload) (*Draft, error) {
	switch {
	case chainID == nil || chainID.Sign() <= 0:
		return nil, errors.New("draft: chain id not resolved")
	case fees.GasPrice == nil || fees.GasPrice.Sign() < 0:
		return nil, errors.New("draft: gas price not resolved")
	case gasLimit == 0:
		return nil, errors.New("draft: gas limit not resolved")
	case from == (common.Address{}):
		return nil, errors.New("draft: sender not set")
	}
	return &Draft{
		chainID:  new(big.Int).Set(chainID),
		from:     from,
		nonce:    fees.Nonce,
		gasPrice: new(big.Int).Set(fees.GasPrice),
		gasLimit: gasLimit,
		payload:  payload,
	}, nil
}

func (d *Draft) ChainID() *big.Int    { return new(big.Int).Set(d.chainID) }
func (d *Draft) From() common.Address { return d.from }

// To is always the sender: evidence transactions are self-addressed.
func (d *Draft) To() common.Address       { return d.from }
func (d *Draft) Value() *big.Int          { return new(big.Int) }
func (d *Draft) Nonce() uint64            { return d.nonce }
func (d *Draft) GasPrice() *big.Int       { return new(big.Int).Set(d.gasPrice) }
func (d *Draft) GasLimit() uint64         { return d.gasLimit }
func (d *Draft) Payload() EvidencePayload { return d.payload }

// DataHex is the data field as sent over JSON-RPC
func (d *Draft) DataHex() string { return hexutil.Encode(d.payload[:]) }

func (d *Draft) unsigned() *types.Transaction {
	to := d.from
	return types.NewTx(&types.LegacyTx{
		Nonce:    d.nonce,
		GasPrice: new(big.Int).Set(d.gasPrice),
		Gas:      d.gasLimit,
		To:       &to,
		Value:    new(big.Int),
		Data:     d.payload.Bytes(),
	})
}

// SignedTransaction is an immutable, one-time-use signed evidence transaction.
type SignedTransaction struct {
	tx   *types.Transaction
	from common.Address
}

func (s *SignedTransaction) Transaction() *types.Transaction { return s.tx }
func (s *SignedTransaction) Hash() common.Hash               { return s.tx.Hash() }
func (s *SignedTransaction) Nonce() uint64                   { return s.tx.Nonce() }
func (s *SignedTransaction) From() common.Address            { return s.from }

// To returns the recipient. For evidence transactions it equals From.
func (s *SignedTransaction) To() common.Address {
	if to := s.tx.To(); to != nil {
		return *to
	}
	return common.Address{}
}

// RawBytes returns the RLP encoding submitted to the node
func (s *SignedTransaction) RawBytes() ([]byte, error) {
	return s.tx.MarshalBinary()
}
