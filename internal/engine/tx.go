package engine

import (
	"github.com/google/uuid"
)

// TxState is the lifecycle of an optimistic action
type TxState string

const (
	// TxPending: the optimistic mutation is applied and the API call is
	// outstanding
	TxPending TxState = "pending"

	// TxCommitted: the server accepted the action; the optimistic state is
	// trusted as-is
	TxCommitted TxState = "committed"

	// TxReverted: the server rejected the action; the optimistic state was
	// discarded by a scoped reload
	TxReverted TxState = "reverted"
)

// Tx tracks one optimistic action through pending → committed | reverted
type Tx struct {
	ID     string  `json:"id"`
	Action string  `json:"action"`
	State  TxState `json:"state"`
}

func newTx(action string) *Tx {
	return &Tx{
		ID:     uuid.NewString(),
		Action: action,
		State:  TxPending,
	}
}

func (t *Tx) commit() { t.State = TxCommitted }
func (t *Tx) revert() { t.State = TxReverted }
