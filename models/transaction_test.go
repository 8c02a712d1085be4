package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatusTransitions(t *testing.T) {
	assert.True(t, TransactionPending.CanTransition(TransactionSuccess))
	assert.True(t, TransactionPending.CanTransition(TransactionFailed))

	// Terminal states never move, in either direction.
	assert.False(t, TransactionSuccess.CanTransition(TransactionFailed))
	assert.False(t, TransactionSuccess.CanTransition(TransactionPending))
	assert.False(t, TransactionFailed.CanTransition(TransactionSuccess))
	assert.False(t, TransactionFailed.CanTransition(TransactionPending))

	// Self-transitions are not transitions.
	assert.False(t, TransactionPending.CanTransition(TransactionPending))
}

func TestTransactionStatusTerminal(t *testing.T) {
	assert.False(t, TransactionPending.Terminal())
	assert.True(t, TransactionSuccess.Terminal())
	assert.True(t, TransactionFailed.Terminal())
}
