package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCashfreeStatus(t *testing.T) {
	assert.Equal(t, StatePaid, mapCashfreeStatus("PAID"))
	assert.Equal(t, StateFailed, mapCashfreeStatus("EXPIRED"))
	assert.Equal(t, StateFailed, mapCashfreeStatus("TERMINATED"))
	assert.Equal(t, StatePending, mapCashfreeStatus("ACTIVE"))
	assert.Equal(t, StatePending, mapCashfreeStatus("SOMETHING_NEW"))
}

func TestMapInstamojoStatus(t *testing.T) {
	assert.Equal(t, StatePaid, mapInstamojoStatus("Credit"))
	assert.Equal(t, StateFailed, mapInstamojoStatus("Failed"))
	assert.Equal(t, StatePending, mapInstamojoStatus("Pending"))
	assert.Equal(t, StatePending, mapInstamojoStatus(""))
}

func TestFactoryRejectsWrongConfigType(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateGateway(context.Background(), ProviderCashfree, struct{}{})
	assert.Error(t, err)

	_, err = factory.CreateGateway(context.Background(), Provider("paypal"), nil)
	assert.Error(t, err)
}
