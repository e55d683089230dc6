package domain_test

import (
	"testing"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengerCounts_AdultFloor(t *testing.T) {
	p := domain.PassengerCounts{Adults: 1, Infants: 1}

	next, err := p.Decrement(domain.Adults)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, p, next, "rejected change must leave counts untouched")
}

func TestPassengerCounts_InfantsNotAboveAdults(t *testing.T) {
	p := domain.PassengerCounts{Adults: 1, Infants: 1}

	next, err := p.Increment(domain.Infants)
	require.Error(t, err)
	assert.Equal(t, 1, next.Infants)

	// Removing the only adult with an infant aboard is rejected too.
	p = domain.PassengerCounts{Adults: 2, Infants: 2}
	_, err = p.Decrement(domain.Adults)
	assert.Error(t, err)
}

func TestPassengerCounts_Ceiling(t *testing.T) {
	p := domain.PassengerCounts{Adults: 5, Children: 4}
	assert.Equal(t, domain.MaxPassengers, p.Total())

	_, err := p.Increment(domain.Children)
	assert.Error(t, err)
	_, err = p.Increment(domain.Adults)
	assert.Error(t, err)

	next, err := p.Decrement(domain.Children)
	require.NoError(t, err)
	assert.Equal(t, 3, next.Children)
}

func TestPassengerCounts_Summary(t *testing.T) {
	assert.Equal(t, "1 Passenger (1 Adult)", domain.DefaultPassengers().Summary())
	assert.Equal(t, "4 Passengers (2 Adults, 1 Child, 1 Infant)",
		domain.PassengerCounts{Adults: 2, Children: 1, Infants: 1}.Summary())
}

func TestPassengerCounts_UnknownKind(t *testing.T) {
	_, err := domain.DefaultPassengers().With("pets", 1)
	assert.Error(t, err)
}
