package service

import (
	"errors"
	"testing"

	"rankboost/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingWithBrackets(t *testing.T) (*PricingService, *fakePricingStore) {
	t.Helper()
	store := &fakePricingStore{}
	svc := NewPricingService(store)
	_, err := svc.CreateBracket("valorant", "competitive", 0, 1000, 500, 100)
	require.NoError(t, err)
	_, err = svc.CreateBracket("valorant", "competitive", 1000, 2000, 800, 100)
	require.NoError(t, err)
	return svc, store
}

func TestQuoteSingleBracket(t *testing.T) {
	svc, _ := newPricingWithBrackets(t)

	// 300 points at 500 cents per 100.
	total, err := svc.Quote("valorant", "competitive", 200, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), total)
}

func TestQuoteSpansBrackets(t *testing.T) {
	svc, _ := newPricingWithBrackets(t)

	// 200 points in the first bracket, 500 in the second.
	total, err := svc.Quote("valorant", "competitive", 800, 1500)
	require.NoError(t, err)
	assert.Equal(t, int64(200/100*500+500/100*800), total)
}

func TestQuotePartialUnitRounds(t *testing.T) {
	store := &fakePricingStore{}
	svc := NewPricingService(store)
	_, err := svc.CreateBracket("valorant", "competitive", 0, 1000, 333, 100)
	require.NoError(t, err)

	// 50 points is half a unit: round(0.5 * 333) = 167.
	total, err := svc.Quote("valorant", "competitive", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(167), total)
}

func TestQuoteGapInCoverage(t *testing.T) {
	store := &fakePricingStore{}
	svc := NewPricingService(store)
	_, err := svc.CreateBracket("valorant", "competitive", 0, 500, 500, 100)
	require.NoError(t, err)
	_, err = svc.CreateBracket("valorant", "competitive", 700, 1000, 500, 100)
	require.NoError(t, err)

	_, err = svc.Quote("valorant", "competitive", 400, 900)
	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, domain.CodeRangeNotCovered, coded.Code)
}

func TestQuoteInvalidRange(t *testing.T) {
	svc, _ := newPricingWithBrackets(t)

	_, err := svc.Quote("valorant", "competitive", 500, 500)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.Quote("valorant", "competitive", 800, 300)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestCreateBracketRejectsOverlap(t *testing.T) {
	store := &fakePricingStore{}
	svc := NewPricingService(store)
	_, err := svc.CreateBracket("valorant", "competitive", 5000, 10000, 500, 100)
	require.NoError(t, err)

	_, err = svc.CreateBracket("valorant", "competitive", 8000, 12000, 500, 100)
	assert.ErrorIs(t, err, domain.ErrRangeOverlap)

	// Touching at the boundary is fine, ranges are half-open.
	_, err = svc.CreateBracket("valorant", "competitive", 10000, 15000, 500, 100)
	assert.NoError(t, err)

	// Same range for a different mode is independent.
	_, err = svc.CreateBracket("valorant", "unrated", 8000, 12000, 500, 100)
	assert.NoError(t, err)
}

func TestCreateBracketValidation(t *testing.T) {
	svc := NewPricingService(&fakePricingStore{})

	_, err := svc.CreateBracket("valorant", "competitive", 500, 500, 500, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.CreateBracket("valorant", "competitive", 0, 500, 0, 100)
	assert.Error(t, err)

	_, err = svc.CreateBracket("valorant", "competitive", 0, 500, 500, 0)
	assert.Error(t, err)
}

func TestDisabledBracketsIgnoredByQuote(t *testing.T) {
	svc, store := newPricingWithBrackets(t)
	require.NoError(t, svc.DisableBracket(store.brackets[1].ID))

	_, err := svc.Quote("valorant", "competitive", 500, 1500)
	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, domain.CodeRangeNotCovered, coded.Code)
}
