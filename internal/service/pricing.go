package service

import (
	"fmt"
	"math"

	"github.com/mtlprog/transquote/internal/domain"
)

// Surcharge decides the rate multiplier for a document type.
// Types in the discount set pay the base rate; everything else pays Tax times it.
type Surcharge struct {
	discountTypes map[string]struct{}
	tax           float64
}

// NewSurcharge creates a Surcharge from the discount-eligible types and the tax multiplier.
func NewSurcharge(discountTypes []string, tax float64) Surcharge {
	set := make(map[string]struct{}, len(discountTypes))
	for _, t := range discountTypes {
		set[t] = struct{}{}
	}
	return Surcharge{discountTypes: set, tax: tax}
}

// Multiplier returns the rate multiplier for a document type.
func (s Surcharge) Multiplier(documentType string) float64 {
	if _, ok := s.discountTypes[documentType]; ok {
		return 1
	}
	return s.tax
}

// PriceQuoter computes job prices from the rate table.
type PriceQuoter struct {
	rates     *domain.RateTable
	surcharge Surcharge
}

// NewPriceQuoter creates a new PriceQuoter.
func NewPriceQuoter(rates *domain.RateTable, surcharge Surcharge) *PriceQuoter {
	return &PriceQuoter{
		rates:     rates,
		surcharge: surcharge,
	}
}

// Quote returns max(round(rate * multiplier * count), minimum) for the language.
func (q *PriceQuoter) Quote(language, documentType string, characterCount int) (int64, error) {
	profile, err := lookupProfile(q.rates, language, characterCount)
	if err != nil {
		return 0, err
	}

	price := math.Round(profile.RatePerChar * q.surcharge.Multiplier(documentType) * float64(characterCount))
	if price < profile.MinimumPrice {
		price = profile.MinimumPrice
	}
	return int64(price), nil
}

// lookupProfile runs the input checks shared by price and deadline computation.
func lookupProfile(rates *domain.RateTable, language string, characterCount int) (domain.LanguageProfile, error) {
	profile, ok := rates.Profile(language)
	if !ok {
		return domain.LanguageProfile{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, language)
	}
	if characterCount <= 0 {
		return domain.LanguageProfile{}, fmt.Errorf("%w: got %d", domain.ErrInvalidCharacterCount, characterCount)
	}
	return profile, nil
}
