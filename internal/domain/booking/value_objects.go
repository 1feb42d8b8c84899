package booking

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	MaxNotesLength       = 1000
	MaxReferenceLength   = 120
	referencePrefix      = "CB-"
	referenceAlphabet    = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	referenceRandomChars = 8
)

// NewReference generates the short code players quote when paying or contacting support.
func NewReference() (string, error) {
	id, err := gonanoid.Generate(referenceAlphabet, referenceRandomChars)
	if err != nil {
		return "", err
	}
	return referencePrefix + id, nil
}

type Fee struct {
	AmountCents int64
	Currency    string
}

func NewFee(amountCents int64, currency string) (Fee, error) {
	if amountCents < 0 {
		return Fee{}, ErrInvalidFee
	}
	c := strings.ToUpper(strings.TrimSpace(currency))
	if len(c) != 3 {
		return Fee{}, ErrInvalidCurrency
	}
	return Fee{AmountCents: amountCents, Currency: c}, nil
}

// normalizeText trims s and maps blank input to nil.
func normalizeText(s *string, maxLen int, tooLong error) (*string, error) {
	if s == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil, nil
	}
	if len(t) > maxLen {
		return nil, tooLong
	}
	return &t, nil
}
