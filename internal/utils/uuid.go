package utils

import "github.com/google/uuid"

// UUIDGenerator issues record identifiers. UUIDv7 carries a millisecond
// timestamp prefix followed by random bits, which gives the time-ordered
// prefix + random suffix shape with negligible collision probability.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
