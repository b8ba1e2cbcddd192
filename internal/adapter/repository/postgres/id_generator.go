package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator issues ids for ledger entries and report snapshots.
// ULIDs sort by creation time, so same-day entries keep their insertion
// order when ordered by id.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
