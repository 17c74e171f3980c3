package locking

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate appends a SELECT ... FOR UPDATE row lock to the query.
// Every conflict-checked write path serializes on it, so it must go through
// clause.Locking rather than a raw query option the dialect could drop.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
