package locking

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// The no-double-booking guarantee rests on the court row lock actually
// reaching the SQL. A dry run against a dummy dialect pins the generated
// statement so a locking regression shows up without a live database.
func TestLockForUpdateEmitsRowLock(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run session: %v", err)
	}

	var row struct {
		ID string
	}
	stmt := LockForUpdate(db.Table("courts").Select("id").Where("id = ?", "c1")).
		Find(&row).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("generated SQL %q carries no FOR UPDATE lock", sql)
	}
}
