package database

import (
	"database/sql"
	"sync"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipes-service/internal/query"
)

// SQLiteDriverName is the go-sqlite3 driver with LOWER replaced by query.Fold.
// The built-in LOWER only folds ASCII.
const SQLiteDriverName = "sqlite3_recipes"

var registerSQLite sync.Once

// SQLiteDialector opens dsn through SQLiteDriverName.
func SQLiteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", foldValue, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}

// foldValue leaves NULL and non-text values alone, like the built-in.
func foldValue(v any) any {
	switch s := v.(type) {
	case string:
		return query.Fold(s)
	case []byte:
		return query.Fold(string(s))
	default:
		return v
	}
}
