package txutil

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindGORM mengembalikan *gorm.DB yang mengeksekusi query di atas tx milik service
// (dibuka dengan sql.DB.BeginTx), sehingga repo gorm dan outbox berbagi satu transaksi.
func BindGORM(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{
		NewDB:                  true,
		SkipDefaultTransaction: true,
		Context:                context.Background(),
	})
	session.Statement.ConnPool = tx
	return session
}
