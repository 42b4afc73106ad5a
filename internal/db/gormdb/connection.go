package gormdb

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/whatsapp-notifier/internal/db"
)

type GormDB struct {
	conn *gorm.DB
}

// New opens a Postgres connection.
func New(dsn string) (*GormDB, error) {
	return Open(postgres.Open(dsn))
}

// Open connects through any GORM dialector (sqlite is used in tests).
func Open(dialector gorm.Dialector) (*GormDB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
