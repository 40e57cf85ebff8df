package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides the shared foundation the domain repositories embed.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Rebase returns a Base bound to the given transaction. A nil transaction
// keeps the current connection, so repositories can call it unconditionally.
func (b Base) Rebase(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}
