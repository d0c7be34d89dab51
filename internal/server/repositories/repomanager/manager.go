package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/forohub/internal/dbx"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/responses"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/topics"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can use
// the same repositories against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Topics(db dbx.DBTX) topics.Repository
	Responses(db dbx.DBTX) responses.Repository
}
