package cmd

import (
	"context"

	"github.com/civicdata/legisdb/internal/iodb"
	"github.com/civicdata/legisdb/internal/iofs"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/gnames/gn"
)

// connect opens the database described by the configuration.
func connect(ctx context.Context, dbCfg *config.DatabaseConfig) (db.Operator, error) {
	if dbCfg.Driver == string(db.SQLite) {
		if err := iofs.EnsureParentDir(dbCfg.Path); err != nil {
			return nil, err
		}
	}

	op := iodb.NewOperator()
	if err := op.Connect(ctx, dbCfg); err != nil {
		return nil, err
	}

	if op.Dialect() == db.SQLite {
		gn.Info("Connected to database: <em>%s</em>", dbCfg.Path)
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			dbCfg.User, dbCfg.Host, dbCfg.Port, dbCfg.Database)
	}
	return op, nil
}
