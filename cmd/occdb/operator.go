package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iodb"
	"github.com/gnames/occdb/pkg/db"
)

// connectOperator creates the store operator the configured backend
// calls for and connects it. The caller closes it.
func connectOperator(ctx context.Context) (db.Operator, error) {
	var op db.Operator
	switch cfg.Database.Backend {
	case "postgres":
		op = iodb.NewPgxOperator()
	default:
		op = iodb.NewSqliteOperator()
	}

	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	if cfg.Database.Backend == "postgres" {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	} else {
		gn.Info("Connected to database: <em>%s</em>", cfg.Database.File)
	}
	return op, nil
}
