package cli

import (
	"context"
	"fmt"
)

type MigrateCmd struct {
	Direction string `arg:"" optional:"" default:"up" enum:"up,down,status" help:"up, down or status."`
}

func (c *MigrateCmd) Run(g *Globals) error {
	ctx := context.Background()
	logger := g.logger()

	db, err := g.open(ctx, false)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, c.Direction); err != nil {
		return err
	}
	logger.Info("migrate finished", "direction", c.Direction, "dialect", db.Dialect)
	return nil
}
