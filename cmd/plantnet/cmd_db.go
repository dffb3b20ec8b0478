package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/service"
	"github.com/plantnet/plantnet-server/internal/infrastructure/config"
	mongodb "github.com/plantnet/plantnet-server/internal/infrastructure/db/mongo"
	"github.com/plantnet/plantnet-server/pkg/logger"
)

// plantnet indexes: create the MongoDB indexes the repositories rely on.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			log.Info().Str("database", db.Name()).Msg("indexes ensured")
			return nil
		})
	},
}

// plantnet grant-role: bootstrap an admin without going through the API.
var grantRoleCmd = &cobra.Command{
	Use:   "grant-role <email> <role>",
	Short: "Set a user's role and mark them verified",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, role := args[0], args[1]
		if !domain.ValidRole(role) {
			return fmt.Errorf("unknown role %q: want customer, seller or admin", role)
		}

		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
			users := service.NewUserService(mongodb.NewUserRepository(db), log)
			if _, err := users.UpdateRole(ctx, email, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", email, role)
			return nil
		})
	},
}

func withDatabase(ctx context.Context, fn func(context.Context, *mongo.Database, zerolog.Logger) error) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return fn(ctx, db, log)
}
