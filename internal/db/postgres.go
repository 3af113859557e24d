package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "knowligo", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.OAuthAccount{},
		&domain.Domain{},
		&domain.NodeType{},
		&domain.EdgeType{},
		&domain.Node{},
		&domain.Edge{},
		&domain.Rating{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	return ApplyDeletePolicy(s.db)
}

// Deletion policy: owners and containers cascade, type registries restrict
// while still referenced. AutoMigrate cannot express these rules, so they are
// pinned with raw DDL.
var deletePolicy = []struct {
	table, name, ddl string
}{
	{"oauth_accounts", "fk_oauth_accounts_user_id",
		`FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
	{"domains", "fk_domains_creator_id",
		`FOREIGN KEY ("creator_id") REFERENCES "users"("id") ON DELETE CASCADE`},
	{"node_types", "fk_node_types_domain_id",
		`FOREIGN KEY ("domain_id") REFERENCES "domains"("id") ON DELETE CASCADE`},
	{"edge_types", "fk_edge_types_domain_id",
		`FOREIGN KEY ("domain_id") REFERENCES "domains"("id") ON DELETE CASCADE`},
	{"nodes", "fk_nodes_domain_id",
		`FOREIGN KEY ("domain_id") REFERENCES "domains"("id") ON DELETE CASCADE`},
	// Type references use NO ACTION rather than RESTRICT: the check runs at
	// end of statement, so deleting an in-use type still fails with 23503
	// while a domain cascade that clears the referencing rows first succeeds.
	{"nodes", "fk_nodes_type_id",
		`FOREIGN KEY ("type_id") REFERENCES "node_types"("id") ON DELETE NO ACTION`},
	{"nodes", "fk_nodes_creator_id",
		`FOREIGN KEY ("creator_id") REFERENCES "users"("id") ON DELETE CASCADE`},
	{"edges", "fk_edges_source_id",
		`FOREIGN KEY ("source_id") REFERENCES "nodes"("id") ON DELETE CASCADE`},
	{"edges", "fk_edges_target_id",
		`FOREIGN KEY ("target_id") REFERENCES "nodes"("id") ON DELETE CASCADE`},
	{"edges", "fk_edges_type_id",
		`FOREIGN KEY ("type_id") REFERENCES "edge_types"("id") ON DELETE NO ACTION`},
	{"ratings", "fk_ratings_node_id",
		`FOREIGN KEY ("node_id") REFERENCES "nodes"("id") ON DELETE CASCADE`},
}

// ApplyDeletePolicy installs the CASCADE/RESTRICT foreign keys on an already
// migrated schema.
func ApplyDeletePolicy(g *gorm.DB) error {
	for _, c := range deletePolicy {
		stmt := fmt.Sprintf(
			`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q; ALTER TABLE %q ADD CONSTRAINT %q %s;`,
			c.table, c.name, c.table, c.name, c.ddl,
		)
		if err := g.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
