package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
)

const duplicateEntryErrorNumber = 1062

type ConnectionConfig struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to MySQL with the options the repositories rely on: parsed
// DATETIME columns in UTC, matched instead of changed rows for UPDATE, and
// multi-statement scripts for migrations.
func Open(ctx context.Context, config ConnectionConfig) (*sqlx.DB, error) {
	dsn, err := mysql.ParseDSN(config.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "parse mysql dsn")
	}
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	dsn.MultiStatements = true
	dsn.Loc = time.UTC

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "create mysql connector")
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxOpenConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return db, nil
}

// Store serves repositories over a MySQL database. Inside Execute every
// product read takes a row lock that is held until the transaction ends.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context, provider service.RepositoryProvider) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return dependencyError("begin transaction", err)
	}

	if err := fn(ctx, &provider{db: tx, lock: true}); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.WithError(rollbackErr).Error("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return dependencyError("commit transaction", err)
	}
	return nil
}

func (s *Store) ProductRepository() model.ProductRepository {
	return &productRepository{db: s.db}
}

func (s *Store) RecipeRepository() model.RecipeRepository {
	return &recipeRepository{db: s.db}
}

func (s *Store) WasteLogRepository() model.WasteLogRepository {
	return &wasteLogRepository{db: s.db}
}

func (s *Store) SaleRepository() model.SaleRepository {
	return &saleRepository{db: s.db}
}

func (s *Store) AuditRepository() model.AuditRepository {
	return &auditRepository{db: s.db}
}

type provider struct {
	db   sqlx.ExtContext
	lock bool
}

func (p *provider) ProductRepository() model.ProductRepository {
	return &productRepository{db: p.db, lock: p.lock}
}

func (p *provider) RecipeRepository() model.RecipeRepository {
	return &recipeRepository{db: p.db}
}

func (p *provider) WasteLogRepository() model.WasteLogRepository {
	return &wasteLogRepository{db: p.db}
}

func (p *provider) SaleRepository() model.SaleRepository {
	return &saleRepository{db: p.db}
}

func (p *provider) AuditRepository() model.AuditRepository {
	return &auditRepository{db: p.db}
}

func dependencyError(op string, err error) error {
	return model.NewDependencyError(op, errors.WithStack(err))
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrorNumber
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func rowsAffected(result sql.Result) (int64, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, dependencyError("read affected rows", err)
	}
	return affected, nil
}

type filterBuilder struct {
	conditions []string
	args       []interface{}
}

func (b *filterBuilder) add(condition string, arg interface{}) {
	b.conditions = append(b.conditions, condition)
	b.args = append(b.args, arg)
}

func (b *filterBuilder) where() string {
	if len(b.conditions) == 0 {
		return ""
	}
	clause := " WHERE " + b.conditions[0]
	for _, condition := range b.conditions[1:] {
		clause += " AND " + condition
	}
	return clause
}

func (b *filterBuilder) limit(n int) string {
	if n <= 0 {
		return ""
	}
	b.args = append(b.args, n)
	return " LIMIT ?"
}
