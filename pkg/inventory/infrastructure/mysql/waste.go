package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

const wasteLogColumns = `id, product_id, product_name, category, quantity, reason, recorded_by, waste_date, created_at`

type sqlxWasteLog struct {
	ID          string          `db:"id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Category    string          `db:"category"`
	Quantity    decimal.Decimal `db:"quantity"`
	Reason      string          `db:"reason"`
	RecordedBy  string          `db:"recorded_by"`
	WasteDate   time.Time       `db:"waste_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (w *sqlxWasteLog) toModel() model.WasteLog {
	return model.WasteLog{
		ID:          w.ID,
		ProductID:   w.ProductID,
		ProductName: w.ProductName,
		Category:    w.Category,
		Quantity:    w.Quantity,
		Reason:      w.Reason,
		RecordedBy:  w.RecordedBy,
		WasteDate:   w.WasteDate,
		CreatedAt:   w.CreatedAt,
	}
}

type wasteLogRepository struct {
	db sqlx.ExtContext
}

func (r *wasteLogRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *wasteLogRepository) Create(ctx context.Context, log *model.WasteLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waste_log (`+wasteLogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.ProductID, log.ProductName, log.Category, log.Quantity, log.Reason, log.RecordedBy,
		log.WasteDate, log.CreatedAt,
	)
	if err != nil {
		return dependencyError("insert waste log", err)
	}
	return nil
}

func (r *wasteLogRepository) Find(ctx context.Context, id string) (*model.WasteLog, error) {
	var row sqlxWasteLog
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+wasteLogColumns+` FROM waste_log WHERE id = ?`, id)
	if isNoRows(err) {
		return nil, model.ErrWasteLogNotFound
	}
	if err != nil {
		return nil, dependencyError("select waste log", err)
	}
	log := row.toModel()
	return &log, nil
}

func (r *wasteLogRepository) List(ctx context.Context, filter model.WasteFilter) ([]model.WasteLog, error) {
	builder := filterBuilder{}
	if filter.ProductID != "" {
		builder.add("product_id = ?", filter.ProductID)
	}
	if filter.DateFrom != nil {
		builder.add("waste_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		builder.add("waste_date <= ?", *filter.DateTo)
	}
	query := `SELECT ` + wasteLogColumns + ` FROM waste_log` + builder.where() +
		` ORDER BY waste_date DESC` + builder.limit(filter.Limit)

	var rows []sqlxWasteLog
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, builder.args...); err != nil {
		return nil, dependencyError("select waste logs", err)
	}
	logs := make([]model.WasteLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].toModel())
	}
	return logs, nil
}
