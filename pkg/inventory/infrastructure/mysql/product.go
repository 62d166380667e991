package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

const productColumns = `id, name, category, price, unit, quantity, inventory_a, inventory_b,
	cost_per_unit, image_uri, created_at, updated_at`

type sqlxProduct struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Price       decimal.Decimal `db:"price"`
	Unit        string          `db:"unit"`
	Quantity    decimal.Decimal `db:"quantity"`
	InventoryA  decimal.Decimal `db:"inventory_a"`
	InventoryB  decimal.Decimal `db:"inventory_b"`
	CostPerUnit decimal.Decimal `db:"cost_per_unit"`
	ImageURI    string          `db:"image_uri"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (p *sqlxProduct) toModel() *model.Product {
	return &model.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Unit:        p.Unit,
		Quantity:    p.Quantity,
		InventoryA:  p.InventoryA,
		InventoryB:  p.InventoryB,
		CostPerUnit: p.CostPerUnit,
		ImageURI:    p.ImageURI,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type productRepository struct {
	db   sqlx.ExtContext
	lock bool
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Category, product.Price, product.Unit, product.Quantity,
		product.InventoryA, product.InventoryB, product.CostPerUnit, product.ImageURI,
		product.CreatedAt, product.UpdatedAt,
	)
	if isDuplicateEntry(err) {
		return model.NewValidationError("id", "product already exists")
	}
	if err != nil {
		return dependencyError("insert product", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE product
		SET name = ?, category = ?, price = ?, unit = ?, quantity = ?, inventory_a = ?,
			inventory_b = ?, cost_per_unit = ?, image_uri = ?, updated_at = ?
		WHERE id = ?`,
		product.Name, product.Category, product.Price, product.Unit, product.Quantity,
		product.InventoryA, product.InventoryB, product.CostPerUnit, product.ImageURI,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return dependencyError("update product", err)
	}
	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Find(ctx context.Context, id string) (*model.Product, error) {
	var row sqlxProduct
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+productColumns+` FROM product WHERE id = ?`+r.lockClause(), id)
	if isNoRows(err) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, dependencyError("select product", err)
	}
	return row.toModel(), nil
}

// FindMany locks rows in id order so concurrent units touching the same
// products cannot deadlock each other.
func (r *productRepository) FindMany(ctx context.Context, ids []string) (map[string]*model.Product, error) {
	result := make(map[string]*model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM product WHERE id IN (?) ORDER BY id`+r.lockClause(), ids)
	if err != nil {
		return nil, dependencyError("build product query", err)
	}
	var rows []sqlxProduct
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, dependencyError("select products", err)
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].toModel()
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var rows []sqlxProduct
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+productColumns+` FROM product ORDER BY name, id`); err != nil {
		return nil, dependencyError("select products", err)
	}
	products := make([]model.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].toModel())
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM product WHERE id = ?`, id)
	if err != nil {
		return dependencyError("delete product", err)
	}
	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) lockClause() string {
	if r.lock {
		return " FOR UPDATE"
	}
	return ""
}
