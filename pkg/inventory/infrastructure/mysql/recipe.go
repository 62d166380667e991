package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

const (
	recipeColumns     = `id, product_id, product_name, product_number, created_at, updated_at`
	ingredientColumns = `id, recipe_id, sort_order, product_id, ingredient_name, quantity_needed, unit`
)

type sqlxRecipe struct {
	ID            string    `db:"id"`
	ProductID     string    `db:"product_id"`
	ProductName   string    `db:"product_name"`
	ProductNumber int       `db:"product_number"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type sqlxIngredient struct {
	ID             string          `db:"id"`
	RecipeID       string          `db:"recipe_id"`
	Position       int             `db:"sort_order"`
	ProductID      string          `db:"product_id"`
	Name           string          `db:"ingredient_name"`
	QuantityNeeded decimal.Decimal `db:"quantity_needed"`
	Unit           string          `db:"unit"`
}

func (r *sqlxRecipe) toModel(ingredients []sqlxIngredient) model.Recipe {
	recipe := model.Recipe{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		ProductNumber: r.ProductNumber,
		Ingredients:   make([]model.RecipeIngredient, 0, len(ingredients)),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, ingredient := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			ID:             ingredient.ID,
			ProductID:      ingredient.ProductID,
			Name:           ingredient.Name,
			QuantityNeeded: ingredient.QuantityNeeded,
			Unit:           ingredient.Unit,
		})
	}
	return recipe
}

// recipeRepository writes a recipe and its ingredient rows with several
// statements; callers run mutations inside a unit of work.
type recipeRepository struct {
	db sqlx.ExtContext
}

func (r *recipeRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipe (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.ProductID, recipe.ProductName, recipe.ProductNumber, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if isDuplicateEntry(err) {
		return model.NewValidationError("id", "recipe already exists")
	}
	if err != nil {
		return dependencyError("insert recipe", err)
	}
	return r.insertIngredients(ctx, recipe)
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE recipe
		SET product_id = ?, product_name = ?, product_number = ?, updated_at = ?
		WHERE id = ?`,
		recipe.ProductID, recipe.ProductName, recipe.ProductNumber, recipe.UpdatedAt, recipe.ID,
	)
	if err != nil {
		return dependencyError("update recipe", err)
	}
	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrRecipeNotFound
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_ingredient WHERE recipe_id = ?`, recipe.ID); err != nil {
		return dependencyError("delete recipe ingredients", err)
	}
	return r.insertIngredients(ctx, recipe)
}

func (r *recipeRepository) Find(ctx context.Context, id string) (*model.Recipe, error) {
	var row sqlxRecipe
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+recipeColumns+` FROM recipe WHERE id = ?`, id)
	if isNoRows(err) {
		return nil, model.ErrRecipeNotFound
	}
	if err != nil {
		return nil, dependencyError("select recipe", err)
	}

	var ingredients []sqlxIngredient
	err = sqlx.SelectContext(ctx, r.db, &ingredients,
		`SELECT `+ingredientColumns+` FROM recipe_ingredient WHERE recipe_id = ? ORDER BY sort_order`, id)
	if err != nil {
		return nil, dependencyError("select recipe ingredients", err)
	}

	recipe := row.toModel(ingredients)
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	var rows []sqlxRecipe
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+recipeColumns+` FROM recipe ORDER BY product_name, id`); err != nil {
		return nil, dependencyError("select recipes", err)
	}
	if len(rows) == 0 {
		return []model.Recipe{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(
		`SELECT `+ingredientColumns+` FROM recipe_ingredient WHERE recipe_id IN (?) ORDER BY recipe_id, sort_order`, ids)
	if err != nil {
		return nil, dependencyError("build ingredient query", err)
	}
	var ingredients []sqlxIngredient
	if err := sqlx.SelectContext(ctx, r.db, &ingredients, r.db.Rebind(query), args...); err != nil {
		return nil, dependencyError("select recipe ingredients", err)
	}

	byRecipe := make(map[string][]sqlxIngredient, len(rows))
	for _, ingredient := range ingredients {
		byRecipe[ingredient.RecipeID] = append(byRecipe[ingredient.RecipeID], ingredient)
	}
	recipes := make([]model.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, rows[i].toModel(byRecipe[rows[i].ID]))
	}
	return recipes, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_ingredient WHERE recipe_id = ?`, id); err != nil {
		return dependencyError("delete recipe ingredients", err)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM recipe WHERE id = ?`, id)
	if err != nil {
		return dependencyError("delete recipe", err)
	}
	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrRecipeNotFound
	}
	return nil
}

func (r *recipeRepository) insertIngredients(ctx context.Context, recipe *model.Recipe) error {
	for i, ingredient := range recipe.Ingredients {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO recipe_ingredient (`+ingredientColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ingredient.ID, recipe.ID, i, ingredient.ProductID, ingredient.Name, ingredient.QuantityNeeded, ingredient.Unit,
		)
		if err != nil {
			return dependencyError("insert recipe ingredient", err)
		}
	}
	return nil
}
