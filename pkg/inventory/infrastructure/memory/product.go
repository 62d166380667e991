package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"inventory/pkg/inventory/domain/model"
)

type productRepository struct {
	access access
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(_ context.Context, product *model.Product) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return model.NewValidationError("id", "product already exists")
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *productRepository) Update(_ context.Context, product *model.Product) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return model.ErrProductNotFound
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *productRepository) Find(_ context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.access.read(func(st *state) error {
		found, ok := st.products[id]
		if !ok {
			return model.ErrProductNotFound
		}
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindMany(_ context.Context, ids []string) (map[string]*model.Product, error) {
	result := make(map[string]*model.Product, len(ids))
	err := r.access.read(func(st *state) error {
		for _, id := range ids {
			if product, ok := st.products[id]; ok {
				result[id] = &product
			}
		}
		return nil
	})
	return result, err
}

func (r *productRepository) List(_ context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.access.read(func(st *state) error {
		products = make([]model.Product, 0, len(st.products))
		for _, product := range st.products {
			products = append(products, product)
		}
		return nil
	})
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].ID < products[j].ID
		}
		return products[i].Name < products[j].Name
	})
	return products, err
}

func (r *productRepository) Delete(_ context.Context, id string) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return model.ErrProductNotFound
		}
		delete(st.products, id)
		return nil
	})
}
