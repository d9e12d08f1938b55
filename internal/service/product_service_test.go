package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	products := []model.Product{
		{ID: "prod_001", Name: "Oxford Shirt", Category: "shirts", BasePrice: 49.5},
		{ID: "prod_002", Name: "Linen Shirt", Category: "shirts", BasePrice: 39.99},
	}

	tests := []struct {
		name       string
		category   string
		mockReturn []model.Product
		mockError  error
		expectErr  bool
	}{
		{name: "All products", category: "", mockReturn: products},
		{name: "By category", category: "shirts", mockReturn: products},
		{name: "Repository error", category: "", mockError: errors.New("db down"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProductRepository)
			svc := NewProductService(repo, zerolog.Nop())

			repo.On("List", ctx, tt.category, 100).Return(tt.mockReturn, tt.mockError)

			got, err := svc.List(ctx, tt.category)

			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to list products")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, "prod_001").Return(&model.Product{ID: "prod_001"}, nil)

		p, err := svc.GetByID(ctx, "prod_001")

		require.NoError(t, err)
		assert.Equal(t, "prod_001", p.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, "nonexistent").Return(nil, nil)

		p, err := svc.GetByID(ctx, "nonexistent")

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, p)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, "prod_001").Return(nil, errors.New("db down"))

		p, err := svc.GetByID(ctx, "prod_001")

		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, p)
	})
}
