package response

import (
	"time"

	"tic-marketplace/internal/data/entity"
)

type ProductResponse struct {
	ProductID   string    `json:"product_id"`
	UserID      string    `json:"user_id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Photo       *string   `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryResponse struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	resp := ProductResponse{
		ProductID:   product.ID.String(),
		UserID:      product.UserID.String(),
		Code:        product.Code,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Photo:       product.Photo,
		CreatedAt:   product.CreatedAt,
	}

	if product.CategoryID != nil {
		id := product.CategoryID.String()
		resp.CategoryID = &id
	}

	return resp
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
	}
}
