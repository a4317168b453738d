package request

type CreateProductRequest struct {
	Code        string  `json:"code" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description,omitempty"`
	CategoryID  *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Photo       *string `json:"photo,omitempty"`
}

type UpdateProductRequest struct {
	Code        *string  `json:"code,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Photo       *string  `json:"photo,omitempty"`
}

type UpdateStockRequest struct {
	Code  string `json:"code" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}
