package entity

import "github.com/google/uuid"

type Product struct {
	Base
	UserID      uuid.UUID  `db:"user_id"`
	CategoryID  *uuid.UUID `db:"category_id"`
	Code        string     `db:"code"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Price       float64    `db:"price"`
	Stock       int        `db:"stock"`
	Photo       *string    `db:"photo"`
}

type Category struct {
	Base
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
