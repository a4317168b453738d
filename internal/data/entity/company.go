package entity

import "github.com/google/uuid"

type Company struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Name        *string   `db:"name"`
	Description *string   `db:"description"`
	Location    *string   `db:"location"`
	Phone       *string   `db:"phone"`
	Photo       *string   `db:"photo"`
}
