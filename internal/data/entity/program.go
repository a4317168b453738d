package entity

type Program struct {
	BaseSimple
	Duration int    `db:"duration"`
	Mode     string `db:"mode"`
	Active   bool   `db:"active"`
}
