package models

// Base contains the identity column shared by all tables. IDs are assigned by
// the database and grow monotonically, which makes them a valid tiebreaker for
// rows written within the same clock tick.
type Base struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}
