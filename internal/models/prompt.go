package models

import (
	"fmt"
	"time"
)

// Prompt is one yes/no question of the catalog. The catalog is presented in
// ascending Order.
type Prompt struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Slug      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Order     uint      `gorm:"column:sort_order;not null;index" json:"order"`
	Text      string    `gorm:"type:varchar(255);not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Prompt) String() string {
	return fmt.Sprintf("%d. %s", p.Order, p.Text)
}
