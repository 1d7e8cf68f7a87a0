package models

import (
	"time"

	"gorm.io/datatypes"
)

// Decision is one classification session owned by a user. Quadrant stays nil
// until every prompt of the catalog has been answered, then it is written
// once together with the answers that produced it.
type Decision struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	UserID         uint              `gorm:"index;not null" json:"user_id"`
	User           User              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title          string            `gorm:"type:varchar(255);not null" json:"title"`
	Description    string            `gorm:"type:text" json:"description"`
	CreatedAt      time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	Quadrant       *Quadrant         `gorm:"type:varchar(2);index" json:"quadrant"`
	ClassifiedWith datatypes.JSONMap `json:"classified_with,omitempty"`
}

func (d Decision) String() string {
	return d.Title
}

// QuadrantLabel returns the label of the assigned quadrant, empty when unset.
func (d Decision) QuadrantLabel() string {
	if d.Quadrant == nil {
		return ""
	}
	return d.Quadrant.Label()
}
