package model

import "time"

// Record is one row of the shared record store. Data holds the model's fields.
type Record struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	ModelName string    `gorm:"column:model_name;not null" json:"modelName"`
	Data      JSONMap   `gorm:"column:data;type:jsonb;not null" json:"data"`
	OwnerID   *string   `gorm:"column:owner_id" json:"ownerId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Record) TableName() string {
	return "records"
}

// Owner returns the stored owner id, or "" if the record has none.
func (r *Record) Owner() string {
	if r.OwnerID == nil {
		return ""
	}
	return *r.OwnerID
}
