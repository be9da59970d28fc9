package model

// Tag is immutable reference data, bulk-loaded at deploy time.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(32);uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"type:varchar(32);uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }
