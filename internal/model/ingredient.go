package model

// Ingredient is immutable reference data. The (name, measurement_unit) pair
// is unique: "flour, g" and "flour, kg" are distinct rows.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"type:varchar(128);index:idx_ingredient_name_unit,unique;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(64);index:idx_ingredient_name_unit,unique;not null"`
}

func (Ingredient) TableName() string { return "ingredients" }
