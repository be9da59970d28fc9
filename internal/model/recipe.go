package model

import (
	"time"
)

const ShortLinkLength = 6

type Recipe struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      uint      `json:"-" gorm:"index;not null"`
	Author        User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name          string    `json:"name" gorm:"type:varchar(256);not null"`
	Image         string    `json:"image" gorm:"type:varchar(512);not null"`
	Text          string    `json:"text" gorm:"type:text;not null"`
	CookingTime   int       `json:"cooking_time" gorm:"not null;check:cooking_time >= 1"`
	ShortLinkHash string    `json:"-" gorm:"type:char(6);index;not null"`
	CreatedAt     time.Time `json:"-" gorm:"index"`
	UpdatedAt     time.Time `json:"-"`

	Tags              []Tag              `json:"-" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	RecipeIngredients []RecipeIngredient `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient joins a recipe to an ingredient with a quantity.
// One row per ingredient per recipe.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey"`
	RecipeID     uint       `gorm:"index:idx_recipe_ingredient,unique;not null"`
	IngredientID uint       `gorm:"index:idx_recipe_ingredient,unique;not null"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Amount       int        `gorm:"not null;check:amount >= 1"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
