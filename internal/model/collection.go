package model

import (
	"time"
)

// Favorite and ShoppingCart are the two user↔recipe membership relations.
// They stay as flat independent tables; the shared toggle logic lives in the
// collection repository/service, keyed by CollectionKind.

type CollectionKind string

const (
	CollectionFavorite     CollectionKind = "favorite"
	CollectionShoppingCart CollectionKind = "shopping_cart"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_favorite_user_recipe,unique;not null"`
	RecipeID  uint      `gorm:"index:idx_favorite_user_recipe,unique;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Favorite) TableName() string { return "favorites" }

type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_cart_user_recipe,unique;not null"`
	RecipeID  uint      `gorm:"index:idx_cart_user_recipe,unique;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (ShoppingCart) TableName() string { return "shopping_cart" }
