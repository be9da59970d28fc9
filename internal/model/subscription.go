package model

import (
	"time"
)

// Subscription marks user → author. Self-subscription is rejected in the
// service and backed by a check constraint.
type Subscription struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"index:idx_subscription_pair,unique;not null;check:chk_no_self_subscription,user_id <> subscribed_to_id"`
	SubscribedToID uint      `gorm:"index:idx_subscription_pair,unique;not null"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SubscribedTo   User      `gorm:"foreignKey:SubscribedToID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
}

func (Subscription) TableName() string { return "subscriptions" }
