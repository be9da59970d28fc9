package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

type SubscriptionRepository interface {
	// Create inserts the pair; duplicates surface as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, userID, subscribedToID uint) error
	// Delete removes the pair and reports whether a row existed.
	Delete(ctx context.Context, userID, subscribedToID uint) (bool, error)
	Exists(ctx context.Context, userID, subscribedToID uint) (bool, error)
	// ListAuthors pages through the users the subscriber follows,
	// ordered by username.
	ListAuthors(ctx context.Context, subscriberID uint, offset, limit int) ([]model.User, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, userID, subscribedToID uint) error {
	s := &model.Subscription{UserID: userID, SubscribedToID: subscribedToID}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, subscribedToID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND subscribed_to_id = ?", userID, subscribedToID).
		Delete(&model.Subscription{})
	return res.RowsAffected > 0, res.Error
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, subscribedToID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("user_id = ? AND subscribed_to_id = ?", userID, subscribedToID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *subscriptionRepository) ListAuthors(ctx context.Context, subscriberID uint, offset, limit int) ([]model.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscribed_to_id = users.id").
		Where("subscriptions.user_id = ?", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []model.User
	err := base.
		Order("users.username").
		Offset(offset).Limit(limit).
		Find(&authors).Error
	return authors, total, err
}
