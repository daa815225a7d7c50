package postgres

import (
	"context"
	"fmt"

	"makanApa/domain"

	"gorm.io/gorm"
)

type MealHistoryRepository struct {
	DB *gorm.DB
}

func NewMealHistoryRepository(db *gorm.DB) *MealHistoryRepository {
	return &MealHistoryRepository{
		DB: db,
	}
}

func (r *MealHistoryRepository) FindAll(ctx context.Context) ([]domain.MealHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.MealHistory
	err := r.DB.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find meal history: %w", err)
	}

	return rows, nil
}
