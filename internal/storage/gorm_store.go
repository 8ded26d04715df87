package storage

import (
	"context"
	"errors"

	"queuecare/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, ticket *models.Ticket) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

func (s *GormStore) Update(ctx context.Context, ticket *models.Ticket) error {
	res := s.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"department": ticket.Department,
			"priority":   ticket.Priority,
			"status":     ticket.Status,
			"is_ready":   ticket.IsReady,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Ticket{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *GormStore) List(ctx context.Context, filter ListFilter) ([]models.Ticket, error) {
	query := s.db.WithContext(ctx).Preload("Profile")
	if filter.OwnerID != "" {
		query = query.Where("patient_id = ?", filter.OwnerID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	tickets := []models.Ticket{}
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
