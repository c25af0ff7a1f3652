package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/types"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Subject, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subject, error)
	UpdateName(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, name string) (*types.Subject, error)
	Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Subject, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

func (r *subjectRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error) {
	if len(subjects) == 0 {
		return []*types.Subject{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Subject, error) {
	var subject types.Subject
	err := r.handle(tx).WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subject, error) {
	var subjects []*types.Subject
	err := r.handle(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) UpdateName(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, name string) (*types.Subject, error) {
	subject, err := r.GetByID(ctx, tx, id, userID)
	if err != nil || subject == nil {
		return nil, err
	}
	if err := r.handle(tx).WithContext(ctx).Model(subject).Update("name", name).Error; err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *subjectRepo) Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Subject, error) {
	subject, err := r.GetByID(ctx, tx, id, userID)
	if err != nil || subject == nil {
		return nil, err
	}
	if err := r.handle(tx).WithContext(ctx).Delete(subject).Error; err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *subjectRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).Model(&types.Subject{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
