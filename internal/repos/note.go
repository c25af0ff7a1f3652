package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/types"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
	// GetByID scopes by owner: a note belonging to another user reads as absent.
	GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Note, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trashed bool, offset, limit int) ([]*types.Note, int64, error)
	ListBySubject(ctx context.Context, tx *gorm.DB, subjectID, userID uuid.UUID) ([]*types.Note, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Note, error)
	Search(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query string) ([]*types.Note, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, fields map[string]interface{}) (*types.Note, error)
	SetTrashed(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, trashed bool) (*types.Note, error)
	Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Note, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trashed bool) (int64, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{db: db, log: baseLog.With("repo", "NoteRepo")}
}

func (r *noteRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	if len(notes) == 0 {
		return []*types.Note{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Note, error) {
	var note types.Note
	err := r.handle(tx).WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trashed bool, offset, limit int) ([]*types.Note, int64, error) {
	var total int64
	base := r.handle(tx).WithContext(ctx).Model(&types.Note{}).
		Where("user_id = ? AND is_trashed = ?", userID, trashed)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := "created_at DESC"
	if trashed {
		order = "updated_at DESC"
	}
	var notes []*types.Note
	err := r.handle(tx).WithContext(ctx).
		Where("user_id = ? AND is_trashed = ?", userID, trashed).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *noteRepo) ListBySubject(ctx context.Context, tx *gorm.DB, subjectID, userID uuid.UUID) ([]*types.Note, error) {
	var notes []*types.Note
	err := r.handle(tx).WithContext(ctx).
		Where("subject_id = ? AND user_id = ? AND is_trashed = ?", subjectID, userID, false).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Note, error) {
	var notes []*types.Note
	err := r.handle(tx).WithContext(ctx).
		Where("user_id = ? AND is_trashed = ?", userID, false).
		Order("updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) Search(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query string) ([]*types.Note, error) {
	pattern := "%" + query + "%"
	var notes []*types.Note
	err := r.handle(tx).WithContext(ctx).
		Where("user_id = ? AND is_trashed = ? AND (title ILIKE ? OR html ILIKE ?)", userID, false, pattern, pattern).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, fields map[string]interface{}) (*types.Note, error) {
	note, err := r.GetByID(ctx, tx, id, userID)
	if err != nil || note == nil {
		return nil, err
	}
	if err := r.handle(tx).WithContext(ctx).Model(note).Updates(fields).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) SetTrashed(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, trashed bool) (*types.Note, error) {
	return r.UpdateFields(ctx, tx, id, userID, map[string]interface{}{"is_trashed": trashed})
}

func (r *noteRepo) Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Note, error) {
	note, err := r.GetByID(ctx, tx, id, userID)
	if err != nil || note == nil {
		return nil, err
	}
	if err := r.handle(tx).WithContext(ctx).Delete(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trashed bool) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).Model(&types.Note{}).
		Where("user_id = ? AND is_trashed = ?", userID, trashed).
		Count(&count).Error
	return count, err
}
