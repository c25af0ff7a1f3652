package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/types"
)

// Repos for AI-generated records. All of them are append-only from the
// pipeline's perspective: rows are created per generation request, never
// updated in place.

type SummaryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, summaries []*types.Summary) ([]*types.Summary, error)
	GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Summary, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type summaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSummaryRepo(db *gorm.DB, baseLog *logger.Logger) SummaryRepo {
	return &summaryRepo{db: db, log: baseLog.With("repo", "SummaryRepo")}
}

func (r *summaryRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *summaryRepo) Create(ctx context.Context, tx *gorm.DB, summaries []*types.Summary) ([]*types.Summary, error) {
	if len(summaries) == 0 {
		return []*types.Summary{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *summaryRepo) GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Summary, error) {
	var summary types.Summary
	err := r.handle(tx).WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).Model(&types.Summary{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type ExplanationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, explanations []*types.Explanation) ([]*types.Explanation, error)
	GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Explanation, error)
}

type explanationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExplanationRepo(db *gorm.DB, baseLog *logger.Logger) ExplanationRepo {
	return &explanationRepo{db: db, log: baseLog.With("repo", "ExplanationRepo")}
}

func (r *explanationRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *explanationRepo) Create(ctx context.Context, tx *gorm.DB, explanations []*types.Explanation) ([]*types.Explanation, error) {
	if len(explanations) == 0 {
		return []*types.Explanation{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&explanations).Error; err != nil {
		return nil, err
	}
	return explanations, nil
}

func (r *explanationRepo) GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Explanation, error) {
	var explanation types.Explanation
	err := r.handle(tx).WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		First(&explanation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &explanation, nil
}

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Quiz, error)
	GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Quiz, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Quiz, error) {
	var quiz types.Quiz
	err := r.handle(tx).WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetLatestByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Quiz, error) {
	var quiz types.Quiz
	err := r.handle(tx).WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).Model(&types.Quiz{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type FlashcardRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error)
	ListByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) ([]*types.Flashcard, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type flashcardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlashcardRepo(db *gorm.DB, baseLog *logger.Logger) FlashcardRepo {
	return &flashcardRepo{db: db, log: baseLog.With("repo", "FlashcardRepo")}
}

func (r *flashcardRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *flashcardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
	if len(cards) == 0 {
		return []*types.Flashcard{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *flashcardRepo) ListByNoteID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) ([]*types.Flashcard, error) {
	var cards []*types.Flashcard
	err := r.handle(tx).WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *flashcardRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).Model(&types.Flashcard{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error)
	ListByQuizID(ctx context.Context, tx *gorm.DB, quizID, userID uuid.UUID) ([]*types.QuizAttempt, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return &quizAttemptRepo{db: db, log: baseLog.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error) {
	if len(attempts) == 0 {
		return []*types.QuizAttempt{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *quizAttemptRepo) ListByQuizID(ctx context.Context, tx *gorm.DB, quizID, userID uuid.UUID) ([]*types.QuizAttempt, error) {
	var attempts []*types.QuizAttempt
	err := r.handle(tx).WithContext(ctx).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
