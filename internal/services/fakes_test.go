package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/types"
)

// In-memory fakes for the persistence and completion boundaries. Only the
// behavior the pipeline touches is implemented.

type fakeGroq struct {
	prompts []string
	opts    []CompletionOptions
	replies []string
	err     error
}

func (f *fakeGroq) Complete(_ context.Context, prompt string, opts CompletionOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "reply", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

type fakeNoteRepo struct {
	notes   map[uuid.UUID]*types.Note
	created []*types.Note
}

func newFakeNoteRepo(notes ...*types.Note) *fakeNoteRepo {
	m := make(map[uuid.UUID]*types.Note, len(notes))
	for _, n := range notes {
		m[n.ID] = n
	}
	return &fakeNoteRepo{notes: m}
}

func (f *fakeNoteRepo) Create(_ context.Context, _ *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	f.created = append(f.created, notes...)
	for _, n := range notes {
		f.notes[n.ID] = n
	}
	return notes, nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, _ *gorm.DB, id, userID uuid.UUID) (*types.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, nil
	}
	return n, nil
}

func (f *fakeNoteRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID, bool, int, int) ([]*types.Note, int64, error) {
	return nil, 0, nil
}

func (f *fakeNoteRepo) ListBySubject(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) ([]*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) ListRecent(context.Context, *gorm.DB, uuid.UUID, int) ([]*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) Search(context.Context, *gorm.DB, uuid.UUID, string) ([]*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) UpdateFields(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, map[string]interface{}) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) SetTrashed(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, bool) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) Delete(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteRepo) CountByUser(context.Context, *gorm.DB, uuid.UUID, bool) (int64, error) {
	return 0, nil
}

type fakeSubjectRepo struct {
	subjects map[uuid.UUID]*types.Subject
}

func newFakeSubjectRepo(subjects ...*types.Subject) *fakeSubjectRepo {
	m := make(map[uuid.UUID]*types.Subject, len(subjects))
	for _, s := range subjects {
		m[s.ID] = s
	}
	return &fakeSubjectRepo{subjects: m}
}

func (f *fakeSubjectRepo) Create(_ context.Context, _ *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error) {
	for _, s := range subjects {
		f.subjects[s.ID] = s
	}
	return subjects, nil
}

func (f *fakeSubjectRepo) GetByID(_ context.Context, _ *gorm.DB, id, userID uuid.UUID) (*types.Subject, error) {
	s, ok := f.subjects[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSubjectRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID) ([]*types.Subject, error) {
	return nil, nil
}

func (f *fakeSubjectRepo) UpdateName(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, string) (*types.Subject, error) {
	return nil, nil
}

func (f *fakeSubjectRepo) Delete(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) (*types.Subject, error) {
	return nil, nil
}

func (f *fakeSubjectRepo) CountByUser(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeSummaryRepo struct {
	created []*types.Summary
}

func (f *fakeSummaryRepo) Create(_ context.Context, _ *gorm.DB, summaries []*types.Summary) ([]*types.Summary, error) {
	f.created = append(f.created, summaries...)
	return summaries, nil
}

func (f *fakeSummaryRepo) GetLatestByNoteID(context.Context, *gorm.DB, uuid.UUID) (*types.Summary, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

func (f *fakeSummaryRepo) CountByUser(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeExplanationRepo struct {
	created []*types.Explanation
}

func (f *fakeExplanationRepo) Create(_ context.Context, _ *gorm.DB, explanations []*types.Explanation) ([]*types.Explanation, error) {
	f.created = append(f.created, explanations...)
	return explanations, nil
}

func (f *fakeExplanationRepo) GetLatestByNoteID(context.Context, *gorm.DB, uuid.UUID) (*types.Explanation, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

type fakeQuizRepo struct {
	quizzes map[uuid.UUID]*types.Quiz
	created []*types.Quiz
}

func newFakeQuizRepo(quizzes ...*types.Quiz) *fakeQuizRepo {
	m := make(map[uuid.UUID]*types.Quiz, len(quizzes))
	for _, q := range quizzes {
		m[q.ID] = q
	}
	return &fakeQuizRepo{quizzes: m}
}

func (f *fakeQuizRepo) Create(_ context.Context, _ *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	f.created = append(f.created, quizzes...)
	for _, q := range quizzes {
		f.quizzes[q.ID] = q
	}
	return quizzes, nil
}

func (f *fakeQuizRepo) GetByID(_ context.Context, _ *gorm.DB, id, userID uuid.UUID) (*types.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok || q.UserID != userID {
		return nil, nil
	}
	return q, nil
}

func (f *fakeQuizRepo) GetLatestByNoteID(context.Context, *gorm.DB, uuid.UUID) (*types.Quiz, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

func (f *fakeQuizRepo) CountByUser(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeFlashcardRepo struct {
	created []*types.Flashcard
}

func (f *fakeFlashcardRepo) Create(_ context.Context, _ *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
	f.created = append(f.created, cards...)
	return cards, nil
}

func (f *fakeFlashcardRepo) ListByNoteID(context.Context, *gorm.DB, uuid.UUID) ([]*types.Flashcard, error) {
	return f.created, nil
}

func (f *fakeFlashcardRepo) CountByUser(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeQuizAttemptRepo struct {
	created []*types.QuizAttempt
}

func (f *fakeQuizAttemptRepo) Create(_ context.Context, _ *gorm.DB, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error) {
	f.created = append(f.created, attempts...)
	return attempts, nil
}

func (f *fakeQuizAttemptRepo) ListByQuizID(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) ([]*types.QuizAttempt, error) {
	return f.created, nil
}
