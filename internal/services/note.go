package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/normalization"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/types"
)

const (
	defaultNotePageSize = 20
	maxNotePageSize     = 100
)

// NoteInput carries the caller-editable fields of a note.
type NoteInput struct {
	Title     string
	HTML      string
	JSON      string
	SubjectID uuid.UUID
	Images    []string
	PDFURL    string
}

// NotePage is one page of a user's notes plus the total for pagination.
type NotePage struct {
	Notes []*types.Note
	Total int64
	Page  int
	Limit int
}

type NoteService interface {
	CreateNote(ctx context.Context, userID uuid.UUID, in NoteInput) (*types.Note, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error)
	ListNotes(ctx context.Context, userID uuid.UUID, trashed bool, page, limit int) (*NotePage, error)
	ListNotesBySubject(ctx context.Context, userID, subjectID uuid.UUID) ([]*types.Note, error)
	SearchNotes(ctx context.Context, userID uuid.UUID, query string) ([]*types.Note, error)
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, in NoteInput) (*types.Note, error)
	TrashNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error)
	RestoreNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error)
	PurgeNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteService struct {
	db          *gorm.DB
	log         *logger.Logger
	noteRepo    repos.NoteRepo
	subjectRepo repos.SubjectRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.NoteRepo, subjectRepo repos.SubjectRepo) NoteService {
	return &noteService{
		db:          db,
		log:         log.With("service", "NoteService"),
		noteRepo:    noteRepo,
		subjectRepo: subjectRepo,
	}
}

func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, in NoteInput) (*types.Note, error) {
	title := normalization.ParseInputString(in.Title)
	if title == "" {
		return nil, apierr.Validation(fmt.Errorf("A title is required to create a note"))
	}
	if in.SubjectID != uuid.Nil {
		subject, err := s.subjectRepo.GetByID(ctx, nil, in.SubjectID, userID)
		if err != nil {
			return nil, apierr.Persistence(fmt.Errorf("Failed to load subject: %w", err))
		}
		if subject == nil {
			return nil, apierr.NotFound(fmt.Errorf("subject not found"))
		}
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	note := &types.Note{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: in.SubjectID,
		Title:     title,
		HTML:      in.HTML,
		JSON:      in.JSON,
		Images:    datatypes.NewJSONSlice(images),
		PDFURL:    in.PDFURL,
		IsTrashed: false,
	}
	if _, err := s.noteRepo.Create(ctx, nil, []*types.Note{note}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to create note: %w", err))
	}
	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, nil, noteID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load note: %w", err))
	}
	if note == nil {
		return nil, apierr.NotFound(fmt.Errorf("note not found"))
	}
	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, userID uuid.UUID, trashed bool, page, limit int) (*NotePage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultNotePageSize
	}
	if limit > maxNotePageSize {
		limit = maxNotePageSize
	}
	offset := (page - 1) * limit
	notes, total, err := s.noteRepo.ListByUser(ctx, nil, userID, trashed, offset, limit)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list notes: %w", err))
	}
	return &NotePage{Notes: notes, Total: total, Page: page, Limit: limit}, nil
}

func (s *noteService) ListNotesBySubject(ctx context.Context, userID, subjectID uuid.UUID) ([]*types.Note, error) {
	subject, err := s.subjectRepo.GetByID(ctx, nil, subjectID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load subject: %w", err))
	}
	if subject == nil {
		return nil, apierr.NotFound(fmt.Errorf("subject not found"))
	}
	notes, err := s.noteRepo.ListBySubject(ctx, nil, subjectID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list notes for subject: %w", err))
	}
	return notes, nil
}

func (s *noteService) SearchNotes(ctx context.Context, userID uuid.UUID, query string) ([]*types.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*types.Note{}, nil
	}
	notes, err := s.noteRepo.Search(ctx, nil, userID, query)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to search notes: %w", err))
	}
	return notes, nil
}

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, in NoteInput) (*types.Note, error) {
	fields := map[string]interface{}{}
	if title := normalization.ParseInputString(in.Title); title != "" {
		fields["title"] = title
	}
	if in.HTML != "" {
		fields["html"] = in.HTML
	}
	if in.JSON != "" {
		fields["json"] = in.JSON
	}
	if in.SubjectID != uuid.Nil {
		subject, err := s.subjectRepo.GetByID(ctx, nil, in.SubjectID, userID)
		if err != nil {
			return nil, apierr.Persistence(fmt.Errorf("Failed to load subject: %w", err))
		}
		if subject == nil {
			return nil, apierr.NotFound(fmt.Errorf("subject not found"))
		}
		fields["subject_id"] = in.SubjectID
	}
	if in.Images != nil {
		fields["images"] = datatypes.NewJSONSlice(in.Images)
	}
	if in.PDFURL != "" {
		fields["pdf_url"] = in.PDFURL
	}
	if len(fields) == 0 {
		return s.GetNote(ctx, userID, noteID)
	}
	note, err := s.noteRepo.UpdateFields(ctx, nil, noteID, userID, fields)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to update note: %w", err))
	}
	if note == nil {
		return nil, apierr.NotFound(fmt.Errorf("note not found"))
	}
	return note, nil
}

func (s *noteService) TrashNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	return s.setTrashed(ctx, userID, noteID, true)
}

func (s *noteService) RestoreNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	return s.setTrashed(ctx, userID, noteID, false)
}

func (s *noteService) setTrashed(ctx context.Context, userID, noteID uuid.UUID, trashed bool) (*types.Note, error) {
	note, err := s.noteRepo.SetTrashed(ctx, nil, noteID, userID, trashed)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to update note trash state: %w", err))
	}
	if note == nil {
		return nil, apierr.NotFound(fmt.Errorf("note not found"))
	}
	return note, nil
}

func (s *noteService) PurgeNote(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.noteRepo.Delete(ctx, nil, noteID, userID)
	if err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to delete note: %w", err))
	}
	if note == nil {
		return apierr.NotFound(fmt.Errorf("note not found"))
	}
	return nil
}
