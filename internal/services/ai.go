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
	summaryChunkSize = 4000
	promptTextLimit  = 6000

	summaryTemperature  = 0.5
	autoNoteTemperature = 0.7
)

// AutoNoteInput carries the caller-provided fields for note generation.
type AutoNoteInput struct {
	Title       string
	WordCount   int
	SubjectID   uuid.UUID
	SubjectName string
}

// AIService is the content-generation pipeline: it loads the source note,
// normalizes and bounds its text, calls the completion endpoint, extracts
// structure where expected, and persists the result. Every operation is a
// single failure domain: the first error aborts the request and nothing is
// persisted for it.
type AIService interface {
	Summarize(ctx context.Context, userID, noteID uuid.UUID) (string, error)
	Explain(ctx context.Context, userID, noteID uuid.UUID) (string, error)
	GenerateQuiz(ctx context.Context, userID, noteID uuid.UUID) (*types.Quiz, error)
	GenerateFlashcards(ctx context.Context, userID, noteID uuid.UUID) ([]*types.Flashcard, error)
	AutoGenerateNote(ctx context.Context, userID uuid.UUID, in AutoNoteInput) (*types.Note, error)
}

type aiService struct {
	db              *gorm.DB
	log             *logger.Logger
	groq            GroqClient
	noteRepo        repos.NoteRepo
	subjectRepo     repos.SubjectRepo
	summaryRepo     repos.SummaryRepo
	explanationRepo repos.ExplanationRepo
	quizRepo        repos.QuizRepo
	flashcardRepo   repos.FlashcardRepo
}

func NewAIService(
	db *gorm.DB,
	log *logger.Logger,
	groq GroqClient,
	noteRepo repos.NoteRepo,
	subjectRepo repos.SubjectRepo,
	summaryRepo repos.SummaryRepo,
	explanationRepo repos.ExplanationRepo,
	quizRepo repos.QuizRepo,
	flashcardRepo repos.FlashcardRepo,
) AIService {
	return &aiService{
		db:              db,
		log:             log.With("service", "AIService"),
		groq:            groq,
		noteRepo:        noteRepo,
		subjectRepo:     subjectRepo,
		summaryRepo:     summaryRepo,
		explanationRepo: explanationRepo,
		quizRepo:        quizRepo,
		flashcardRepo:   flashcardRepo,
	}
}

// loadNoteText fetches an owner-scoped note and derives its plain text. The
// derived text is never persisted; it is recomputed per request.
func (s *aiService) loadNoteText(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, string, error) {
	note, err := s.noteRepo.GetByID(ctx, nil, noteID, userID)
	if err != nil {
		return nil, "", apierr.Persistence(fmt.Errorf("Failed to load note: %w", err))
	}
	if note == nil {
		return nil, "", apierr.NotFound(fmt.Errorf("note not found"))
	}
	return note, normalization.StripHTML(note.HTML), nil
}

func (s *aiService) Summarize(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	note, text, err := s.loadNoteText(ctx, userID, noteID)
	if err != nil {
		return "", err
	}

	// Chunk calls are issued one at a time; concatenation order is chunk
	// order because the loop is sequential.
	chunks := normalization.ChunkText(text, summaryChunkSize)
	var combined strings.Builder
	for _, chunk := range chunks {
		reply, cErr := s.groq.Complete(ctx, "Summarize this text briefly:\n"+chunk, CompletionOptions{
			Temperature: summaryTemperature,
		})
		if cErr != nil {
			return "", cErr
		}
		combined.WriteString(reply)
		combined.WriteString("\n")
	}

	summary := &types.Summary{
		ID:          uuid.New(),
		UserID:      userID,
		NoteID:      note.ID,
		SummaryText: combined.String(),
	}
	if _, err := s.summaryRepo.Create(ctx, nil, []*types.Summary{summary}); err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to save summary: %w", err))
	}
	return summary.SummaryText, nil
}

func (s *aiService) Explain(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	note, text, err := s.loadNoteText(ctx, userID, noteID)
	if err != nil {
		return "", err
	}

	// Long notes are truncated, not summarized-then-explained.
	prompt := "Explain the core concepts of this note in simple terms:\n" +
		normalization.TruncateText(text, promptTextLimit)
	reply, err := s.groq.Complete(ctx, prompt, CompletionOptions{})
	if err != nil {
		return "", err
	}

	explanation := &types.Explanation{
		ID:          uuid.New(),
		UserID:      userID,
		NoteID:      note.ID,
		Explanation: reply,
	}
	if _, err := s.explanationRepo.Create(ctx, nil, []*types.Explanation{explanation}); err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to save explanation: %w", err))
	}
	return explanation.Explanation, nil
}

func (s *aiService) GenerateQuiz(ctx context.Context, userID, noteID uuid.UUID) (*types.Quiz, error) {
	note, text, err := s.loadNoteText(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Create a quiz with 5 MCQs based on this text. Return ONLY a raw JSON array.
Schema: [{"question": "string", "options": ["A", "B", "C", "D"], "correctAnswer": "string"}]
Text: %s`, normalization.TruncateText(text, promptTextLimit))

	reply, err := s.groq.Complete(ctx, prompt, CompletionOptions{JSONMode: true})
	if err != nil {
		return nil, err
	}
	questions, err := ExtractQuizQuestions(reply)
	if err != nil {
		return nil, err
	}

	quiz := &types.Quiz{
		ID:        uuid.New(),
		UserID:    userID,
		NoteID:    note.ID,
		Questions: datatypes.NewJSONType(questions),
	}
	if _, err := s.quizRepo.Create(ctx, nil, []*types.Quiz{quiz}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to save quiz: %w", err))
	}
	return quiz, nil
}

func (s *aiService) GenerateFlashcards(ctx context.Context, userID, noteID uuid.UUID) ([]*types.Flashcard, error) {
	note, text, err := s.loadNoteText(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Create 6 flashcards from this text. Return ONLY a raw JSON array.
Format: [{"front": "Question", "back": "Answer"}]
Text: %s`, normalization.TruncateText(text, promptTextLimit))

	reply, err := s.groq.Complete(ctx, prompt, CompletionOptions{})
	if err != nil {
		return nil, err
	}
	pairs, err := ExtractFlashcards(reply)
	if err != nil {
		return nil, err
	}

	cards := make([]*types.Flashcard, 0, len(pairs))
	for _, pair := range pairs {
		cards = append(cards, &types.Flashcard{
			ID:     uuid.New(),
			UserID: userID,
			NoteID: note.ID,
			Front:  pair.Front,
			Back:   pair.Back,
		})
	}
	if _, err := s.flashcardRepo.Create(ctx, nil, cards); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to save flashcards: %w", err))
	}
	return cards, nil
}

func (s *aiService) AutoGenerateNote(ctx context.Context, userID uuid.UUID, in AutoNoteInput) (*types.Note, error) {
	if strings.TrimSpace(in.Title) == "" || in.WordCount <= 0 || in.SubjectID == uuid.Nil {
		return nil, apierr.Validation(fmt.Errorf("Title, Word Count, and Subject ID are required"))
	}
	subject, err := s.subjectRepo.GetByID(ctx, nil, in.SubjectID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load subject: %w", err))
	}
	if subject == nil {
		return nil, apierr.NotFound(fmt.Errorf("subject not found"))
	}
	subjectName := in.SubjectName
	if subjectName == "" {
		subjectName = subject.Name
	}

	prompt := fmt.Sprintf(`Write a comprehensive educational note for Sri Lankan A/L Grade 12 students.
Title: %s
Subject: %s
Approximate Word Count: %d words

Language Instructions:
- Use SINHALA as the primary language for explanations.
- Mandatory: Include English technical terms in brackets next to their Sinhala terms.
  (Example: මිනිස් අවශ්‍යතා (Human Needs), නිෂ්පාදන සාධක (Factors of Production)).

Structure:
1. Introduction with definitions.
2. Key concepts with bullet points.
3. Detailed explanations.

Format: Professional HTML using <h2>, <p>, <ul>, <li>.
Return ONLY the HTML content.`, in.Title, subjectName, in.WordCount)

	generatedHTML, err := s.groq.Complete(ctx, prompt, CompletionOptions{Temperature: autoNoteTemperature})
	if err != nil {
		return nil, err
	}

	note := &types.Note{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subject.ID,
		Title:     in.Title,
		HTML:      generatedHTML,
		JSON:      fmt.Sprintf(`{"generated":true,"title":%q}`, in.Title),
		Images:    datatypes.NewJSONSlice([]string{}),
		IsTrashed: false,
	}
	if _, err := s.noteRepo.Create(ctx, nil, []*types.Note{note}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to save generated note: %w", err))
	}
	return note, nil
}
