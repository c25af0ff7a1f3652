package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/types"
)

type aiFixture struct {
	service      AIService
	groq         *fakeGroq
	notes        *fakeNoteRepo
	subjects     *fakeSubjectRepo
	summaries    *fakeSummaryRepo
	explanations *fakeExplanationRepo
	quizzes      *fakeQuizRepo
	flashcards   *fakeFlashcardRepo
}

func newAIFixture(t *testing.T, groq *fakeGroq, notes *fakeNoteRepo, subjects *fakeSubjectRepo) *aiFixture {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	fx := &aiFixture{
		groq:         groq,
		notes:        notes,
		subjects:     subjects,
		summaries:    &fakeSummaryRepo{},
		explanations: &fakeExplanationRepo{},
		quizzes:      newFakeQuizRepo(),
		flashcards:   &fakeFlashcardRepo{},
	}
	fx.service = NewAIService(nil, log, groq, notes, subjects, fx.summaries, fx.explanations, fx.quizzes, fx.flashcards)
	return fx
}

func ownedNote(userID uuid.UUID, html string) *types.Note {
	return &types.Note{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "t",
		HTML:   html,
	}
}

func TestSummarize_ChunksSequentiallyAndPersistsInOrder(t *testing.T) {
	userID := uuid.New()
	// 9001 chars of plain text -> 3 chunks of 4000/4000/1001.
	note := ownedNote(userID, strings.Repeat("x", 9001))
	groq := &fakeGroq{replies: []string{"first", "second", "third"}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	summary, err := fx.service.Summarize(context.Background(), userID, note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groq.prompts) != 3 {
		t.Fatalf("expected 3 completion calls got %d", len(groq.prompts))
	}
	want := "first\nsecond\nthird\n"
	if summary != want {
		t.Fatalf("expected %q got %q", want, summary)
	}
	if len(fx.summaries.created) != 1 || fx.summaries.created[0].SummaryText != want {
		t.Fatalf("persisted summary mismatch: %+v", fx.summaries.created)
	}
	if fx.summaries.created[0].NoteID != note.ID || fx.summaries.created[0].UserID != userID {
		t.Fatalf("summary not linked to note/user")
	}
	for _, opts := range groq.opts {
		if opts.Temperature != 0.5 {
			t.Fatalf("expected temperature 0.5 got %v", opts.Temperature)
		}
	}
}

func TestSummarize_StripsMarkupBeforeChunking(t *testing.T) {
	userID := uuid.New()
	note := ownedNote(userID, "<p>alpha&nbsp;beta</p>")
	groq := &fakeGroq{replies: []string{"ok"}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	if _, err := fx.service.Summarize(context.Background(), userID, note.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groq.prompts) != 1 {
		t.Fatalf("expected 1 call got %d", len(groq.prompts))
	}
	if !strings.Contains(groq.prompts[0], "alpha beta") || strings.Contains(groq.prompts[0], "<p>") {
		t.Fatalf("prompt should carry plain text: %q", groq.prompts[0])
	}
}

func TestSummarize_ForeignNoteIsNotFoundAndNothingRuns(t *testing.T) {
	owner := uuid.New()
	note := ownedNote(owner, "content")
	groq := &fakeGroq{}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	_, err := fx.service.Summarize(context.Background(), uuid.New(), note.ID)
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(groq.prompts) != 0 {
		t.Fatalf("no completion call should be issued, got %d", len(groq.prompts))
	}
	if len(fx.summaries.created) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestExplain_TruncatesLongText(t *testing.T) {
	userID := uuid.New()
	note := ownedNote(userID, strings.Repeat("a", 6000)+"TAIL")
	groq := &fakeGroq{replies: []string{"explained"}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	got, err := fx.service.Explain(context.Background(), userID, note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "explained" {
		t.Fatalf("unexpected explanation %q", got)
	}
	if strings.Contains(groq.prompts[0], "TAIL") {
		t.Fatalf("text beyond the cap should be cut from the prompt")
	}
	if len(fx.explanations.created) != 1 {
		t.Fatalf("expected persisted explanation")
	}
}

func TestGenerateQuiz_PersistsExtractedQuestions(t *testing.T) {
	userID := uuid.New()
	note := ownedNote(userID, "quiz source")
	reply := `{"questions": [
		{"question":"Q1","options":["a","b","c","d"],"correctAnswer":"a"},
		{"question":"Q2","options":["e","f","g","h"],"correctAnswer":"h"}
	]}`
	groq := &fakeGroq{replies: []string{reply}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	quiz, err := fx.service.GenerateQuiz(context.Background(), userID, note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !groq.opts[0].JSONMode {
		t.Fatalf("quiz generation must request strict JSON")
	}
	questions := quiz.Questions.Data()
	if len(questions) != 2 || questions[1].CorrectAnswer != "h" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
	if len(fx.quizzes.created) != 1 {
		t.Fatalf("expected persisted quiz")
	}
}

func TestGenerateQuiz_MalformedReplyPersistsNothing(t *testing.T) {
	userID := uuid.New()
	note := ownedNote(userID, "quiz source")
	groq := &fakeGroq{replies: []string{"not json at all"}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	_, err := fx.service.GenerateQuiz(context.Background(), userID, note.ID)
	if !apierr.Is(err, apierr.CodeMalformedOutput) {
		t.Fatalf("expected malformed_output, got %v", err)
	}
	if len(fx.quizzes.created) != 0 {
		t.Fatalf("no quiz row should exist after a failed extraction")
	}
}

func TestGenerateQuiz_MissingNoteIsNotFound(t *testing.T) {
	groq := &fakeGroq{}
	fx := newAIFixture(t, groq, newFakeNoteRepo(), newFakeSubjectRepo())

	_, err := fx.service.GenerateQuiz(context.Background(), uuid.New(), uuid.New())
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(groq.prompts) != 0 || len(fx.quizzes.created) != 0 {
		t.Fatalf("nothing should run for a missing note")
	}
}

func TestGenerateFlashcards_OneRowPerPair(t *testing.T) {
	userID := uuid.New()
	note := ownedNote(userID, "cards source")
	reply := `Sure: [{"front":"F1","back":"B1"},{"front":"F2","back":"B2"},{"front":"F3","back":"B3"}]`
	groq := &fakeGroq{replies: []string{reply}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(note), newFakeSubjectRepo())

	cards, err := fx.service.GenerateFlashcards(context.Background(), userID, note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 || len(fx.flashcards.created) != 3 {
		t.Fatalf("expected 3 persisted cards, got %d returned %d persisted", len(cards), len(fx.flashcards.created))
	}
	for _, card := range fx.flashcards.created {
		if card.NoteID != note.ID || card.UserID != userID {
			t.Fatalf("card not linked to note/user: %+v", card)
		}
	}
	if fx.flashcards.created[2].Back != "B3" {
		t.Fatalf("card order lost: %+v", fx.flashcards.created)
	}
}

func TestAutoGenerateNote_RejectsMissingFields(t *testing.T) {
	groq := &fakeGroq{}
	fx := newAIFixture(t, groq, newFakeNoteRepo(), newFakeSubjectRepo())

	_, err := fx.service.AutoGenerateNote(context.Background(), uuid.New(), AutoNoteInput{
		Title:     "",
		WordCount: 500,
		SubjectID: uuid.New(),
	})
	if !apierr.Is(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(groq.prompts) != 0 {
		t.Fatalf("no completion call for invalid input")
	}
}

func TestAutoGenerateNote_MissingSubjectIsNotFound(t *testing.T) {
	groq := &fakeGroq{}
	fx := newAIFixture(t, groq, newFakeNoteRepo(), newFakeSubjectRepo())

	_, err := fx.service.AutoGenerateNote(context.Background(), uuid.New(), AutoNoteInput{
		Title:     "Economics",
		WordCount: 500,
		SubjectID: uuid.New(),
	})
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(groq.prompts) != 0 || len(fx.notes.created) != 0 {
		t.Fatalf("nothing should run for a missing subject")
	}
}

func TestAutoGenerateNote_PersistsGeneratedHTML(t *testing.T) {
	userID := uuid.New()
	subject := &types.Subject{ID: uuid.New(), UserID: userID, Name: "Economics"}
	groq := &fakeGroq{replies: []string{"<h2>Generated</h2>"}}
	fx := newAIFixture(t, groq, newFakeNoteRepo(), newFakeSubjectRepo(subject))

	note, err := fx.service.AutoGenerateNote(context.Background(), userID, AutoNoteInput{
		Title:     "Human Needs",
		WordCount: 800,
		SubjectID: subject.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.HTML != "<h2>Generated</h2>" {
		t.Fatalf("unexpected html %q", note.HTML)
	}
	if note.SubjectID != subject.ID || note.UserID != userID {
		t.Fatalf("note not linked to subject/user")
	}
	if groq.opts[0].Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7 got %v", groq.opts[0].Temperature)
	}
	if !strings.Contains(groq.prompts[0], "Human Needs") || !strings.Contains(groq.prompts[0], "Economics") {
		t.Fatalf("prompt should carry title and subject: %q", groq.prompts[0])
	}
	if len(fx.notes.created) != 1 {
		t.Fatalf("expected persisted note")
	}
}
