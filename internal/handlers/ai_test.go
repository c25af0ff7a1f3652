package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/requestdata"
	"github.com/notemind/notemind-backend/internal/services"
	"github.com/notemind/notemind-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// authedJSONContext builds a gin context carrying an authenticated user and a
// JSON body, the shape handlers see after the auth middleware has run.
func authedJSONContext(t *testing.T, userID uuid.UUID, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rd := &requestdata.RequestData{UserID: userID, Email: "user@example.com"}
	c.Request = req.WithContext(requestdata.WithRequestData(req.Context(), rd))
	return c, rec
}

type fakeAIService struct {
	autoNoteUser uuid.UUID
	autoNoteIn   services.AutoNoteInput
	autoNoteErr  error
}

func (f *fakeAIService) Summarize(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	return "", nil
}

func (f *fakeAIService) Explain(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	return "", nil
}

func (f *fakeAIService) GenerateQuiz(ctx context.Context, userID, noteID uuid.UUID) (*types.Quiz, error) {
	return nil, nil
}

func (f *fakeAIService) GenerateFlashcards(ctx context.Context, userID, noteID uuid.UUID) ([]*types.Flashcard, error) {
	return nil, nil
}

func (f *fakeAIService) AutoGenerateNote(ctx context.Context, userID uuid.UUID, in services.AutoNoteInput) (*types.Note, error) {
	f.autoNoteUser = userID
	f.autoNoteIn = in
	if f.autoNoteErr != nil {
		return nil, f.autoNoteErr
	}
	return &types.Note{ID: uuid.New(), UserID: userID, Title: in.Title}, nil
}

func TestAIHandler_AutoGenerateNote_BindsCamelCaseFields(t *testing.T) {
	userID := uuid.New()
	subjectID := uuid.New()
	ai := &fakeAIService{}
	h := NewAIHandler(testLogger(t), ai)

	body := `{"title":"Supply and Demand","wordCount":800,"subjectId":"` + subjectID.String() + `","subjectName":"Economics"}`
	c, rec := authedJSONContext(t, userID, http.MethodPost, "/api/v1/ai/auto-note", body)
	h.AutoGenerateNote(c)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if ai.autoNoteUser != userID {
		t.Fatalf("expected user %s got %s", userID, ai.autoNoteUser)
	}
	in := ai.autoNoteIn
	if in.Title != "Supply and Demand" {
		t.Fatalf("title not bound, got %q", in.Title)
	}
	if in.WordCount != 800 {
		t.Fatalf("wordCount not bound, got %d", in.WordCount)
	}
	if in.SubjectID != subjectID {
		t.Fatalf("subjectId not bound, got %s", in.SubjectID)
	}
	if in.SubjectName != "Economics" {
		t.Fatalf("subjectName not bound, got %q", in.SubjectName)
	}
}

func TestAIHandler_AutoGenerateNote_RejectsMalformedBody(t *testing.T) {
	h := NewAIHandler(testLogger(t), &fakeAIService{})
	c, rec := authedJSONContext(t, uuid.New(), http.MethodPost, "/api/v1/ai/auto-note", `{"title":`)
	h.AutoGenerateNote(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
