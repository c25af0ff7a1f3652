package handlers

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/services"
	"github.com/notemind/notemind-backend/internal/types"
)

type fakeNoteService struct {
	createUser uuid.UUID
	createIn   services.NoteInput
	updateNote uuid.UUID
	updateIn   services.NoteInput
}

func (f *fakeNoteService) CreateNote(ctx context.Context, userID uuid.UUID, in services.NoteInput) (*types.Note, error) {
	f.createUser = userID
	f.createIn = in
	return &types.Note{ID: uuid.New(), UserID: userID, Title: in.Title}, nil
}

func (f *fakeNoteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteService) ListNotes(ctx context.Context, userID uuid.UUID, trashed bool, page, limit int) (*services.NotePage, error) {
	return &services.NotePage{}, nil
}

func (f *fakeNoteService) ListNotesBySubject(ctx context.Context, userID, subjectID uuid.UUID) ([]*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteService) SearchNotes(ctx context.Context, userID uuid.UUID, query string) ([]*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, in services.NoteInput) (*types.Note, error) {
	f.updateNote = noteID
	f.updateIn = in
	return &types.Note{ID: noteID, UserID: userID}, nil
}

func (f *fakeNoteService) TrashNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteService) RestoreNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
	return nil, nil
}

func (f *fakeNoteService) PurgeNote(ctx context.Context, userID, noteID uuid.UUID) error {
	return nil
}

type fakePDFService struct{}

func (fakePDFService) GenerateNotePDF(ctx context.Context, userID, noteID uuid.UUID) (string, error) {
	return "", nil
}

func TestNoteHandler_Create_BindsCamelCaseFields(t *testing.T) {
	userID := uuid.New()
	subjectID := uuid.New()
	notes := &fakeNoteService{}
	h := NewNoteHandler(testLogger(t), notes, fakePDFService{})

	body := `{"title":"Cells","html":"<p>Cells</p>","json":"{}","subjectId":"` + subjectID.String() +
		`","images":["a.png","b.png"],"pdfUrl":"https://storage.example.com/notes_pdfs/cells.pdf"}`
	c, rec := authedJSONContext(t, userID, http.MethodPost, "/api/v1/note/create", body)
	h.Create(c)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if notes.createUser != userID {
		t.Fatalf("expected user %s got %s", userID, notes.createUser)
	}
	in := notes.createIn
	if in.Title != "Cells" || in.HTML != "<p>Cells</p>" || in.JSON != "{}" {
		t.Fatalf("content fields not bound: %+v", in)
	}
	if in.SubjectID != subjectID {
		t.Fatalf("subjectId not bound, got %s", in.SubjectID)
	}
	if !reflect.DeepEqual(in.Images, []string{"a.png", "b.png"}) {
		t.Fatalf("images not bound, got %v", in.Images)
	}
	if in.PDFURL != "https://storage.example.com/notes_pdfs/cells.pdf" {
		t.Fatalf("pdfUrl not bound, got %q", in.PDFURL)
	}
}

func TestNoteHandler_Update_BindsSubjectAndPDFURL(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()
	subjectID := uuid.New()
	notes := &fakeNoteService{}
	h := NewNoteHandler(testLogger(t), notes, fakePDFService{})

	body := `{"subjectId":"` + subjectID.String() + `","pdfUrl":"https://storage.example.com/notes_pdfs/n.pdf"}`
	c, rec := authedJSONContext(t, userID, http.MethodPut, "/api/v1/note/update/"+noteID.String(), body)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: noteID.String()})
	h.Update(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if notes.updateNote != noteID {
		t.Fatalf("expected note %s got %s", noteID, notes.updateNote)
	}
	if notes.updateIn.SubjectID != subjectID {
		t.Fatalf("subjectId not bound, got %s", notes.updateIn.SubjectID)
	}
	if notes.updateIn.PDFURL != "https://storage.example.com/notes_pdfs/n.pdf" {
		t.Fatalf("pdfUrl not bound, got %q", notes.updateIn.PDFURL)
	}
}
