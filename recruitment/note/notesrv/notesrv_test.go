package notesrv

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/iam/user/usertest"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/candidate/candidatetest"
	"github.com/Abraxas-365/hiresight/recruitment/note"
	"github.com/Abraxas-365/hiresight/recruitment/note/notetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	ctx := context.Background()
	users := usertest.NewMemoryRepository()
	admin := users.Seed("admin", "t1", user.RoleAdmin)
	ana := users.Seed("ana", "t1", user.RoleUser)
	bruno := users.Seed("bruno", "t1", user.RoleUser)

	candidates := candidatetest.NewMemoryRepository(candidate.Candidate{
		ID: "c1", TenantID: "t1", FirstName: "Lia", LastName: "Melo", CreatedAt: time.Now(),
	})
	svc := NewNoteService(notetest.NewMemoryRepository(), candidates, users)

	public, err := svc.CreateNote(ctx, "c1", note.CreateNoteRequest{Content: " Strong Go skills "}, ana.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Strong Go skills", public.Content)
	assert.Equal(t, note.NoteTypeGeneral, public.Type)

	private, err := svc.CreateNote(ctx, "c1", note.CreateNoteRequest{Content: "Salary too high", Type: "interview", IsPrivate: true}, ana.ID, "t1")
	require.NoError(t, err)

	t.Run("private notes only reach their author", func(t *testing.T) {
		forAna, err := svc.ListNotes(ctx, "c1", ana.ID, "t1")
		require.NoError(t, err)
		assert.Len(t, forAna, 2)
		assert.Equal(t, private.ID, forAna[0].ID)

		forBruno, err := svc.ListNotes(ctx, "c1", bruno.ID, "t1")
		require.NoError(t, err)
		require.Len(t, forBruno, 1)
		assert.Equal(t, public.ID, forBruno[0].ID)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, "missing", note.CreateNoteRequest{Content: "x"}, ana.ID, "t1")
		assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
		_, err = svc.ListNotes(ctx, "c1", ana.ID, "t2")
		assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
	})

	t.Run("blank content and bad type", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, "c1", note.CreateNoteRequest{Content: "   "}, ana.ID, "t1")
		assert.True(t, errx.IsCode(err, note.CodeEmptyContent))
		_, err = svc.CreateNote(ctx, "c1", note.CreateNoteRequest{Content: "x", Type: "gossip"}, ana.ID, "t1")
		assert.True(t, errx.IsCode(err, note.CodeInvalidType))
	})

	t.Run("only author or admin edits", func(t *testing.T) {
		content := "Edited"
		_, err := svc.UpdateNote(ctx, public.ID, note.UpdateNoteRequest{Content: &content}, bruno.ID, "t1")
		assert.True(t, errx.IsCode(err, note.CodeNotAuthor))

		updated, err := svc.UpdateNote(ctx, public.ID, note.UpdateNoteRequest{Content: &content}, ana.ID, "t1")
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Content)

		visible := false
		updated, err = svc.UpdateNote(ctx, private.ID, note.UpdateNoteRequest{IsPrivate: &visible}, admin.ID, "t1")
		require.NoError(t, err)
		assert.False(t, updated.IsPrivate)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.DeleteNote(ctx, private.ID, bruno.ID, "t1")
		assert.True(t, errx.IsCode(err, note.CodeNotAuthor))

		require.NoError(t, svc.DeleteNote(ctx, private.ID, ana.ID, "t1"))
		err = svc.DeleteNote(ctx, private.ID, ana.ID, "t1")
		assert.True(t, errx.IsCode(err, note.CodeNoteNotFound))
	})
}
