package access

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

func ident(name string) model.UserIdentity {
	return model.UserIdentity{ID: uuid.Must(uuid.NewV4()), Name: name}
}

func testCollection() *model.Collection {
	return &model.Collection{
		ID:          uuid.Must(uuid.NewV4()),
		Author:      "alice",
		Title:       "Groceries",
		ReadAccess:  []string{"bob"},
		WriteAccess: []string{"carol"},
	}
}

var allOps = []Operation{ViewCollection, WriteTodo, DeleteTodo, ManageAccessLists, DeleteCollection}

func TestOwnerPassesEverything(t *testing.T) {
	t.Parallel()
	c := testCollection()
	for _, op := range allOps {
		require.NoError(t, Authorize(ident("alice"), c, op), op.String())
	}
}

func TestReaderCanOnlyView(t *testing.T) {
	t.Parallel()
	c := testCollection()
	bob := ident("bob")

	require.NoError(t, Authorize(bob, c, ViewCollection))
	for _, op := range []Operation{WriteTodo, DeleteTodo, ManageAccessLists, DeleteCollection} {
		require.ErrorIs(t, Authorize(bob, c, op), errs.ErrDenied, op.String())
	}
}

func TestWriterCanViewAndWriteButNotDelete(t *testing.T) {
	t.Parallel()
	c := testCollection()
	carol := ident("carol")

	require.NoError(t, Authorize(carol, c, ViewCollection))
	require.NoError(t, Authorize(carol, c, WriteTodo))
	for _, op := range []Operation{DeleteTodo, ManageAccessLists, DeleteCollection} {
		require.ErrorIs(t, Authorize(carol, c, op), errs.ErrDenied, op.String())
	}
}

func TestStrangerIsDeniedEverything(t *testing.T) {
	t.Parallel()
	c := testCollection()
	for _, op := range allOps {
		require.ErrorIs(t, Authorize(ident("mallory"), c, op), errs.ErrDenied, op.String())
	}
}

func TestOwnerNeedsNoAccessListEntry(t *testing.T) {
	t.Parallel()
	c := testCollection()
	c.ReadAccess = nil
	c.WriteAccess = nil
	for _, op := range allOps {
		require.NoError(t, Authorize(ident("alice"), c, op), op.String())
	}
}
