// Package access decides whether an authenticated user may perform an
// operation on a collection. Permissions form three tiers: the owner may do
// everything, write-access members may view and upsert todos, read-access
// members may only view. Deleting todos, managing access lists, and
// deleting the collection itself stay owner-only: a collaborator must not
// be able to destructively remove shared content.
package access

import (
	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
)

// Operation is a permission-gated action on a collection.
type Operation int

const (
	// ViewCollection reads the collection and its todos.
	ViewCollection Operation = iota
	// WriteTodo creates or overwrites a todo entry.
	WriteTodo
	// DeleteTodo removes a todo entry.
	DeleteTodo
	// ManageAccessLists grants read or write access to other users.
	ManageAccessLists
	// DeleteCollection removes the whole collection.
	DeleteCollection
)

// String names the operation for logs and error context.
func (op Operation) String() string {
	switch op {
	case ViewCollection:
		return "view"
	case WriteTodo:
		return "write todo"
	case DeleteTodo:
		return "delete todo"
	case ManageAccessLists:
		return "manage access"
	case DeleteCollection:
		return "delete collection"
	}
	return "unknown"
}

// Authorize returns nil if user may perform op on c, and ErrDenied
// otherwise. The owner passes every check regardless of the access lists.
func Authorize(user model.UserIdentity, c *model.Collection, op Operation) error {
	allowed := false
	switch op {
	case ViewCollection:
		allowed = c.CanRead(user.Name)
	case WriteTodo:
		allowed = c.CanWrite(user.Name)
	case DeleteTodo, ManageAccessLists, DeleteCollection:
		allowed = c.IsOwner(user.Name)
	}
	if !allowed {
		return errs.ErrDenied
	}
	return nil
}
