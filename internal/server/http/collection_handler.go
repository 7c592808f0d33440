package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/model"
	"github.com/BharadwajRachakonda/todo-backend/internal/service"
	"github.com/BharadwajRachakonda/todo-backend/internal/validate"
)

type registerCollectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type collectionLoginRequest struct {
	Title    string `json:"title" binding:"required"`
	Password string `json:"password" binding:"required"`
	Author   string `json:"author" binding:"required"`
}

type addTodoRequest struct {
	TodoTitle string          `json:"todo_title" binding:"required"`
	Value     json.RawMessage `json:"value" binding:"required"`
}

type deleteTodoRequest struct {
	TodoTitle string `json:"todo_title" binding:"required"`
}

type updateAccessRequest struct {
	ReadAccess  string `json:"read_access"`
	WriteAccess string `json:"write_access"`
}

type deleteCollectionRequest struct {
	Title string `json:"title" binding:"required"`
}

// CollectionHandler handles collection lifecycle, todos, and access lists.
type CollectionHandler struct {
	colls service.CollectionService
}

// NewCollectionHandler returns a new CollectionHandler.
func NewCollectionHandler(colls service.CollectionService) *CollectionHandler {
	return &CollectionHandler{colls: colls}
}

// FetchAll lists the authenticated user's own collections.
func (h *CollectionHandler) FetchAll(c *gin.Context) {
	ident, ok := UserFromContext(c)
	if !ok {
		respondError(c, errs.ErrUnauthenticated)
		return
	}
	list, err := h.colls.List(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Add registers a new collection and returns a collection token.
func (h *CollectionHandler) Add(c *gin.Context) {
	ident, ok := UserFromContext(c)
	if !ok {
		respondError(c, errs.ErrUnauthenticated)
		return
	}
	var req registerCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("title", req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.StrongPassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.colls.Register(c.Request.Context(), ident, req.Title, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "collection already exists"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"authToken": tok})
}

// Login authenticates against a collection password and returns a
// collection token.
func (h *CollectionHandler) Login(c *gin.Context) {
	ident, ok := UserFromContext(c)
	if !ok {
		respondError(c, errs.ErrUnauthenticated)
		return
	}
	var req collectionLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("author", req.Author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("title", req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.colls.LoginWithIP(c.Request.Context(), ident, req.Author, req.Title, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authToken": tok})
}

// Get returns the collection targeted by the collection token, if the user
// may view it.
func (h *CollectionHandler) Get(c *gin.Context) {
	user, coll, ok := bothIdentities(c)
	if !ok {
		return
	}
	view, err := h.colls.Get(c.Request.Context(), user, coll)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddTodo creates or overwrites one todo entry.
func (h *CollectionHandler) AddTodo(c *gin.Context) {
	user, coll, ok := bothIdentities(c)
	if !ok {
		return
	}
	var req addTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("todo_title", req.TodoTitle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Value) == 0 || string(req.Value) == `""` || string(req.Value) == "null" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value can't be empty"})
		return
	}

	view, err := h.colls.UpsertTodo(c.Request.Context(), user, coll, req.TodoTitle, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateAccess grants read and/or write access. Owner only.
func (h *CollectionHandler) UpdateAccess(c *gin.Context) {
	user, coll, ok := bothIdentities(c)
	if !ok {
		return
	}
	var req updateAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReadAccess != "" {
		if err := validate.Name("read_access", req.ReadAccess); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.WriteAccess != "" {
		if err := validate.Name("write_access", req.WriteAccess); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	view, err := h.colls.UpdateAccess(c.Request.Context(), user, coll, req.ReadAccess, req.WriteAccess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteTodo removes one todo entry. Owner only; absent entries are 404.
func (h *CollectionHandler) DeleteTodo(c *gin.Context) {
	user, coll, ok := bothIdentities(c)
	if !ok {
		return
	}
	var req deleteTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("todo_title", req.TodoTitle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.colls.DeleteTodo(c.Request.Context(), user, coll, req.TodoTitle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": view})
}

// Delete removes the user's own collection by title. Needs only a user
// token: the ownership filter does the authorization.
func (h *CollectionHandler) Delete(c *gin.Context) {
	ident, ok := UserFromContext(c)
	if !ok {
		respondError(c, errs.ErrUnauthenticated)
		return
	}
	var req deleteCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("title", req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.colls.Delete(c.Request.Context(), ident, req.Title); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collection not found or you don't have permission to delete it"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}

func bothIdentities(c *gin.Context) (user model.UserIdentity, coll model.CollectionIdentity, ok bool) {
	user, okU := UserFromContext(c)
	coll, okC := CollectionFromContext(c)
	if !okU || !okC {
		respondError(c, errs.ErrUnauthenticated)
		return user, coll, false
	}
	return user, coll, true
}
