package resource

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"library-service/internal/shared/response"
)

// Handler adapts the five HTTP operations of one resource to a repository.
type Handler[E any, P Record[E], F Filter] struct {
	repo RepositoryInterface[E, P, F]
	name string
}

// NewHandler creates a handler; name is used in error messages (e.g. "authors").
func NewHandler[E any, P Record[E], F Filter](repo RepositoryInterface[E, P, F], name string) *Handler[E, P, F] {
	return &Handler[E, P, F]{
		repo: repo,
		name: name,
	}
}

// Register mounts the handler under path:
//
//	GET    path       list
//	GET    path/:id   get
//	POST   path       create
//	PUT    path/:id   update
//	DELETE path/:id   delete
func (h *Handler[E, P, F]) Register(r gin.IRouter, path string) {
	g := r.Group(path)
	{
		g.GET("", h.List)
		g.GET("/:id", h.GetByID)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /<resource>?limit=&<filters>
// ════════════════════════════════════════════════════════════════

func (h *Handler[E, P, F]) List(c *gin.Context) {
	var filter F
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.fail(c, ValidationError(h.name, "list", err))
		return
	}

	items, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /<resource>/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler[E, P, F]) GetByID(c *gin.Context) {
	id, err := h.parseID(c, "get")
	if err != nil {
		h.fail(c, err)
		return
	}

	item, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /<resource>
// ════════════════════════════════════════════════════════════════

func (h *Handler[E, P, F]) Create(c *gin.Context) {
	var entity E
	if err := h.bindBody(c, "create", P(&entity)); err != nil {
		h.fail(c, err)
		return
	}

	id, err := h.repo.Create(c.Request.Context(), P(&entity))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.CreatedID(c, id)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /<resource>/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler[E, P, F]) Update(c *gin.Context) {
	id, err := h.parseID(c, "update")
	if err != nil {
		h.fail(c, err)
		return
	}

	var entity E
	if err := h.bindBody(c, "update", P(&entity)); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, P(&entity)); err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, response.MessageUpdated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /<resource>/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler[E, P, F]) Delete(c *gin.Context) {
	id, err := h.parseID(c, "delete")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, response.MessageDeleted)
}

func (h *Handler[E, P, F]) parseID(c *gin.Context, op string) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ValidationError(h.name, op, fmt.Errorf("invalid id %q", raw))
	}
	return id, nil
}

var errNoEntity = errors.New("request body must be a JSON object")

// bindBody decodes the request body into entity. An empty or null body is
// rejected instead of being treated as an entity with every field absent.
func (h *Handler[E, P, F]) bindBody(c *gin.Context, op string, entity P) error {
	raw, err := c.GetRawData()
	if err != nil {
		return ValidationError(h.name, op, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ValidationError(h.name, op, errNoEntity)
	}

	if err := binding.JSON.BindBody(trimmed, entity); err != nil {
		return ValidationError(h.name, op, err)
	}
	return nil
}

func (h *Handler[E, P, F]) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	response.ErrorResponse(c, ToHTTPStatus(err), KindOf(err).String(), err.Error())
}
