/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resource

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

// Handler serves one entity type over a DataStore.
type Handler[T any] struct {
	store  datastore.DataStore[T]
	name   string
	logger *zap.Logger
}

// Option configures a Handler.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for unexpected store errors.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewHandler creates a Handler for store.
func NewHandler[T any](store datastore.DataStore[T], opts ...Option) *Handler[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	name := datastore.EntityName[T]()
	return &Handler[T]{
		store:  store,
		name:   name,
		logger: o.logger.With(zap.String("entity", name)),
	}
}

// Register mounts the collection routes on r.
func (h *Handler[T]) Register(r gin.IRouter) {
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.POST("", h.Create)
	r.PUT("/:id", h.Put)
	r.DELETE("/:id", h.Delete)
}

// List returns one page of entities.
func (h *Handler[T]) List(c *gin.Context) {
	var req storagemodels.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Offset < 0 || req.Limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset and limit must not be negative"})
		return
	}

	page, err := h.store.FindAll(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns the entity named by the id path parameter.
func (h *Handler[T]) Get(c *gin.Context) {
	entity, err := h.store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Create stores the request body as a new entity.
func (h *Handler[T]) Create(c *gin.Context) {
	entity := new(T)
	if err := c.ShouldBindJSON(entity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Create(c.Request.Context(), entity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

// Put creates or replaces the entity named by the id path parameter. A body
// ID, when present, must match the path.
func (h *Handler[T]) Put(c *gin.Context) {
	entity := new(T)
	if err := c.ShouldBindJSON(entity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	ident, ok := any(entity).(datastore.Identifiable)
	if !ok {
		h.fail(c, errors.NewValidationError("entity", "does not carry a resource ID"))
		return
	}
	switch ident.ResourceID() {
	case "":
		ident.AssignID(id)
	case id:
	default:
		h.fail(c, errors.NewValidationError("id", "body ID does not match path"))
		return
	}

	if err := h.store.Save(c.Request.Context(), entity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Delete removes the entity named by the id path parameter.
func (h *Handler[T]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler[T]) fail(c *gin.Context, err error) {
	status := StatusOf(err)
	c.JSON(status, gin.H{"error": err.Error()})
	if status == http.StatusInternalServerError {
		h.logger.Error("Store operation failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
}

// StatusOf maps a store error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsAlreadyExists(err):
		return http.StatusConflict
	case errors.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
