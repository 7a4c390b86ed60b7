package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ahha/internal/app"
	"ahha/internal/models"
	"ahha/internal/services"
	"ahha/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const snippetNotFound = "Ah-ha not found"

type APIHandler struct {
	App *app.App
}

// CreateSnippetRequest is the body of POST /api/v1/snippets. Unknown fields
// such as a client-side id or generated_tags are ignored.
type CreateSnippetRequest struct {
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	PermalinkToOrigin *string    `json:"permalink_to_origin"`
	Notes             *string    `json:"notes"`
	ContentType       *string    `json:"content_type"`
	Timestamp         *time.Time `json:"timestamp"`
}

func (h *APIHandler) CreateSnippetHandler(c *gin.Context) {
	var req CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	params := services.CreateSnippetParams{
		Title:             req.Title,
		Content:           req.Content,
		PermalinkToOrigin: req.PermalinkToOrigin,
		Notes:             req.Notes,
		ContentType:       req.ContentType,
	}
	if req.Timestamp != nil {
		params.Timestamp = req.Timestamp.UTC()
	}

	snippet, err := h.App.SnippetService.CreateSnippet(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, store.ErrDuplicate) {
			Conflict(c, err.Error())
			return
		}
		log.WithError(err).Error("CreateSnippetHandler: failed to create snippet")
		Internal(c, "failed to create snippet")
		return
	}
	c.JSON(http.StatusCreated, snippet)
}

func (h *APIHandler) ListSnippetsHandler(c *gin.Context) {
	params := store.ListParams{Search: c.Query("search")}

	var err error
	if params.Limit, err = queryInt(c, "limit"); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if params.Offset, err = queryInt(c, "offset"); err != nil {
		BadRequest(c, err.Error())
		return
	}

	snippets, err := h.App.SnippetService.ListSnippets(c.Request.Context(), params)
	if err != nil {
		log.WithError(err).Error("ListSnippetsHandler: failed to list snippets")
		Internal(c, "failed to list snippets")
		return
	}
	c.JSON(http.StatusOK, snippets)
}

func (h *APIHandler) GetSnippetHandler(c *gin.Context) {
	snippet, err := h.App.SnippetService.GetSnippet(c.Request.Context(), c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			NotFound(c, snippetNotFound)
			return
		}
		log.WithError(err).Error("GetSnippetHandler: failed to get snippet")
		Internal(c, "failed to get snippet")
		return
	}
	c.JSON(http.StatusOK, snippet)
}

func (h *APIHandler) DeleteSnippetHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.App.SnippetService.DeleteSnippet(c.Request.Context(), id); err != nil {
		if services.IsNotFound(err) {
			NotFound(c, fmt.Sprintf("Ah-ha snippet with ID %s not found or could not be deleted.", id))
			return
		}
		log.WithError(err).Error("DeleteSnippetHandler: failed to delete snippet")
		Internal(c, "failed to delete snippet")
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestTagsRequest is the body of the suggest-tags endpoints.
type SuggestTagsRequest struct {
	Snippet string `json:"snippet"`
}

type SuggestTagsResponse struct {
	SuggestedTags []string `json:"suggested_tags"`
}

// SuggestTagsHandler never fails: an unreadable body counts as empty text.
func (h *APIHandler) SuggestTagsHandler(c *gin.Context) {
	var req SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Debug("SuggestTagsHandler: unreadable body treated as empty")
		req.Snippet = ""
	}
	tags := h.App.SnippetService.SuggestTags(req.Snippet)
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, SuggestTagsResponse{SuggestedTags: tags})
}

func (h *APIHandler) MockChatHandler(c *gin.Context) {
	c.JSON(http.StatusOK, MockChatLog())
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.SnippetService.Ping(c.Request.Context()); err != nil {
		log.WithError(err).Warn("Health check failed")
		Unavailable(c, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tagger": h.App.TaggingService.Name()})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return v, nil
}
