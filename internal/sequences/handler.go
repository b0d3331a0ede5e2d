package sequences

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"listit/internal/catalog"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(pub, priv *gin.RouterGroup) {
	pub.GET("/sequences", h.list)
	pub.GET("/sequences/:id", h.getByID)
	pub.GET("/lines/:id/sequences", h.forLine)
	priv.POST("/sequences", h.create)
	priv.DELETE("/sequences/:id", h.remove)
	priv.POST("/sequences/:id/items", h.addItem)
	priv.DELETE("/sequences/:id/items/:line_id", h.removeItem)
	priv.PUT("/sequences/:id/order", h.reorder)
}

type sequenceReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req sequenceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	seq, err := h.Repo.Create(c.Request.Context(), name, strings.TrimSpace(req.Description))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, seq)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence id"})
		return
	}

	seq, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if seq == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	items, err := h.Repo.Items(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "items failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sequence": seq,
		"items":    items,
		"total":    len(items),
	})
}

type addItemReq struct {
	LineID int64 `json:"line_id"`
}

func (h *Handler) addItem(c *gin.Context) {
	seqID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence id"})
		return
	}

	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil || req.LineID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line_id required"})
		return
	}

	ctx := c.Request.Context()
	seq, err := h.Repo.Get(ctx, seqID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if seq == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sequence not found"})
		return
	}

	exists, err := h.Repo.LineExists(ctx, req.LineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "line lookup failed"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "line not found"})
		return
	}

	order, err := h.Repo.AddItem(ctx, seqID, req.LineID)
	if err != nil {
		if errors.Is(err, ErrDuplicateItem) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "line already in sequence"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sequence_id": seqID,
		"line_id":     req.LineID,
		"order":       order,
	})
}

func (h *Handler) removeItem(c *gin.Context) {
	seqID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence id"})
		return
	}
	lineID, ok := parseID(c.Param("line_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	found, err := h.Repo.RemoveItem(c.Request.Context(), seqID, lineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "remove failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

type reorderReq struct {
	LineIDs []int64 `json:"line_ids"`
}

func (h *Handler) reorder(c *gin.Context) {
	seqID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence id"})
		return
	}

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.LineIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line_ids required"})
		return
	}

	ctx := c.Request.Context()
	seq, err := h.Repo.Get(ctx, seqID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if seq == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sequence not found"})
		return
	}

	if err := h.Repo.Reorder(ctx, seqID, req.LineIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reordered"})
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence id"})
		return
	}

	found, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// forLine reports a line's sequence memberships plus its position inside
// the first one (the UI's working assumption is a single membership).
func (h *Handler) forLine(c *gin.Context) {
	lineID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	ctx := c.Request.Context()
	refs, err := h.Repo.ForLine(ctx, lineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	resp := gin.H{"sequences": refs, "total": len(refs)}
	if len(refs) > 0 {
		items, err := h.Repo.Items(ctx, refs[0].ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "items failed"})
			return
		}
		resp["position"] = catalog.LocateInSequence(lineID, items)
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
