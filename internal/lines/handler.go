package lines

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"listit/internal/catalog"
	"listit/internal/sync"
	"listit/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *sync.Hub
}

func NewHandler(repo *Repo, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(pub, priv *gin.RouterGroup) {
	pub.GET("/lists/:id/lines", h.listByList)
	pub.GET("/lists/:id/to-highlight", h.toHighlight)
	pub.GET("/lines/:id", h.getByID)
	priv.POST("/lines", h.create)
	priv.PUT("/lines/:id", h.update)
	priv.DELETE("/lines/:id", h.remove)
	priv.PUT("/lines/:id/image", h.setImage)
	priv.PUT("/lines/:id/details", h.setDetails)
	priv.POST("/lines/:id/highlighted", h.markHighlighted)
}

// LineView is the API shape of a line: the stored fields plus the
// derived display class and enrichment flag.
type LineView struct {
	models.Line
	Class        catalog.Class `json:"class,omitempty"`
	NeedsDetails bool          `json:"needs_details"`
}

func toView(ln models.Line) LineView {
	return LineView{
		Line:         ln,
		Class:        catalog.Classify(ln),
		NeedsDetails: ln.NeedsDetails(),
	}
}

func toViews(lns []models.Line) []LineView {
	out := make([]LineView, len(lns))
	for i, ln := range lns {
		out[i] = toView(ln)
	}
	return out
}

// listByList returns a list's lines filtered and sorted server-side.
//
// Filters arrive as comma-separated query params (status, xstatus,
// content, xcontent, opinion, xopinion, tags, xtags — the x-prefixed
// ones exclude), plus `name` for substring search and `show_adult`.
// `sort` picks a strategy; without one the canonical base-name +
// sequel-numeral order applies.
func (h *Handler) listByList(c *gin.Context) {
	listID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	exists, err := h.Repo.ListExists(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list lookup failed"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}

	all, err := h.Repo.ListByList(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	q := queryFromParams(c)
	view := catalog.Filter(all, q)
	if s := strings.TrimSpace(c.Query("sort")); s != "" {
		view = catalog.Sort(view, catalog.ParseSortStrategy(s))
	} else {
		view = catalog.SortCanonical(view)
	}

	c.JSON(http.StatusOK, gin.H{
		"list_id": listID,
		"total":   len(view),
		"items":   toViews(view),
	})
}

func queryFromParams(c *gin.Context) catalog.Query {
	q := catalog.NewQuery()
	q.NameText = c.Query("name")
	q.ShowAdult = parseBool(c.Query("show_adult"))

	fill := func(f catalog.FieldFilter, include, exclude string) {
		for _, v := range splitCSV(c.Query(include)) {
			f.Include[v] = struct{}{}
		}
		for _, v := range splitCSV(c.Query(exclude)) {
			f.Exclude[v] = struct{}{}
		}
	}
	fill(q.Status, "status", "xstatus")
	fill(q.Content, "content", "xcontent")
	fill(q.Opinion, "opinion", "xopinion")
	fill(q.Tags, "tags", "xtags")
	return q
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	ln, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if ln == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, toView(*ln))
}

type lineReq struct {
	ListID  int64  `json:"list_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Opinion string `json:"opinion"`
	Episode string `json:"episode"`
	Tags    string `json:"tags"`
}

func (h *Handler) create(c *gin.Context) {
	var req lineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.ListID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list_id required"})
		return
	}

	exists, err := h.Repo.ListExists(c.Request.Context(), req.ListID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list lookup failed"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}

	ln := models.Line{
		ListID:  req.ListID,
		Name:    req.Name,
		Content: strings.TrimSpace(req.Content),
		Status:  strings.TrimSpace(req.Status),
		Opinion: strings.TrimSpace(req.Opinion),
		Episode: strings.TrimSpace(req.Episode),
		Tags:    catalog.JoinTags(catalog.ParseTags(req.Tags)),
	}

	saved, err := h.Repo.Create(c.Request.Context(), ln)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	h.publish(sync.EventLineUpdate, *saved)
	c.JSON(http.StatusCreated, toView(*saved))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	var req lineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	ln := models.Line{
		ID:      id,
		Name:    req.Name,
		Content: strings.TrimSpace(req.Content),
		Status:  strings.TrimSpace(req.Status),
		Opinion: strings.TrimSpace(req.Opinion),
		Episode: strings.TrimSpace(req.Episode),
		Tags:    catalog.JoinTags(catalog.ParseTags(req.Tags)),
	}

	found, err := h.Repo.Update(c.Request.Context(), ln)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	saved, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil || saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}

	h.publish(sync.EventLineUpdate, *saved)
	c.JSON(http.StatusOK, toView(*saved))
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	// fetch first so the delete event can carry the name
	ln, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if ln == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if _, err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	h.publish(sync.EventLineDelete, *ln)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type imageReq struct {
	ImageURL string `json:"image_url"`
}

func (h *Handler) setImage(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	url := strings.TrimSpace(req.ImageURL)
	if url == "" || url == models.PlaceholderImage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url must be a resolved cover"})
		return
	}

	found, err := h.Repo.SetImage(c.Request.Context(), id, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if ln, err := h.Repo.Get(c.Request.Context(), id); err == nil && ln != nil {
		h.publish(sync.EventLineUpdate, *ln)
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image_url": url})
}

type detailsReq struct {
	Synonyms []string `json:"synonyms"`
	Synopsis string   `json:"synopsis"`
}

func (h *Handler) setDetails(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	var req detailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	found, err := h.Repo.SetDetails(c.Request.Context(), id, req.Synonyms, strings.TrimSpace(req.Synopsis))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	ln, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil || ln == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}

	h.publish(sync.EventLineUpdate, *ln)
	c.JSON(http.StatusOK, toView(*ln))
}

func (h *Handler) toHighlight(c *gin.Context) {
	listID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	items, err := h.Repo.ToHighlight(c.Request.Context(), listID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": toViews(items)})
}

func (h *Handler) markHighlighted(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}

	found, err := h.Repo.MarkHighlighted(c.Request.Context(), id, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if ln, err := h.Repo.Get(c.Request.Context(), id); err == nil && ln != nil {
		h.publish(sync.EventLineHighlight, *ln)
	}
	c.JSON(http.StatusOK, gin.H{"message": "highlight recorded"})
}

func (h *Handler) publish(typ string, ln models.Line) {
	if h.Hub == nil {
		return
	}
	ev := sync.NewLineEvent(typ, ln.ID, ln.ListID, ln.Name)
	go h.Hub.Broadcast(ev)
}

func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
