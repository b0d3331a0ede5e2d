package export

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"listit/internal/catalog"
	"listit/internal/lines"
	"listit/internal/lists"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Lists *lists.Repo
	Lines *lines.Repo
}

func NewHandler(listsRepo *lists.Repo, linesRepo *lines.Repo) *Handler {
	return &Handler{Lists: listsRepo, Lines: linesRepo}
}

func (h *Handler) RegisterRoutes(priv *gin.RouterGroup) {
	priv.POST("/lists/:id/export", h.export)
}

// exportReq mirrors the filter controls of the list view: scalar
// include/exclude sets, tag sets, name search, censorship toggle, sort
// strategy, plus the column selection (empty = all columns).
type exportReq struct {
	Columns []string `json:"columns"`

	Name           string   `json:"name"`
	Status         []string `json:"status"`
	ExcludeStatus  []string `json:"exclude_status"`
	Content        []string `json:"content"`
	ExcludeContent []string `json:"exclude_content"`
	Opinion        []string `json:"opinion"`
	ExcludeOpinion []string `json:"exclude_opinion"`
	Tags           []string `json:"tags"`
	ExcludeTags    []string `json:"exclude_tags"`
	ShowAdult      bool     `json:"show_adult"`
	Sort           string   `json:"sort"`
}

func (req exportReq) query() catalog.Query {
	q := catalog.NewQuery()
	q.NameText = req.Name
	q.ShowAdult = req.ShowAdult

	fill := func(f catalog.FieldFilter, include, exclude []string) {
		for _, v := range include {
			f.Include[v] = struct{}{}
		}
		for _, v := range exclude {
			f.Exclude[v] = struct{}{}
		}
	}
	fill(q.Status, req.Status, req.ExcludeStatus)
	fill(q.Content, req.Content, req.ExcludeContent)
	fill(q.Opinion, req.Opinion, req.ExcludeOpinion)
	fill(q.Tags, req.Tags, req.ExcludeTags)
	return q
}

func (h *Handler) export(c *gin.Context) {
	listID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || listID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return
	}

	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx := c.Request.Context()
	list, err := h.Lists.Get(ctx, listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get list failed"})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}

	all, err := h.Lines.ListByList(ctx, listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list lines failed"})
		return
	}

	view := catalog.Filter(all, req.query())
	if s := strings.TrimSpace(req.Sort); s != "" {
		view = catalog.Sort(view, catalog.ParseSortStrategy(s))
	} else {
		view = catalog.SortCanonical(view)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	f, err := Workbook(view, OptionsFromColumns(req.Columns), rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := strings.ReplaceAll(list.Name, `"`, "") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
