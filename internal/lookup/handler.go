package lookup

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"listit/internal/lines"
	"listit/pkg/models"
)

type Handler struct {
	Client *Client
	Lines  *lines.Repo
}

func NewHandler(client *Client, linesRepo *lines.Repo) *Handler {
	return &Handler{Client: client, Lines: linesRepo}
}

func (h *Handler) RegisterRoutes(pub, priv *gin.RouterGroup) {
	pub.GET("/search/image", h.searchImage)
	pub.GET("/search/details", h.searchDetails)
	pub.GET("/proxy/image", h.proxyImage)
	priv.POST("/refresh/images", h.refreshImages)
	priv.POST("/refresh/details", h.refreshDetails)
}

func mediaTypeParam(c *gin.Context) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", "anime"))) {
	case "anime":
		return "ANIME", true
	case "manga":
		return "MANGA", true
	default:
		return "", false
	}
}

// searchImage resolves a cover for the query. Lookup failures fall back
// to the placeholder instead of an error: the frontend always gets a
// usable URL and the placeholder is never mistaken for a real cover.
func (h *Handler) searchImage(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q param missing"})
		return
	}
	mediaType, ok := mediaTypeParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": `type must be "anime" or "manga"`})
		return
	}

	url, err := h.Client.SearchImage(c.Request.Context(), q, mediaType)
	if err != nil {
		log.Printf("[lookup] image search %q failed: %v", q, err)
	}
	if url == "" {
		url = models.PlaceholderImage
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *Handler) searchDetails(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q param missing"})
		return
	}
	mediaType, ok := mediaTypeParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": `type must be "anime" or "manga"`})
		return
	}

	det, err := h.Client.FetchDetails(c.Request.Context(), q, mediaType)
	if err != nil {
		log.Printf("[lookup] details search %q failed: %v", q, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup failed"})
		return
	}
	if det == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, det)
}

// proxyImage relays a remote image with a permissive CORS header, so the
// frontend can draw covers from hosts that do not send one.
func (h *Handler) proxyImage(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url param missing"})
		return
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}

	resp, err := h.Client.HTTP.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch failed"})
		return
	}
	defer resp.Body.Close()

	c.Header("Access-Control-Allow-Origin", "*")
	contentType := resp.Header.Get("Content-Type")
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}

// refreshImages resolves covers for every line still showing the
// placeholder. Only real covers are written back.
func (h *Handler) refreshImages(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.Lines.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	updated := 0
	for _, ln := range all {
		if ln.HasImage() {
			continue
		}

		url, err := h.Client.SearchImage(ctx, ln.Name, MediaTypeFor(ln.Content))
		if err != nil {
			log.Printf("[lookup] refresh image %q: %v", ln.Name, err)
			continue
		}
		if url == "" || url == models.PlaceholderImage {
			continue
		}
		if _, err := h.Lines.SetImage(ctx, ln.ID, url); err != nil {
			log.Printf("[lookup] store image %q: %v", ln.Name, err)
			continue
		}
		updated++
	}

	log.Printf("[lookup] refresh images: %d updated", updated)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// refreshDetails enriches every line still missing a synopsis or short
// on synonyms, pacing requests to stay under AniList's rate limit.
func (h *Handler) refreshDetails(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.Lines.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	updated := 0
	for _, ln := range all {
		if !ln.NeedsDetails() {
			continue
		}

		det, err := h.Client.FetchDetails(ctx, ln.Name, MediaTypeFor(ln.Content))
		if err != nil {
			log.Printf("[lookup] refresh details %q: %v", ln.Name, err)
			continue
		}
		if det == nil || det.Empty() {
			continue
		}
		if _, err := h.Lines.SetDetails(ctx, ln.ID, det.Synonyms, det.Synopsis); err != nil {
			log.Printf("[lookup] store details %q: %v", ln.Name, err)
			continue
		}
		updated++

		if err := sleep(ctx, 2*time.Second); err != nil {
			break
		}
	}

	log.Printf("[lookup] refresh details: %d updated", updated)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
