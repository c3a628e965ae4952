package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/pantry"
)

// PantryService defines the pantry operations the API needs
type PantryService interface {
	List(ctx context.Context, session models.Session) ([]models.PantryView, error)
	Add(ctx context.Context, session models.Session, item models.PantryItem) (models.PantryItem, error)
	Save(ctx context.Context, session models.Session, items []models.PantryItem) ([]models.PantryItem, error)
	Export(ctx context.Context, session models.Session, w io.Writer) error
}

// Recommender matches a session's pantry against the recipe catalog
type Recommender interface {
	Recommend(ctx context.Context, session models.Session) (*matcher.Report, error)
}

// RecipeCatalog searches recipes by title
type RecipeCatalog interface {
	Search(query string) []models.Recipe
}

// Handler handles HTTP requests.
type Handler struct {
	Pantry      PantryService
	Recommender Recommender
	Recipes     RecipeCatalog
	logger      *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(pantrySvc PantryService, recommender Recommender, catalog RecipeCatalog) *Handler {
	return &Handler{
		Pantry:      pantrySvc,
		Recommender: recommender,
		Recipes:     catalog,
		logger:      logger.New("api"),
	}
}

// itemRequest is a pantry product as sent by clients
type itemRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   models.Quantity `json:"quantity"`
	Unit       string          `json:"unit"`
	ExpiryDate string          `json:"expiry_date"`
}

func (r itemRequest) toItem() (models.PantryItem, error) {
	item := models.PantryItem{
		Name:     r.Name,
		Category: strings.TrimSpace(r.Category),
		Quantity: r.Quantity,
		Unit:     strings.TrimSpace(r.Unit),
	}
	if s := strings.TrimSpace(r.ExpiryDate); s != "" {
		t, err := time.Parse(pantry.DateLayout, s)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return item, fmt.Errorf("invalid expiry_date %q, expected YYYY-MM-DD", s)
			}
		}
		item.ExpiryDate = &t
	}
	return item, nil
}

// resultView is one recipe match as shown to clients
type resultView struct {
	Recipe             string   `json:"recipe"`
	MatchPercentage    float64  `json:"match_percentage"`
	Missing            string   `json:"missing"`
	MissingIngredients []string `json:"missing_ingredients"`
	Instructions       string   `json:"instructions,omitempty"`
}

func session(c *gin.Context) models.Session {
	return models.Session{Username: c.Param("username")}
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetRecipes lists the catalog, filtered by the search query parameter.
func (h *Handler) GetRecipes(c *gin.Context) {
	recipes := h.Recipes.Search(c.Query("search"))
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// GetPantry returns the user's pantry with days left.
func (h *Handler) GetPantry(c *gin.Context) {
	views, err := h.Pantry.List(c.Request.Context(), session(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// AddProduct appends a product to the user's pantry.
func (h *Handler) AddProduct(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	item, err := req.toItem()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.Pantry.Add(c.Request.Context(), session(c), item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// SavePantry replaces the user's pantry with the posted list.
func (h *Handler) SavePantry(c *gin.Context) {
	var req []itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	items := make([]models.PantryItem, 0, len(req))
	for _, r := range req {
		item, err := r.toItem()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		items = append(items, item)
	}

	saved, err := h.Pantry.Save(c.Request.Context(), session(c), items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ExportPantry writes the user's pantry as a CSV table.
func (h *Handler) ExportPantry(c *gin.Context) {
	sess := session(c)
	var buf bytes.Buffer
	if err := h.Pantry.Export(c.Request.Context(), sess, &buf); err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pantry_%s.csv", sess.Key()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportPantry replaces the user's pantry with an uploaded CSV table.
func (h *Handler) ImportPantry(c *gin.Context) {
	items, err := pantry.ReadTable(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Pantry.Save(c.Request.Context(), session(c), items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(saved)})
}

// GetRecommendations matches every recipe against the user's pantry.
func (h *Handler) GetRecommendations(c *gin.Context) {
	report, err := h.Recommender.Recommend(c.Request.Context(), session(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	results := make([]resultView, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, resultView{
			Recipe:             r.RecipeName,
			MatchPercentage:    r.MatchPercentage,
			Missing:            r.MissingSummary(),
			MissingIngredients: r.MissingIngredients,
			Instructions:       r.Instructions,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        report.Username,
		"removed_expired": report.RemovedExpired,
		"results":         results,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pantry.ErrNoUser), errors.Is(err, pantry.ErrEmptyProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
