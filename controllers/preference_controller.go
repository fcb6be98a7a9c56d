package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PreferenceController struct {
	db              *gorm.DB
	recommendations *services.RecommendationService
}

func NewPreferenceController() *PreferenceController {
	return &PreferenceController{
		db:              utils.GetDB(),
		recommendations: services.NewRecommendationService(utils.GetDB()),
	}
}

func decodeStrings(raw datatypes.JSON) []string {
	var out []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func decodeActions(raw datatypes.JSON) []models.TrackedAction {
	var out []models.TrackedAction
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	if out == nil {
		out = []models.TrackedAction{}
	}
	return out
}

// loadOrInitPreference returns the tourist's preference row, creating an
// empty one on first access.
func (pc *PreferenceController) loadOrInitPreference(touristID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := pc.db.Where("tourist_id = ?", touristID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		pref = models.UserPreference{TouristID: touristID}
		if err := pc.db.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// GET /user/preferences
func (pc *PreferenceController) Get(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	pref, err := pc.loadOrInitPreference(touristID)
	if err != nil {
		utils.LogError(err, "preference get")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"interests":         decodeStrings(pref.Interests),
		"action_history":    decodeActions(pref.ActionHistory),
		"viewed_categories": decodeStrings(pref.ViewedCategories),
	}})
}

type preferenceUpdatePayload struct {
	Interests []string `json:"interests" binding:"required"`
}

// PUT /user/preferences
// Replaces the interest list. A fresh interest list changes what the
// recommender would return, so the tourist's cached recommendations go.
func (pc *PreferenceController) Update(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var req preferenceUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	interests := make([]string, 0, len(req.Interests))
	seen := map[string]bool{}
	for _, raw := range req.Interests {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		interests = append(interests, v)
		if len(interests) == models.MaxInterests {
			break
		}
	}

	pref, err := pc.loadOrInitPreference(touristID)
	if err != nil {
		utils.LogError(err, "preference update load")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update preferences"})
		return
	}

	raw, _ := json.Marshal(interests)
	pref.Interests = datatypes.JSON(raw)
	if err := pc.db.Save(pref).Error; err != nil {
		utils.LogError(err, "preference update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update preferences"})
		return
	}

	pc.recommendations.InvalidateForTourist(touristID)

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"interests": interests}})
}

// POST /user/track-action payload.
type trackActionPayload struct {
	Action     string `json:"action" binding:"required"`
	TargetType string `json:"target_type" binding:"required"`
	TargetID   uint   `json:"target_id"`
	Category   string `json:"category"`
}

var trackedActions = map[string]bool{
	"view":    true,
	"rate":    true,
	"comment": true,
	"search":  true,
}

// POST /user/track-action
// Appends to the action history (most recent kept) and merges the optional
// category into viewed_categories. Both arrays stay capped. History feeds
// the recommender, so the tourist's cached recommendations are evicted.
func (pc *PreferenceController) TrackAction(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var req trackActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if !trackedActions[action] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "action must be one of: view, rate, comment, search"})
		return
	}
	targetType := strings.ToLower(strings.TrimSpace(req.TargetType))
	if !models.ValidTargetType(targetType) && targetType != "search" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "invalid target_type"})
		return
	}

	pref, err := pc.loadOrInitPreference(touristID)
	if err != nil {
		utils.LogError(err, "track action load")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to track action"})
		return
	}

	history := decodeActions(pref.ActionHistory)
	history = append(history, models.TrackedAction{
		Action:     action,
		TargetType: targetType,
		TargetID:   req.TargetID,
		At:         time.Now().UTC().Format(time.RFC3339),
	})
	if len(history) > models.MaxActionHistory {
		history = history[len(history)-models.MaxActionHistory:]
	}

	categories := decodeStrings(pref.ViewedCategories)
	if cat := strings.ToLower(strings.TrimSpace(req.Category)); cat != "" {
		found := false
		for _, existing := range categories {
			if existing == cat {
				found = true
				break
			}
		}
		if !found {
			categories = append(categories, cat)
			if len(categories) > models.MaxViewedCategories {
				categories = categories[len(categories)-models.MaxViewedCategories:]
			}
		}
	}

	rawHistory, _ := json.Marshal(history)
	rawCategories, _ := json.Marshal(categories)
	pref.ActionHistory = datatypes.JSON(rawHistory)
	pref.ViewedCategories = datatypes.JSON(rawCategories)
	if err := pc.db.Save(pref).Error; err != nil {
		utils.LogError(err, "track action save")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to track action"})
		return
	}

	pc.recommendations.InvalidateForTourist(touristID)

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"action_history_size": len(history),
		"viewed_categories":   categories,
	}})
}
