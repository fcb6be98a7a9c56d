package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/utils"

	"gorm.io/gorm"
)

const recommendationTTL = 10 * time.Minute

// Hand-tuned linear blend computed in the query itself. avg_rating is 0..5,
// the other signals are 0..1, so rating dominates as intended.
const activityScoreExpr = "0.4 * COALESCE(AVG(ratings.score), 0) + " +
	"0.3 * LEAST(activities.capacity / 50.0, 1.0) + " +
	"0.2 * (CASE WHEN activities.is_recurring THEN 1 ELSE 0 END) + " +
	"0.1 * (CASE WHEN activities.requires_booking THEN 1 ELSE 0 END)"

type RecommendedActivity struct {
	models.Activity
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
	Score        float64 `json:"score"`
}

type RecommendedAttraction struct {
	models.Attraction
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

type RecommendationService struct {
	db *gorm.DB
}

func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// interestKeywords decodes a tourist's stored interests into lowercase
// keywords usable in ILIKE patterns. Empty and whitespace entries are dropped.
func interestKeywords(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var interests []string
	if err := json.Unmarshal(raw, &interests); err != nil {
		return nil
	}
	out := make([]string, 0, len(interests))
	for _, s := range interests {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *RecommendationService) touristInterests(touristID uint) []string {
	var pref models.UserPreference
	if err := s.db.Where("tourist_id = ?", touristID).First(&pref).Error; err != nil {
		return nil
	}
	keywords := interestKeywords(pref.Interests)
	if len(keywords) > 0 {
		return keywords
	}
	// Declared hobbies on the tourist row serve as a fallback interest source.
	var tourist models.Tourist
	if err := s.db.First(&tourist, touristID).Error; err != nil {
		return nil
	}
	return interestKeywords(tourist.Hobbies)
}

func interestClause(keywords []string, columns []string) (string, []interface{}) {
	var parts []string
	var args []interface{}
	for _, kw := range keywords {
		p := "%" + kw + "%"
		for _, col := range columns {
			parts = append(parts, col+" ILIKE ?")
			args = append(args, p)
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// clampRecommendLimit applies the same bounds the HTTP layer does, so a
// direct caller cannot request an unbounded result set.
func clampRecommendLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}

// RecommendActivities returns active activities ranked by the weighted score,
// narrowed to the tourist's interests when any are stored, otherwise ordered
// by plain popularity. Results are cached per (tourist, limit).
func (s *RecommendationService) RecommendActivities(touristID uint, limit int) ([]RecommendedActivity, error) {
	limit = clampRecommendLimit(limit)
	cacheKey := fmt.Sprintf("recommend:activities:%d:%d", touristID, limit)
	var cached []RecommendedActivity
	if utils.CacheGetJSON(cacheKey, &cached) {
		return cached, nil
	}

	q := s.db.Model(&models.Activity{}).
		Select("activities.*, "+
			"COALESCE(AVG(ratings.score), 0) AS avg_rating, "+
			"COUNT(ratings.id) AS ratings_count, "+
			activityScoreExpr+" AS score").
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = activities.id AND ratings.deleted_at IS NULL",
			models.TargetActivity).
		Where("activities.is_active = ?", true).
		Group("activities.id")

	keywords := s.touristInterests(touristID)
	if len(keywords) > 0 {
		clause, args := interestClause(keywords, []string{"activities.name", "activities.description", "activities.category"})
		q = q.Where(clause, args...).Order("score DESC, ratings_count DESC")
	} else {
		// No stored preferences: fall back to popular ordering.
		q = q.Order("avg_rating DESC, ratings_count DESC")
	}

	var results []RecommendedActivity
	if err := q.Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	utils.CacheSetJSON(cacheKey, results, recommendationTTL)
	return results, nil
}

// RecommendAttractions narrows by interests when present and orders by
// popularity; attractions carry no capacity/booking signals to score on.
func (s *RecommendationService) RecommendAttractions(touristID uint, limit int) ([]RecommendedAttraction, error) {
	limit = clampRecommendLimit(limit)
	cacheKey := fmt.Sprintf("recommend:attractions:%d:%d", touristID, limit)
	var cached []RecommendedAttraction
	if utils.CacheGetJSON(cacheKey, &cached) {
		return cached, nil
	}

	q := s.db.Model(&models.Attraction{}).
		Select("attractions.*, "+
			"COALESCE(AVG(ratings.score), 0) AS avg_rating, "+
			"COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = attractions.id AND ratings.deleted_at IS NULL",
			models.TargetAttraction).
		Where("attractions.is_active = ?", true).
		Group("attractions.id")

	keywords := s.touristInterests(touristID)
	if len(keywords) > 0 {
		clause, args := interestClause(keywords, []string{"attractions.name", "attractions.description", "attractions.category"})
		q = q.Where(clause, args...)
	}
	q = q.Order("avg_rating DESC, ratings_count DESC, attractions.views DESC")

	var results []RecommendedAttraction
	if err := q.Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	utils.CacheSetJSON(cacheKey, results, recommendationTTL)
	return results, nil
}

// InvalidateForTourist drops that tourist's cached recommendations. Called
// when preferences or action history change; catalog writes do not evict.
func (s *RecommendationService) InvalidateForTourist(touristID uint) {
	rdb := utils.GetRedis()
	if rdb == nil {
		return
	}
	for _, prefix := range []string{"recommend:activities", "recommend:attractions"} {
		pattern := fmt.Sprintf("%s:%d:*", prefix, touristID)
		keys, err := rdb.Keys(utils.RedisCtx(), pattern).Result()
		if err != nil || len(keys) == 0 {
			continue
		}
		rdb.Del(utils.RedisCtx(), keys...)
	}
}
