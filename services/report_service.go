package services

import (
	"time"

	"sayohat/models"
	"sayohat/utils"

	"gorm.io/gorm"
)

const reportTTL = 30 * time.Minute

var ReportWindows = []string{"week", "month", "quarter", "year"}

func ValidReportWindow(w string) bool {
	for _, v := range ReportWindows {
		if v == w {
			return true
		}
	}
	return false
}

// windowStart returns the lower bound of a report window relative to now.
// Unknown windows default to month.
func windowStart(window string, now time.Time) time.Time {
	switch window {
	case "week":
		return now.AddDate(0, 0, -7)
	case "quarter":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// Overview is the dashboard aggregate for one time window.
type Overview struct {
	Window               string             `json:"window"`
	From                 time.Time          `json:"from"`
	To                   time.Time          `json:"to"`
	NewTourists          int64              `json:"new_tourists"`
	ArrivalsCount        int64              `json:"arrivals_count"`
	TotalVisitors        int64              `json:"total_visitors"`
	ArrivalsByEntry      map[string]int64   `json:"arrivals_by_entry_point"`
	AvgRatingByTarget    map[string]float64 `json:"avg_rating_by_target"`
	RatingsCount         int64              `json:"ratings_count"`
	CommentsCount        int64              `json:"comments_count"`
	TotalCatalogViews    int64              `json:"total_catalog_views"`
	ActiveAttractions    int64              `json:"active_attractions"`
	ActiveActivities     int64              `json:"active_activities"`
	ActiveAccommodations int64              `json:"active_accommodations"`
}

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// GetOverview computes (or serves from cache) the dashboard aggregate.
// The cache key is fixed per window, independent of the caller.
func (s *ReportService) GetOverview(window string) (*Overview, error) {
	if !ValidReportWindow(window) {
		window = "month"
	}
	cacheKey := "report:overview:" + window
	var cached Overview
	if utils.CacheGetJSON(cacheKey, &cached) {
		return &cached, nil
	}

	now := time.Now()
	from := windowStart(window, now)
	ov := &Overview{
		Window:            window,
		From:              from,
		To:                now,
		ArrivalsByEntry:   map[string]int64{},
		AvgRatingByTarget: map[string]float64{},
	}

	if err := s.db.Model(&models.Tourist{}).
		Where("created_at >= ?", from).Count(&ov.NewTourists).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Arrival{}).
		Where("arrival_date >= ?", from).Count(&ov.ArrivalsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Arrival{}).
		Where("arrival_date >= ?", from).
		Select("COALESCE(SUM(group_size), 0)").Scan(&ov.TotalVisitors).Error; err != nil {
		return nil, err
	}

	var entryRows []struct {
		EntryPoint string
		Count      int64
	}
	if err := s.db.Model(&models.Arrival{}).
		Where("arrival_date >= ?", from).
		Select("entry_point, COUNT(*) AS count").
		Group("entry_point").Scan(&entryRows).Error; err != nil {
		return nil, err
	}
	for _, r := range entryRows {
		ov.ArrivalsByEntry[r.EntryPoint] = r.Count
	}

	var ratingRows []struct {
		TargetType string
		Avg        float64
	}
	if err := s.db.Model(&models.Rating{}).
		Where("created_at >= ?", from).
		Select("target_type, AVG(score) AS avg").
		Group("target_type").Scan(&ratingRows).Error; err != nil {
		return nil, err
	}
	for _, r := range ratingRows {
		ov.AvgRatingByTarget[r.TargetType] = r.Avg
	}

	if err := s.db.Model(&models.Rating{}).
		Where("created_at >= ?", from).Count(&ov.RatingsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Comment{}).
		Where("created_at >= ?", from).Count(&ov.CommentsCount).Error; err != nil {
		return nil, err
	}

	// views counters are lifetime totals, not windowed
	var viewSums [3]int64
	if err := s.db.Model(&models.Attraction{}).Select("COALESCE(SUM(views), 0)").Scan(&viewSums[0]).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Activity{}).Select("COALESCE(SUM(views), 0)").Scan(&viewSums[1]).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Accommodation{}).Select("COALESCE(SUM(views), 0)").Scan(&viewSums[2]).Error; err != nil {
		return nil, err
	}
	ov.TotalCatalogViews = viewSums[0] + viewSums[1] + viewSums[2]

	s.db.Model(&models.Attraction{}).Where("is_active = ?", true).Count(&ov.ActiveAttractions)
	s.db.Model(&models.Activity{}).Where("is_active = ?", true).Count(&ov.ActiveActivities)
	s.db.Model(&models.Accommodation{}).Where("is_active = ?", true).Count(&ov.ActiveAccommodations)

	utils.CacheSetJSON(cacheKey, ov, reportTTL)
	return ov, nil
}
