package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/utils"

	"gorm.io/gorm"
)

const searchTTL = 5 * time.Minute

// SearchFilters is the filter bag shared by attraction and accommodation
// search. Zero values mean "filter not applied". For accommodations the
// Categories filter matches the type column.
type SearchFilters struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	Region     string   `json:"region"`
	PriceMin   float64  `json:"price_min"`
	PriceMax   float64  `json:"price_max"`
	MinRating  float64  `json:"min_rating"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	RadiusKm   float64  `json:"radius_km"`
	SortBy     string   `json:"sort_by"`
	SortDir    string   `json:"sort_dir"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// sort allow-list; values are filled per table in orderClause.
var searchSortFields = map[string]bool{
	"name":       true,
	"price":      true,
	"rating":     true,
	"views":      true,
	"created_at": true,
	"distance":   true,
}

type SearchResult struct {
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	Data       []interface{} `json:"data"`
}

type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// normalize clamps paging, lowercases and sorts the category set and rejects
// sort fields outside the allow-list, so that equivalent filter bags hash to
// the same cache key.
func (f SearchFilters) normalize() SearchFilters {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	f.Region = strings.ToLower(strings.TrimSpace(f.Region))
	cats := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	f.Categories = cats

	if !searchSortFields[f.SortBy] {
		f.SortBy = "rating"
	}
	// distance sort only makes sense with a radius filter
	if f.SortBy == "distance" && f.RadiusKm <= 0 {
		f.SortBy = "rating"
	}
	if f.RadiusKm <= 0 {
		f.Latitude = 0
		f.Longitude = 0
		f.RadiusKm = 0
	}
	if f.SortDir != "asc" {
		f.SortDir = "desc"
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
	return f
}

func searchCacheKey(prefix string, f SearchFilters) string {
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return "search:" + prefix + ":" + hex.EncodeToString(sum[:])
}

func orderClause(f SearchFilters, table, priceColumn string) string {
	col := map[string]string{
		"name":       table + ".name",
		"price":      table + "." + priceColumn,
		"rating":     "avg_rating",
		"views":      table + ".views",
		"created_at": table + ".created_at",
		"distance":   "distance_km",
	}[f.SortBy]
	dir := "DESC"
	if f.SortDir == "asc" {
		dir = "ASC"
	}
	// id tiebreak keeps pagination stable across pages
	return col + " " + dir + ", " + table + ".id ASC"
}

func toGenericRows(rows interface{}) []interface{} {
	raw, _ := json.Marshal(rows)
	var data []interface{}
	_ = json.Unmarshal(raw, &data)
	if data == nil {
		data = []interface{}{}
	}
	return data
}

type searchedAttraction struct {
	models.Attraction
	AvgRating    float64  `json:"avg_rating"`
	RatingsCount int64    `json:"ratings_count"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

type searchedAccommodation struct {
	models.Accommodation
	AvgRating    float64  `json:"avg_rating"`
	RatingsCount int64    `json:"ratings_count"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

func (s *SearchService) SearchAttractions(f SearchFilters) (*SearchResult, error) {
	f = f.normalize()
	cacheKey := searchCacheKey("attractions", f)
	var cached SearchResult
	if utils.CacheGetJSON(cacheKey, &cached) {
		return &cached, nil
	}

	q := s.db.Model(&models.Attraction{}).
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = attractions.id AND ratings.deleted_at IS NULL",
			models.TargetAttraction).
		Where("attractions.is_active = ?", true).
		Group("attractions.id")

	if f.Query != "" {
		p := "%" + f.Query + "%"
		q = q.Where("(attractions.name ILIKE ? OR attractions.description ILIKE ?)", p, p)
	}
	if len(f.Categories) > 0 {
		q = q.Where("LOWER(attractions.category) IN ?", f.Categories)
	}
	if f.Region != "" {
		q = q.Where("LOWER(attractions.region) = ?", f.Region)
	}
	if f.PriceMin > 0 {
		q = q.Where("attractions.entry_fee >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("attractions.entry_fee <= ?", f.PriceMax)
	}
	if f.MinRating > 0 {
		q = q.Having("COALESCE(AVG(ratings.score), 0) >= ?", f.MinRating)
	}
	if f.RadiusKm > 0 {
		q = q.Having(utils.HaversineSQL("attractions")+" <= ?", f.Latitude, f.Longitude, f.Latitude, f.RadiusKm)
	}

	var total int64
	countQ := s.db.Table("(?) AS matched", q.Session(&gorm.Session{}).Select("attractions.id"))
	if err := countQ.Count(&total).Error; err != nil {
		return nil, err
	}

	selectExpr := "attractions.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count"
	var selectArgs []interface{}
	if f.RadiusKm > 0 {
		selectExpr += ", " + utils.HaversineSQL("attractions") + " AS distance_km"
		selectArgs = append(selectArgs, f.Latitude, f.Longitude, f.Latitude)
	}

	var rows []searchedAttraction
	offset := (f.Page - 1) * f.PageSize
	if err := q.Select(selectExpr, selectArgs...).
		Order(orderClause(f, "attractions", "entry_fee")).
		Offset(offset).Limit(f.PageSize).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := &SearchResult{Page: f.Page, PageSize: f.PageSize, TotalCount: total, Data: toGenericRows(rows)}
	utils.CacheSetJSON(cacheKey, result, searchTTL)
	return result, nil
}

func (s *SearchService) SearchAccommodations(f SearchFilters) (*SearchResult, error) {
	f = f.normalize()
	cacheKey := searchCacheKey("accommodations", f)
	var cached SearchResult
	if utils.CacheGetJSON(cacheKey, &cached) {
		return &cached, nil
	}

	q := s.db.Model(&models.Accommodation{}).
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = accommodations.id AND ratings.deleted_at IS NULL",
			models.TargetAccommodation).
		Where("accommodations.is_active = ?", true).
		Group("accommodations.id")

	if f.Query != "" {
		p := "%" + f.Query + "%"
		q = q.Where("(accommodations.name ILIKE ? OR accommodations.description ILIKE ?)", p, p)
	}
	if len(f.Categories) > 0 {
		q = q.Where("LOWER(accommodations.type) IN ?", f.Categories)
	}
	if f.Region != "" {
		q = q.Where("LOWER(accommodations.region) = ?", f.Region)
	}
	if f.PriceMin > 0 {
		q = q.Where("accommodations.price_per_night >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("accommodations.price_per_night <= ?", f.PriceMax)
	}
	if f.MinRating > 0 {
		q = q.Having("COALESCE(AVG(ratings.score), 0) >= ?", f.MinRating)
	}
	if f.RadiusKm > 0 {
		q = q.Having(utils.HaversineSQL("accommodations")+" <= ?", f.Latitude, f.Longitude, f.Latitude, f.RadiusKm)
	}

	var total int64
	countQ := s.db.Table("(?) AS matched", q.Session(&gorm.Session{}).Select("accommodations.id"))
	if err := countQ.Count(&total).Error; err != nil {
		return nil, err
	}

	selectExpr := "accommodations.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count"
	var selectArgs []interface{}
	if f.RadiusKm > 0 {
		selectExpr += ", " + utils.HaversineSQL("accommodations") + " AS distance_km"
		selectArgs = append(selectArgs, f.Latitude, f.Longitude, f.Latitude)
	}

	var rows []searchedAccommodation
	offset := (f.Page - 1) * f.PageSize
	if err := q.Select(selectExpr, selectArgs...).
		Order(orderClause(f, "accommodations", "price_per_night")).
		Offset(offset).Limit(f.PageSize).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := &SearchResult{Page: f.Page, PageSize: f.PageSize, TotalCount: total, Data: toGenericRows(rows)}
	utils.CacheSetJSON(cacheKey, result, searchTTL)
	return result, nil
}
