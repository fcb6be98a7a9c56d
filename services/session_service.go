package services

import (
	"errors"
	"time"

	"sayohat/models"
	"sayohat/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdminSessionTTL   = 2 * time.Hour
	TouristSessionTTL = 30 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// LoginAdmin checks credentials, expires every live session of that admin and
// issues a fresh one, all in one transaction: at most one live admin session
// exists per admin at any time.
func (s *SessionService) LoginAdmin(email, password, ip, userAgent string) (*models.AdminSession, error) {
	var admin models.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := models.AdminSession{
		ID:             uuid.NewString(),
		AdminID:        admin.ID,
		ExpiresAt:      now.Add(AdminSessionTTL),
		LastActivityAt: now,
		IPAddress:      ip,
		UserAgent:      userAgent,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AdminSession{}).
			Where("admin_id = ? AND expires_at > ?", admin.ID, now).
			Update("expires_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// LoginTourist mirrors LoginAdmin for the mobile client: prior live sessions
// are expired before the new token is issued.
func (s *SessionService) LoginTourist(login, password, ip, userAgent string) (*models.TouristSession, error) {
	var tourist models.Tourist
	if err := s.db.Where("email = ? OR phone = ?", login, login).First(&tourist).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if tourist.Password == "" || !utils.CheckPasswordHash(password, tourist.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.CreateTouristSession(tourist.ID, ip, userAgent)
}

// CreateTouristSession issues a session for an already-authenticated tourist
// (password login and the Google flow both end up here).
func (s *SessionService) CreateTouristSession(touristID uint, ip, userAgent string) (*models.TouristSession, error) {
	now := time.Now()
	session := models.TouristSession{
		Token:          utils.GenerateSessionToken(),
		TouristID:      touristID,
		ExpiresAt:      now.Add(TouristSessionTTL),
		LastActivityAt: now,
		IPAddress:      ip,
		UserAgent:      userAgent,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TouristSession{}).
			Where("tourist_id = ? AND expires_at > ?", touristID, now).
			Update("expires_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// LogoutAdmin expires the session row instead of deleting it; abandoned rows
// are left for offline cleanup.
func (s *SessionService) LogoutAdmin(sessionID string) error {
	return s.db.Model(&models.AdminSession{}).
		Where("id = ?", sessionID).
		Update("expires_at", time.Now()).Error
}

func (s *SessionService) LogoutTourist(token string) error {
	return s.db.Model(&models.TouristSession{}).
		Where("token = ?", token).
		Update("expires_at", time.Now()).Error
}
