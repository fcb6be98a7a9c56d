package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/datatypes"
)

var googleOauthConfig *oauth2.Config

func InitGoogleOAuth() {
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}
}

type TouristAuthController struct {
	RDB      *redis.Client
	sessions *services.SessionService
}

func NewTouristAuthController(rdb *redis.Client) *TouristAuthController {
	return &TouristAuthController{RDB: rdb, sessions: services.NewSessionService(utils.GetDB())}
}

type touristRegisterRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Password    string   `json:"password" binding:"required,min=8"`
	Nationality string   `json:"nationality"`
	Language    string   `json:"language"`
	Hobbies     []string `json:"hobbies"`
}

// POST /auth/register
func (tc *TouristAuthController) Register(c *gin.Context) {
	var req touristRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	if (req.Email == "" && req.Phone == "") || (req.Email != "" && req.Phone != "") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "Provide either email or phone, not both"})
		return
	}

	db := utils.GetDB()
	var count int64
	if req.Email != "" {
		db.Model(&models.Tourist{}).Where("email = ?", strings.ToLower(req.Email)).Count(&count)
	} else {
		db.Model(&models.Tourist{}).Where("phone = ?", req.Phone).Count(&count)
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "result": nil, "error": "Tourist already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "tourist register hash")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create account"})
		return
	}

	hobbies, _ := json.Marshal(req.Hobbies)
	tourist := models.Tourist{
		FullName:    req.FullName,
		Password:    hash,
		Nationality: req.Nationality,
		Language:    req.Language,
		Hobbies:     datatypes.JSON(hobbies),
	}
	if req.Email != "" {
		email := strings.ToLower(req.Email)
		tourist.Email = &email
	}
	if req.Phone != "" {
		phone := req.Phone
		tourist.Phone = &phone
	}
	if err := db.Create(&tourist).Error; err != nil {
		utils.LogError(err, "tourist register create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": tourist})
}

type touristLoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (tc *TouristAuthController) Login(c *gin.Context) {
	var req touristLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	login := strings.ToLower(req.Email)
	if login == "" {
		login = req.Phone
	}
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "Provide email or phone"})
		return
	}

	session, err := tc.sessions.LoginTourist(login, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Invalid login or password"})
			return
		}
		utils.LogError(err, "tourist login")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}})
}

// POST /auth/logout
func (tc *TouristAuthController) Logout(c *gin.Context) {
	token := c.GetString("tourist_session_token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	if err := tc.sessions.LogoutTourist(token); err != nil {
		utils.LogError(err, "tourist logout")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"logout": true}})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func (tc *TouristAuthController) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	email := strings.ToLower(req.Email)

	db := utils.GetDB()
	var count int64
	db.Model(&models.Tourist{}).Where("email = ?", email).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "Tourist not found"})
		return
	}

	redisKey := "reset:email:" + email
	if ok, msg := utils.CanSendOTP(tc.RDB, redisKey); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "result": nil, "error": msg})
		return
	}

	otp := utils.GenerateOTP()
	utils.MarkOTPSent(tc.RDB, redisKey)
	tc.RDB.Set(context.Background(), redisKey+":otp", otp, 5*time.Minute)

	msg := fmt.Sprintf("SAYOHAT: Your password reset code: %s", otp)
	if err := utils.SendEmail(email, "SAYOHAT: Password reset", msg,
		os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"), os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")); err != nil {
		utils.LogError(err, "forgot password email")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"status": "otp sent"}})
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/reset-password
func (tc *TouristAuthController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	email := strings.ToLower(req.Email)

	redisKey := "reset:email:" + email
	otpInRedis, err := tc.RDB.Get(context.Background(), redisKey+":otp").Result()
	if err != nil || otpInRedis != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "Invalid or expired code"})
		return
	}

	db := utils.GetDB()
	var tourist models.Tourist
	if err := db.Where("email = ?", email).First(&tourist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "Tourist not found"})
		return
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "reset password hash")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to update password"})
		return
	}
	tourist.Password = hash
	if err := db.Save(&tourist).Error; err != nil {
		utils.LogError(err, "reset password save")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to update password"})
		return
	}
	tc.RDB.Del(context.Background(), redisKey+":otp")

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"status": "password updated"}})
}

type googleUserInfo struct {
	Email string `json:"email"`
	Id    string `json:"id"`
	Name  string `json:"name"`
}

// GET /auth/google
func (tc *TouristAuthController) GoogleLogin(c *gin.Context) {
	url := googleOauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func (tc *TouristAuthController) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "code not found"})
		return
	}
	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "token exchange failed"})
		return
	}
	client := googleOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo?alt=json")
	if err != nil || resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "failed to get user info"})
		return
	}
	defer resp.Body.Close()
	var userInfo googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "failed to decode user info"})
		return
	}
	if userInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "email not found in Google profile"})
		return
	}

	db := utils.GetDB()
	var tourist models.Tourist
	if err := db.Where("email = ?", strings.ToLower(userInfo.Email)).First(&tourist).Error; err == nil {
		session, err := tc.sessions.CreateTouristSession(tourist.ID, c.ClientIP(), c.Request.UserAgent())
		if err != nil {
			utils.LogError(err, "google login session")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
			"token":      session.Token,
			"expires_at": session.ExpiresAt.Format(time.RFC3339),
		}})
		return
	}

	// New tourist: park the Google profile for 10 minutes pending completion.
	pendingID := utils.GenerateSessionToken()
	profile := map[string]string{
		"email":     strings.ToLower(userInfo.Email),
		"google_id": userInfo.Id,
		"name":      userInfo.Name,
	}
	profileJSON, _ := json.Marshal(profile)
	tc.RDB.Set(context.Background(), "google:pending:"+pendingID, profileJSON, 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"need_profile": true, "pending_id": pendingID}})
}

type googleCompleteRequest struct {
	PendingID   string `json:"pending_id" binding:"required"`
	Nationality string `json:"nationality" binding:"required"`
	Language    string `json:"language"`
}

// POST /auth/google/complete
func (tc *TouristAuthController) GoogleComplete(c *gin.Context) {
	var req googleCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	redisKey := "google:pending:" + req.PendingID
	profileJSON, err := tc.RDB.Get(context.Background(), redisKey).Result()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "pending profile not found or expired"})
		return
	}
	var profile map[string]string
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to parse pending profile"})
		return
	}

	db := utils.GetDB()
	var count int64
	db.Model(&models.Tourist{}).Where("email = ?", profile["email"]).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "result": nil, "error": "tourist already exists"})
		return
	}

	email := profile["email"]
	googleID := profile["google_id"]
	tourist := models.Tourist{
		FullName:    profile["name"],
		Email:       &email,
		GoogleID:    &googleID,
		Nationality: req.Nationality,
		Language:    req.Language,
	}
	if err := db.Create(&tourist).Error; err != nil {
		utils.LogError(err, "google complete create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create account"})
		return
	}
	tc.RDB.Del(context.Background(), redisKey)

	session, err := tc.sessions.CreateTouristSession(tourist.ID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		utils.LogError(err, "google complete session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}})
}
