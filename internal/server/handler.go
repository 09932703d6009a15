package server

import (
	"crypto/subtle"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timeclock/internal/auth"
	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/logger"
	"timeclock/internal/reporter"
	"timeclock/internal/tracker"
	"timeclock/pkg/screen"

	_ "image/jpeg"
	_ "image/png"
)

type Handler struct {
	config   *config.Config
	repo     *database.Repository
	svc      *tracker.Service
	reporter *reporter.Reporter
	log      *logger.Logger
	tokenCfg auth.TokenConfig
}

func NewHandler(cfg *config.Config, repo *database.Repository, svc *tracker.Service, log *logger.Logger) *Handler {
	return &Handler{
		config:   cfg,
		repo:     repo,
		svc:      svc,
		reporter: reporter.New(cfg, repo),
		log:      log,
		tokenCfg: auth.TokenConfig{
			Secret:        cfg.Auth.Secret,
			AccessExpiry:  cfg.Auth.AccessTokenTTL,
			RefreshExpiry: cfg.Auth.RefreshTokenTTL,
			Issuer:        cfg.Auth.Issuer,
		},
	}
}

func (h *Handler) SetupRoutes(r *gin.Engine) {
	r.POST("/api/auth/login", h.handleLogin)
	r.POST("/api/auth/refresh", h.handleRefresh)

	// Dashboard-facing reads stay open; the server binds to localhost by
	// default.
	r.GET("/api/summary", h.handleSummary)
	r.GET("/api/status", h.handleStatus)
	r.GET("/health", h.handleHealth)
	r.GET("/", h.handleIndex)

	protected := r.Group("/api")
	protected.Use(RequireAuth(h.tokenCfg))
	protected.POST("/auth/logout", h.handleLogout)
	protected.GET("/employees/tasks", h.handleEmployeeTasks)
	protected.POST("/timelogs", h.handleCreateTimelog)
	protected.GET("/sessions", h.handleSessions)
	protected.GET("/report", h.handleReport)
}

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	MACAddress string `json:"mac_address"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	if h.config.ValidateAuth() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login is not configured on this server"})
		return
	}

	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(body.Email), []byte(h.config.Auth.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(h.config.Auth.Password)) == 1
	if !emailOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(body.Email)).String()
	accessToken, err := auth.CreateAccessToken(userID, h.tokenCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token creation failed"})
		return
	}
	refreshToken, err := auth.CreateRefreshToken(userID, h.tokenCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token creation failed"})
		return
	}

	h.log.WithField("email", body.Email).Info("Login succeeded")
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_in":    int(h.tokenCfg.AccessExpiry.Seconds()),
	})
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) handleRefresh(c *gin.Context) {
	var body refreshBody
	if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	claims, err := auth.VerifyRefreshToken(body.RefreshToken, h.tokenCfg)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := auth.CreateAccessToken(claims.UserID, h.tokenCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token creation failed"})
		return
	}
	refreshToken, err := auth.CreateRefreshToken(claims.UserID, h.tokenCfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token creation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_in":    int(h.tokenCfg.AccessExpiry.Seconds()),
	})
}

// Tokens are stateless, so logout is an acknowledgement that lets clients
// keep a symmetric login/logout flow.
func (h *Handler) handleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) handleEmployeeTasks(c *gin.Context) {
	projects, err := h.repo.ListProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to fetch projects: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *Handler) handleCreateTimelog(c *gin.Context) {
	projectID, err1 := strconv.ParseUint(c.PostForm("project_id"), 10, 32)
	taskID, err2 := strconv.ParseUint(c.PostForm("task_id"), 10, 32)
	startEpoch, err3 := strconv.ParseInt(c.PostForm("start_time"), 10, 64)
	endEpoch, err4 := strconv.ParseInt(c.PostForm("end_time"), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id, task_id, start_time and end_time are required"})
		return
	}

	duration, _ := strconv.ParseInt(c.PostForm("duration"), 10, 64)
	ipAddress := c.PostForm("ip_address")
	macAddress := c.PostForm("mac_address")
	screenshotPermission, _ := strconv.ParseBool(c.PostForm("is_screenshot_permission_enabled"))

	start := time.Unix(startEpoch, 0)
	end := time.Unix(endEpoch, 0)

	session, err := h.svc.LogClosedSession(uint(projectID), uint(taskID), start, end, duration, ipAddress, macAddress, screenshotPermission)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"session": session}

	// The desktop client uploads under "file"; "screenshot" is accepted too.
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("screenshot")
	}
	if err == nil {
		shot, saveErr := h.saveUploadedScreenshot(c, file, session.ID)
		if saveErr != nil {
			h.log.WithField("session_id", session.ID).Warnf("Failed to store uploaded screenshot: %v", saveErr)
			response["screenshot_error"] = saveErr.Error()
		} else {
			response["screenshot"] = shot
		}
	}

	c.JSON(http.StatusCreated, response)
}

func (h *Handler) saveUploadedScreenshot(c *gin.Context, file *multipart.FileHeader, sessionID uint) (interface{}, error) {
	dir := h.config.Tracker.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve screenshot dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "timeclock", "screenshots")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	format := "jpeg"
	if ext == ".png" {
		format = "png"
	} else {
		ext = ".jpg"
	}

	name := fmt.Sprintf("upload_%s_%s%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8], ext)
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return nil, fmt.Errorf("failed to save screenshot: %w", err)
	}

	info := &screen.FileInfo{
		Path:     path,
		Format:   format,
		ByteSize: file.Size,
	}
	if f, err := os.Open(path); err == nil {
		if cfg, _, decErr := image.DecodeConfig(f); decErr == nil {
			info.Width = cfg.Width
			info.Height = cfg.Height
		}
		f.Close()
	}

	return h.svc.AttachScreenshot(sessionID, info, true)
}

func (h *Handler) handleSessions(c *gin.Context) {
	periodType := c.DefaultQuery("period", "day")
	period, err := h.reporter.Period(periodType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.repo.GetSessionsSince(period.Start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to fetch sessions: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "sessions": sessions})
}

func (h *Handler) handleReport(c *gin.Context) {
	periodType := c.DefaultQuery("period", "day")

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to generate report: %v", err)})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) handleSummary(c *gin.Context) {
	periodType := c.DefaultQuery("period", "day")

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.GetHeader("HX-Request") == "true" {
		h.respondSummaryHTML(c, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) handleStatus(c *gin.Context) {
	status := gin.H{
		"capture_interval": h.config.Tracker.CaptureInterval.String(),
		"database_path":    h.config.Database.Path,
	}

	if h.svc != nil {
		status["tracking"] = h.svc.IsRunning()
		status["capture_backend"] = h.svc.HasCaptureBackend()
	}

	session, err := h.repo.GetOpenSession()
	if err == nil && session != nil {
		status["open_session"] = session
	}

	if shot, err := h.repo.GetLatestScreenshot(); err == nil && shot != nil {
		status["latest_screenshot"] = gin.H{
			"timestamp": shot.Timestamp,
			"file_path": shot.FilePath,
			"format":    shot.Format,
		}
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
