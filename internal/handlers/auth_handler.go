package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"io.winapps.timelineapp/internal/auth"
	models "io.winapps.timelineapp/internal/models/account"
	createmodels "io.winapps.timelineapp/internal/models/create_account"
	loginmodels "io.winapps.timelineapp/internal/models/login"
	profilemodels "io.winapps.timelineapp/internal/models/update_profile"
)

type AuthHandler struct {
	postgres         *pgxpool.Pool
	redis            *redis.Client
	logger           *zap.SugaredLogger
	sessionSecret    string
	registrationCode string
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(postgres *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger, sessionSecret, registrationCode string) *AuthHandler {
	return &AuthHandler{
		postgres:         postgres,
		redis:            redisClient,
		logger:           logger,
		sessionSecret:    sessionSecret,
		registrationCode: registrationCode,
	}
}

// CreateAccount handles signup: registration-code check, user + profile
// rows, and a one-time snapshot grant of every form type currently marked
// default. Types marked default later are not granted retroactively.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createmodels.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.RegistrationCode != h.registrationCode {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid registration code. Please contact an administrator for access."})
		return
	}

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logError(c, err, "failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	userID := uuid.New().String()
	now := time.Now()
	username := strings.ToLower(strings.TrimSpace(req.Username))

	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to start transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err = tx.Exec(ctx, userQuery, userID, username, string(hash), now); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered"})
		return
	}

	profileQuery := `
		INSERT INTO user_profiles (user_id, display_name, email_address, first_name, last_name, position_role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`
	if _, err = tx.Exec(ctx, profileQuery, userID, req.DisplayName, req.EmailAddress,
		req.FirstName, req.LastName, req.PositionRole, now); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered"})
		return
	}

	// Snapshot grant of the currently-default active form types
	grantQuery := `
		INSERT INTO form_access (id, user_id, form_type, granted_at)
		SELECT gen_random_uuid(), $1, type, $2
		FROM form_types
		WHERE is_default = TRUE AND is_active = TRUE
		RETURNING form_type
	`
	rows, err := tx.Query(ctx, grantQuery, userID, now)
	if err != nil {
		h.logError(c, err, "failed to grant default forms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	grantedForms := make([]string, 0)
	for rows.Next() {
		var ft string
		if err := rows.Scan(&ft); err != nil {
			rows.Close()
			h.logError(c, err, "failed to read granted forms")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		grantedForms = append(grantedForms, ft)
	}
	rows.Close()

	token, expiresAt, err := auth.MintSessionToken(h.sessionSecret, userID)
	if err != nil {
		h.logError(c, err, "failed to mint session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	session := models.Session{Token: token, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}
	sessionQuery := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err = tx.Exec(ctx, sessionQuery, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		h.logError(c, err, "failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	if err = tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit account creation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	// Cache the session; a miss just falls back to Postgres
	if err := h.redis.Set(ctx, "session:"+token, userID, time.Hour).Err(); err != nil {
		h.logError(c, err, "failed to cache session")
	}

	c.JSON(http.StatusCreated, createmodels.CreateAccountResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.User{ID: userID, Username: username, CreatedAt: now},
		Profile: models.UserProfile{
			UserID:       userID,
			DisplayName:  req.DisplayName,
			EmailAddress: req.EmailAddress,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PositionRole: req.PositionRole,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		GrantedForms: grantedForms,
	})
}

// Login verifies the password and issues a fresh session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginmodels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := context.Background()

	var user models.User
	userQuery := `SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = $1`
	err := h.postgres.QueryRow(ctx, userQuery, strings.ToLower(strings.TrimSpace(req.Username))).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresAt, err := auth.MintSessionToken(h.sessionSecret, user.ID)
	if err != nil {
		h.logError(c, err, "failed to mint session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	session := models.Session{Token: token, UserID: user.ID, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	sessionQuery := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err = h.postgres.Exec(ctx, sessionQuery, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		h.logError(c, err, "failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if err := h.redis.Set(ctx, "session:"+token, user.ID, time.Hour).Err(); err != nil {
		h.logError(c, err, "failed to cache session")
	}

	profile, err := h.fetchProfile(ctx, user.ID)
	if err != nil {
		h.logError(c, err, "failed to load profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	user.PasswordHash = ""
	c.JSON(http.StatusOK, loginmodels.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Profile:   *profile,
	})
}

// Logout revokes the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	ctx := context.Background()
	if _, err := h.postgres.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		h.logError(c, err, "failed to delete session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	h.redis.Del(ctx, "session:"+token)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.fetchProfile(context.Background(), uid)
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		h.logError(c, err, "failed to load profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the self-service profile fields. Permission flags
// are only reachable through the admin surface.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req profilemodels.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := context.Background()
	query := `
		UPDATE user_profiles SET
			display_name = COALESCE(NULLIF($2, ''), display_name),
			email_address = COALESCE(NULLIF($3, ''), email_address),
			first_name = COALESCE(NULLIF($4, ''), first_name),
			last_name = COALESCE(NULLIF($5, ''), last_name),
			position_role = COALESCE(NULLIF($6, ''), position_role),
			updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := h.postgres.Exec(ctx, query, uid, req.DisplayName, req.EmailAddress,
		req.FirstName, req.LastName, req.PositionRole)
	if err != nil {
		h.logError(c, err, "failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	profile, err := h.fetchProfile(ctx, uid)
	if err != nil {
		h.logError(c, err, "failed to reload profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// fetchProfile loads one user profile row.
func (h *AuthHandler) fetchProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var p models.UserProfile
	query := `
		SELECT user_id, display_name, email_address, first_name, last_name, position_role,
		       can_pin_own, can_pin_any, can_delete_any, created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`
	err := h.postgres.QueryRow(ctx, query, uid).Scan(
		&p.UserID, &p.DisplayName, &p.EmailAddress, &p.FirstName, &p.LastName, &p.PositionRole,
		&p.CanPinOwn, &p.CanPinAny, &p.CanDeleteAny, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
