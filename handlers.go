package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"nacp/models"
	"nacp/pkg/export"
	"nacp/pkg/session"
	"nacp/pkg/survey"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupRoutes(r *gin.Engine, a *app) {
	r.POST("/register", registerHandler)
	r.POST("/login", a.loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/logout", a.logoutHandler)

	authGroup.GET("/sections", a.listSectionsHandler)
	authGroup.GET("/holders", a.listHoldersHandler)
	authGroup.POST("/holders", a.createHolderHandler)
	authGroup.GET("/holders/:id", a.getHolderHandler)
	authGroup.GET("/holders/:id/address", a.holderAddressHandler)

	authGroup.GET("/holders/:id/survey", a.surveyStateHandler)
	authGroup.POST("/holders/:id/survey/advance", a.surveyAdvanceHandler)
	authGroup.POST("/holders/:id/survey/retreat", a.surveyRetreatHandler)
	authGroup.POST("/holders/:id/survey/jump", a.surveyJumpHandler)

	authGroup.POST("/holders/:id/sections/holder-information", a.submitHolderInfoHandler)
	authGroup.POST("/holders/:id/sections/location", a.submitLocationHandler)
	authGroup.POST("/holders/:id/sections/household", a.submitHouseholdHandler)
	authGroup.POST("/holders/:id/sections/labour", a.submitLabourHandler)
	authGroup.POST("/holders/:id/sections/remarks", a.submitRemarksHandler)

	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(requireRole(models.RoleAdmin))
	adminGroup.GET("/users/pending", a.pendingUsersHandler)
	adminGroup.POST("/users/:id/approve", a.approveUserHandler)
	adminGroup.GET("/holders/pending", a.pendingHoldersHandler)
	adminGroup.GET("/reports/completion", a.completionReportHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		sid, _ := claims["sid"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		if sid != "" {
			c.Set("sid", sid)
		}
		c.Next()
	}
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": c.GetString("role"), "status": user.Status})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// requireApproved blocks pending accounts from the dashboards with an
// explanatory message.
func requireApproved(c *gin.Context, user *models.User) bool {
	if user.Status != models.StatusApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "your account is not approved yet, please wait for admin approval"})
		return false
	}
	return true
}

// holderForRequest resolves the :id holder and enforces access: admins and
// agents may work any holder, a holder account only its own.
func (a *app) holderForRequest(c *gin.Context, user *models.User) (*models.Holder, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid holder id"})
		return nil, false
	}
	var holder models.Holder
	if err := db.First(&holder, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "holder not found"})
		return nil, false
	}
	role := c.GetString("role")
	if role != models.RoleAdmin && role != models.RoleAgent && holder.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return &holder, true
}

// ---------------- auth ----------------

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleHolder
	}
	if err := RegisterUser(req.Username, req.Password, req.Role); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered, awaiting admin approval"})
}

func (a *app) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Fresh session id per login; the session state itself is created
	// lazily on the first survey render.
	sid := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName(&user),
		"sid":      sid,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"token":         tokenString,
		"refresh_token": refreshToken,
		"status":        user.Status,
	})
}

func (a *app) logoutHandler(c *gin.Context) {
	if sid := c.GetString("sid"); sid != "" {
		if err := a.sessions.Delete(c.Request.Context(), sid); err != nil {
			logger.Warn("session delete failed", zap.String("sid", sid), zap.Error(err))
		}
	}
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		if rt, err := findRefreshTokenByRaw(req.RefreshToken); err == nil {
			db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName(&user),
		"sid":      uuid.NewString(),
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

// ---------------- holders ----------------

func (a *app) listSectionsHandler(c *gin.Context) {
	type sectionInfo struct {
		ID            int    `json:"id"`
		Label         string `json:"label"`
		NeedsHolderID bool   `json:"needs_holder_id"`
	}
	out := []sectionInfo{}
	for _, s := range a.registry.Sections() {
		out = append(out, sectionInfo{ID: s.ID, Label: s.Label, NeedsHolderID: s.NeedsHolderID})
	}
	c.JSON(http.StatusOK, out)
}

// listHoldersHandler returns the caller's holders. A holder account with no
// holder yet gets one created on first access, mirroring first login in the
// original flow. Agents and admins see all holders.
func (a *app) listHoldersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	role := c.GetString("role")
	var holders []models.Holder
	q := db.Model(&models.Holder{}).Order("id")
	if role != models.RoleAdmin && role != models.RoleAgent {
		q = q.Where("owner_id = ?", user.ID)
	}
	if err := q.Find(&holders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if len(holders) == 0 && role == models.RoleHolder {
		holder := models.Holder{OwnerID: user.ID, Name: user.Username}
		if err := db.Create(&holder).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		holders = append(holders, holder)
	}
	c.JSON(http.StatusOK, holders)
}

func (a *app) createHolderHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	holder := models.Holder{OwnerID: user.ID, Name: req.Name}
	if err := db.Create(&holder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": holder.ID})
}

func (a *app) getHolderHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	resp := gin.H{"holder": holder}
	if holder.DateOfBirth != nil {
		resp["age"] = ageYears(*holder.DateOfBirth, time.Now())
	}
	c.JSON(http.StatusOK, resp)
}

// ageYears computes full years between dob and now.
func ageYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// holderAddressHandler resolves the holder's saved coordinates to a display
// address. Lookup failures degrade to a placeholder, never an error page.
func (a *app) holderAddressHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	if holder.Latitude == nil || holder.Longitude == nil {
		c.JSON(http.StatusOK, gin.H{"address": "location not recorded"})
		return
	}
	addr := a.geocoder.ReverseLookup(c.Request.Context(), *holder.Latitude, *holder.Longitude)
	c.JSON(http.StatusOK, gin.H{"address": addr})
}

// ---------------- survey navigation ----------------

// sessionState loads or initializes the cursor for this session+holder.
// A missing or stale session re-derives the initial section from the
// completion records, so two fresh sessions always agree.
func (a *app) sessionState(c *gin.Context, holder *models.Holder, userID uint) (*session.State, map[int]bool) {
	sid := c.GetString("sid")
	completed, err := a.tracker.Completed(holder.ID)
	if err != nil {
		// fail-closed: no section is confirmed complete
		logger.Error("completion query failed", zap.Uint("holder_id", holder.ID), zap.Error(err))
		completed = map[int]bool{}
	}
	var st *session.State
	if sid != "" {
		st, err = a.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			logger.Warn("session read failed", zap.String("sid", sid), zap.Error(err))
			st = nil
		}
	}
	if st == nil || st.HolderID != holder.ID {
		st = &session.State{
			UserID:   userID,
			HolderID: holder.ID,
			Section:  a.navigator.InitialSection(completed),
		}
	}
	st.Latitude = holder.Latitude
	st.Longitude = holder.Longitude
	return st, completed
}

func (a *app) saveSession(c *gin.Context, st *session.State) {
	sid := c.GetString("sid")
	if sid == "" {
		return
	}
	if err := a.sessions.Put(c.Request.Context(), sid, st); err != nil {
		logger.Warn("session write failed", zap.String("sid", sid), zap.Error(err))
	}
}

func (a *app) surveyStateHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	st, completed := a.sessionState(c, holder, user.ID)
	a.saveSession(c, st)
	c.JSON(http.StatusOK, a.navigator.StateFor(st.Section, completed))
}

func (a *app) surveyAdvanceHandler(c *gin.Context) {
	a.surveyMove(c, func(cur int) (int, error) { return a.navigator.Advance(cur) })
}

func (a *app) surveyRetreatHandler(c *gin.Context) {
	a.surveyMove(c, func(cur int) (int, error) { return a.navigator.Retreat(cur) })
}

func (a *app) surveyJumpHandler(c *gin.Context) {
	var req struct {
		SectionID int `json:"section_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.surveyMove(c, func(int) (int, error) { return a.navigator.Jump(req.SectionID) })
}

func (a *app) surveyMove(c *gin.Context, move func(int) (int, error)) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	st, completed := a.sessionState(c, holder, user.ID)
	next, err := move(st.Section)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st.Section = next
	a.saveSession(c, st)
	c.JSON(http.StatusOK, a.navigator.StateFor(st.Section, completed))
}

// ---------------- section submissions ----------------

// submitSection runs the shared pipeline: auth, access, validate, save,
// report completion. save must be transactional including the progress mark.
func (a *app) submitSection(c *gin.Context, form interface{ Validate() error }, save func(holderID uint) error) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := save(holder.ID); err != nil {
		if errors.Is(err, survey.ErrUnknownSection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("section save failed", zap.Uint("holder_id", holder.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	completed, err := a.tracker.CompletedList(holder.ID)
	if err != nil {
		completed = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "section saved", "completed": completed})
}

func (a *app) submitHolderInfoHandler(c *gin.Context) {
	var form survey.HolderInfoForm
	a.submitSection(c, &form, func(holderID uint) error {
		return a.store.SaveHolderInfo(holderID, &form)
	})
}

func (a *app) submitLocationHandler(c *gin.Context) {
	var form survey.LocationForm
	a.submitSection(c, &form, func(holderID uint) error {
		return a.store.SaveLocation(holderID, &form)
	})
}

func (a *app) submitHouseholdHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !requireApproved(c, user) {
		return
	}
	holder, ok := a.holderForRequest(c, user)
	if !ok {
		return
	}
	var form survey.HouseholdForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.store.SaveHousehold(holder.ID, &form); err != nil {
		logger.Error("section save failed", zap.Uint("holder_id", holder.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	completed, err := a.tracker.CompletedList(holder.ID)
	if err != nil {
		completed = []int{}
	}
	// Inconsistent headcounts are flagged but do not block the save.
	c.JSON(http.StatusOK, gin.H{
		"message":   "section saved",
		"completed": completed,
		"warnings":  form.Warnings(),
	})
}

func (a *app) submitLabourHandler(c *gin.Context) {
	var form survey.LabourForm
	a.submitSection(c, &form, func(holderID uint) error {
		return a.store.SaveLabour(holderID, &form)
	})
}

func (a *app) submitRemarksHandler(c *gin.Context) {
	var form survey.RemarksForm
	a.submitSection(c, &form, func(holderID uint) error {
		return a.store.SaveRemarks(holderID, &form)
	})
}

// ---------------- admin ----------------

func (a *app) pendingUsersHandler(c *gin.Context) {
	var users []models.User
	if err := db.Where("status = ?", models.StatusPending).Order("created_at").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	type pendingUser struct {
		ID        uint      `json:"id"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := []pendingUser{}
	for _, u := range users {
		out = append(out, pendingUser{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, out)
}

func (a *app) approveUserHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	res := db.Model(&models.User{}).Where("id = ?", uint(id)).Update("status", models.StatusApproved)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	logger.Info("user approved", zap.Uint64("user_id", id), zap.String("by", c.GetString("username")))
	c.JSON(http.StatusOK, gin.H{"message": "user approved"})
}

// pendingHoldersHandler is the 24h review queue: holders whose owning
// account is still pending, flagged by how long they have waited.
// ?format=csv|xlsx|pdf downloads the report.
func (a *app) pendingHoldersHandler(c *gin.Context) {
	type row struct {
		HolderID  uint
		Name      string
		Username  string
		CreatedAt time.Time
	}
	var rows []row
	err := db.Model(&models.Holder{}).
		Select("holders.id as holder_id, holders.name, users.username, users.created_at").
		Joins("JOIN users ON users.id = holders.owner_id").
		Where("users.status = ?", models.StatusPending).
		Order("users.created_at").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now()
	out := make([]export.PendingHolderRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, export.PendingHolderRow{
			HolderID:     r.HolderID,
			Name:         r.Name,
			Owner:        r.Username,
			RegisteredAt: r.CreatedAt,
			Urgency:      export.UrgencyFor(r.CreatedAt, now),
		})
	}
	switch c.Query("format") {
	case "", "json":
		c.JSON(http.StatusOK, out)
	case "csv":
		data, err := export.PendingHoldersCSV(out)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "pending_holders.csv", "text/csv", data)
	case "xlsx":
		data, err := export.PendingHoldersXLSX(out)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "pending_holders.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := export.PendingHoldersPDF(out)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "pending_holders.pdf", "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format"})
	}
}

func (a *app) completionReportHandler(c *gin.Context) {
	var holders []models.Holder
	if err := db.Order("id").Find(&holders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	rows := make([]export.CompletionRow, 0, len(holders))
	for _, h := range holders {
		completed, err := a.tracker.CompletedList(h.ID)
		if err != nil {
			logger.Error("completion query failed", zap.Uint("holder_id", h.ID), zap.Error(err))
			completed = []int{}
		}
		rows = append(rows, export.CompletionRow{
			HolderID:  h.ID,
			Name:      h.Name,
			Completed: completed,
			Total:     a.registry.Count(),
		})
	}
	switch c.Query("format") {
	case "", "json":
		c.JSON(http.StatusOK, rows)
	case "csv":
		data, err := export.CompletionCSV(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "completion_report.csv", "text/csv", data)
	case "xlsx":
		data, err := export.CompletionXLSX(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "completion_report.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := export.CompletionPDF(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		sendDownload(c, "completion_report.pdf", "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format"})
	}
}

func sendDownload(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
