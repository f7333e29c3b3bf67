package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"moderation-platform/internal/audit"
	"moderation-platform/internal/auth"
	"moderation-platform/internal/comments"
	"moderation-platform/internal/reporting"
	"moderation-platform/internal/settings"
	"moderation-platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth      *auth.Manager
	Comments  *comments.Service
	Settings  *settings.Store
	Audit     *audit.Service
	Reporting *reporting.Service

	// IPHashSalt is used to hash the client IP before it enters the pipeline.
	IPHashSalt string
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	SiteID string `json:"site_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.SiteID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, site_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.SiteID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Comments (public submission) ---

type submitCommentRequest struct {
	SiteID       string `json:"site_id"`
	PostID       string `json:"post_id"`
	AuthorName   string `json:"author_name"`
	AuthorEmail  string `json:"author_email,omitempty"`
	Body         string `json:"body"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// SubmitComment runs the spam pipeline for a visitor submission.
// The raw client IP is hashed here and never crosses into internal layers.
func (h Handlers) SubmitComment(c *gin.Context) {
	if h.Comments == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "comments not configured"})
		return
	}
	var req submitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res, err := h.Comments.Submit(c.Request.Context(), comments.SubmitRequest{
		SiteID:       req.SiteID,
		PostID:       req.PostID,
		AuthorName:   req.AuthorName,
		AuthorEmail:  req.AuthorEmail,
		Body:         req.Body,
		IPHash:       utils.HashIP(c.ClientIP(), h.IPHashSalt),
		CaptchaToken: req.CaptchaToken,
	})
	switch {
	case errors.Is(err, comments.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "site_id, author_name, body required"})
		return
	case errors.Is(err, comments.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- Admin: settings ---

func (h Handlers) GetSpamSettings(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	s, err := h.Settings.Get(c.Request.Context(), siteID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "settings lookup failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h Handlers) UpdateSpamSettings(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	var patch settings.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	s, err := h.Settings.Update(c.Request.Context(), siteID, patch)
	if err != nil {
		if errors.Is(err, settings.ErrInvalid) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "settings update failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// --- Admin: audit ---

func (h Handlers) ListAuditEntries(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from/to must be RFC3339 with to after from"})
		return
	}
	entries, err := h.Audit.List(c.Request.Context(), siteID, from, to, 500)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type replayRequest struct {
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Settings settings.Patch `json:"settings"`
}

// ReplayAudit re-evaluates recorded decisions against candidate settings
// (current settings with the provided patch applied). Nothing is persisted;
// this is the tuning dry-run the audit trail exists for.
func (h Handlers) ReplayAudit(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	var req replayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.From.IsZero() || req.To.IsZero() || !req.To.After(req.From) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from/to range required"})
		return
	}

	candidate, err := h.Settings.Preview(c.Request.Context(), siteID, req.Settings)
	if err != nil {
		if errors.Is(err, settings.ErrInvalid) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "settings lookup failed"})
		return
	}

	entries, err := h.Audit.List(c.Request.Context(), siteID, req.From, req.To, 10000)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit lookup failed"})
		return
	}
	c.JSON(http.StatusOK, audit.Replay(entries, candidate))
}

// --- Admin: reporting ---

func (h Handlers) DecisionSummary(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from/to must be RFC3339 with to after from"})
		return
	}
	sum, err := h.Reporting.DecisionSummary(c.Request.Context(), reporting.DecisionSummaryRequest{
		SiteID: siteID,
		Range:  reporting.TimeRange{From: from, To: to},
	})
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// --- Admin: moderation queue ---

func (h Handlers) ListComments(c *gin.Context) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	status := comments.Status(c.DefaultQuery("status", string(comments.StatusHeld)))
	switch status {
	case comments.StatusPublished, comments.StatusHeld, comments.StatusRejected:
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	list, err := h.Comments.ListByStatus(c.Request.Context(), siteID, status, 50)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": list})
}

func (h Handlers) ApproveComment(c *gin.Context) {
	h.moderate(c, h.Comments.Approve)
}

func (h Handlers) RejectComment(c *gin.Context) {
	h.moderate(c, h.Comments.Reject)
}

func (h Handlers) moderate(c *gin.Context, action func(ctx context.Context, siteID, commentID, actorUserID string) (comments.Comment, error)) {
	siteID, err := auth.SiteID(c.Request.Context())
	if err != nil || siteID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "site_id required"})
		return
	}
	actorUserID, _ := auth.UserID(c.Request.Context())
	commentID := c.Param("comment_id")
	if commentID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "comment_id required"})
		return
	}

	out, err := action(c.Request.Context(), siteID, commentID, actorUserID)
	switch {
	case errors.Is(err, comments.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	case errors.Is(err, comments.ErrNotHeld):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "comment is not held"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "moderation failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, time.Time{}, false
		}
	} else {
		from = time.Now().UTC().Add(-24 * time.Hour)
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, time.Time{}, false
		}
	} else {
		to = time.Now().UTC()
	}
	return from, to, to.After(from)
}
