package main

import (
	"moderation-platform/internal/audit"
	"moderation-platform/internal/auth"
	"moderation-platform/internal/comments"
	"moderation-platform/internal/httpapi"
	"moderation-platform/internal/rbac"
	"moderation-platform/internal/reporting"
	"moderation-platform/internal/settings"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	Auth       *auth.Manager
	Comments   *comments.Service
	Settings   *settings.Store
	Audit      *audit.Service
	Reporting  *reporting.Service
	IPHashSalt string
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, deps routeDeps) {
	h := httpapi.Handlers{
		Auth:       deps.Auth,
		Comments:   deps.Comments,
		Settings:   deps.Settings,
		Audit:      deps.Audit,
		Reporting:  deps.Reporting,
		IPHashSalt: deps.IPHashSalt,
	}

	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Visitor comment submission (public). Flood control happens inside the
	// service via the Redis limiter keyed on site + hashed IP.
	r.POST("/comments", h.SubmitComment)

	// AUTH routes (token issuance, public).
	// NOTE: Placeholder credential validation; see Handlers.Login.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAccessToken(deps.Auth))
	{
		// ADMIN routes: spam settings, audit trail, moderation queue.
		admin := v1.Group("/admin")
		admin.Use(rbac.RequireSite())
		{
			spam := admin.Group("/spam")
			spam.Use(rbac.RequireAnyRole(rbac.RoleOwner))
			{
				spam.GET("/settings", h.GetSpamSettings)
				spam.PATCH("/settings", h.UpdateSpamSettings)
				spam.GET("/audit", h.ListAuditEntries)
				spam.POST("/audit/replay", h.ReplayAudit)
				spam.GET("/summary", h.DecisionSummary)
			}

			// Editors may read the moderation queue; acting on it stays with
			// owners and moderators.
			mod := admin.Group("/comments")
			{
				mod.GET("", rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleModerator, rbac.RoleEditor), h.ListComments)

				act := rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleModerator)
				mod.POST("/:comment_id/approve", act, h.ApproveComment)
				mod.POST("/:comment_id/reject", act, h.RejectComment)
			}
		}
	}
}
