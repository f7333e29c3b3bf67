package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"moderation-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func TestRequireAnyRole_SuperAdminBypasses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", "s", RoleSuperAdmin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, RequireSite(), RequireAnyRole(RoleOwner), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAnyRole_EditorReadOnlySplit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Mirrors the moderation queue policy: editors can read the queue but the
	// act routes do not list them.
	r := gin.New()
	withEditor := func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", "s", RoleEditor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
	ok := func(c *gin.Context) { c.Status(200) }
	r.GET("/queue", withEditor, RequireSite(), RequireAnyRole(RoleOwner, RoleModerator, RoleEditor), ok)
	r.POST("/queue/approve", withEditor, RequireSite(), RequireAnyRole(RoleOwner, RoleModerator), ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/queue", nil))
	if w.Code != 200 {
		t.Fatalf("editor read: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/queue/approve", nil))
	if w.Code != 403 {
		t.Fatalf("editor act: expected 403, got %d", w.Code)
	}
}

func TestRequireAnyRole_UnlistedRoleForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", "s", RoleEditor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, RequireSite(), RequireAnyRole(RoleOwner, RoleModerator), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAnyRole_SiteRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", "", RoleOwner)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, RequireSite(), RequireAnyRole(RoleOwner), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
