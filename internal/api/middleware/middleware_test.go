package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"campus-timetable/config"
	"campus-timetable/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16",
		Issuer:         "campus-auth",
		AccessTokenTTL: time.Minute,
	})
}

// echoClaims 返回中间件注入的上下文字段
func echoClaims(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":  c.GetString("user_id"),
		"role":     c.GetString("role"),
		"staff_id": c.GetString("staff_id"),
		"batch_id": c.GetString("batch_id"),
	})
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth_InjectsClaims(t *testing.T) {
	mgr := newTestManager()
	token, err := mgr.GenerateAccessToken(jwt.Identity{UserID: "u1", Role: jwt.RoleTeacher, StaffID: "T1"})
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), echoClaims)
	w := doRequest(r, "GET", "/me", token)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"staff_id":"T1"`) || !strings.Contains(body, `"role":"teacher"`) {
		t.Errorf("上下文字段缺失: %s", body)
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	mgr := newTestManager()
	other := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-0000", Issuer: "campus-auth", AccessTokenTTL: time.Minute})
	forged, _ := other.GenerateAccessToken(jwt.Identity{UserID: "u1", Role: jwt.RoleAdmin})

	cases := []struct {
		name   string
		header string
	}{
		{"缺少认证头", ""},
		{"非 Bearer", "Basic abc"},
		{"伪造签名", "Bearer " + forged},
		{"乱码", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", JWTAuth(mgr, nil), echoClaims)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("期望 401，实际 %d", w.Code)
			}
		})
	}
}

// ── RoleAuth ──

func TestRoleAuth(t *testing.T) {
	mgr := newTestManager()
	student, _ := mgr.GenerateAccessToken(jwt.Identity{UserID: "u2", Role: jwt.RoleStudent, BatchID: "b1"})
	admin, _ := mgr.GenerateAccessToken(jwt.Identity{UserID: "u3", Role: jwt.RoleAdmin})

	r := gin.New()
	r.POST("/entries", JWTAuth(mgr, nil), RoleAuth(jwt.RoleAdmin), echoClaims)

	if w := doRequest(r, "POST", "/entries", student); w.Code != http.StatusForbidden {
		t.Errorf("学生写入期望 403，实际 %d", w.Code)
	}
	if w := doRequest(r, "POST", "/entries", admin); w.Code != http.StatusOK {
		t.Errorf("管理员写入期望 200，实际 %d", w.Code)
	}
}

func TestRoleAuth_NoRole(t *testing.T) {
	r := gin.New()
	r.GET("/x", RoleAuth(jwt.RoleAdmin), echoClaims)

	if w := doRequest(r, "GET", "/x", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

// ── 其他中间件 ──

func TestRateLimit_NilRedisPasses(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if w := doRequest(r, "GET", "/x", ""); w.Code != http.StatusOK {
			t.Fatalf("第 %d 次请求期望 200，实际 %d", i+1, w.Code)
		}
	}
}

func TestBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"entries":[]}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("应沿用请求头中的 ID，实际 %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("超长 ID 应被替换为 UUID，实际 %q", got)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("允许的来源未回写: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未授权来源不应回写 CORS 头")
	}
}
