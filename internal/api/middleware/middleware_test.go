package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

// ── RequestID ──

func TestRequestID_Generate(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if rid := w.Header().Get(requestIDHeader); len(rid) != 36 {
		t.Errorf("期望生成 UUID，实际 %q", rid)
	}
}

func TestRequestID_Propagate(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", okHandler)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if rid := w.Header().Get(requestIDHeader); rid != "abc-123" {
		t.Errorf("期望沿用 abc-123，实际 %q", rid)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if rid := w.Header().Get(requestIDHeader); len(rid) > requestIDMaxLen {
		t.Error("过长的 Request-ID 应被替换")
	}
}

// ── Logger ──

func TestLogger_IncludesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/courses", okHandler)

	req := httptest.NewRequest("GET", "/courses", nil)
	req.Header.Set(requestIDHeader, "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("请求完成").All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条请求日志，实际 %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "rid-1" {
		t.Errorf("日志应携带 request_id=rid-1，实际 %v", got)
	}
}

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	if logs.FilterMessage("客户端错误").Len() != 1 {
		t.Error("4xx 应记录为 Warn")
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("期望 500，实际 %d", w.Code)
	}
	if logs.Len() != 1 {
		t.Error("panic 应被记录")
	}
}

// ── RateLimit ──

type fakeLimiter struct {
	counts map[string]int
	err    error
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.counts[key]++
	return f.counts[key] <= limit, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{counts: map[string]int{}}
	r := gin.New()
	r.POST("/enroll/:user_id/:course_id", RateLimit(limiter, 2, time.Minute), okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/enroll/1/1", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("期望 200,200,429，实际 %v", codes)
	}
}

func TestRateLimit_Degrade(t *testing.T) {
	for name, limiter := range map[string]RateLimiter{
		"未启用":     nil,
		"Redis 出错": &fakeLimiter{err: errors.New("redis down")},
	} {
		r := gin.New()
		r.POST("/enroll/:user_id/:course_id", RateLimit(limiter, 1, time.Minute), okHandler)

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("POST", "/enroll/1/1", nil))
			if w.Code != http.StatusOK {
				t.Errorf("%s: 期望降级放行，实际 %d", name, w.Code)
			}
		}
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.PUT("/courses/:course_id", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PUT", "/courses/1", bytes.NewReader(make([]byte, 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PUT", "/courses/1", strings.NewReader(`{"capacity":1}`)))
	if w.Code != http.StatusOK {
		t.Errorf("未超限请求期望 200，实际 %d", w.Code)
	}
}

// ── CORS / SecurityHeaders ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/courses", okHandler)

	req := httptest.NewRequest("OPTIONS", "/courses", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求期望 204，实际 %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin 不符: %q", got)
	}

	req = httptest.NewRequest("GET", "/courses", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应返回 Allow-Origin")
	}
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/courses", okHandler)

	req := httptest.NewRequest("GET", "/courses", nil)
	req.Header.Set("Origin", "http://any.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://any.example" {
		t.Errorf("通配配置应回显来源，实际 %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("安全响应头缺失: %v", w.Header())
	}
}
