package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adilbek/photogallery/internal/config"
	"github.com/gin-gonic/gin"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{AccessTokenSecret: "test-secret"}
}

func TestValidateAccessTokenRoundTrip(t *testing.T) {
	service := NewService(testConfig())

	token, err := service.SignAccessToken(Actor{ID: "u1", Email: "u1@example.com", IsAdmin: true}, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := service.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("expected subject u1, got %q", claims.Subject)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin claim to survive the round trip")
	}
	if claims.Actor().Email != "u1@example.com" {
		t.Fatalf("unexpected email: %q", claims.Actor().Email)
	}
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	service := NewService(testConfig())

	token, err := service.SignAccessToken(Actor{ID: "u1"}, -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := service.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(config.AuthConfig{AccessTokenSecret: "other-secret"})
	service := NewService(testConfig())

	token, err := issuer.SignAccessToken(Actor{ID: "u1"}, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := service.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}

func TestAuthMiddlewareInjectsActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := NewService(testConfig())

	token, err := service.SignAccessToken(Actor{ID: "admin-1", IsAdmin: true}, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r := gin.New()
	r.Use(AuthMiddleware(service))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := RequireActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, actor.ID)
	})

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "admin-1" {
		t.Fatalf("expected actor id in body, got %q", rr.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := NewService(testConfig())

	r := gin.New()
	r.Use(AuthMiddleware(service))
	r.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
