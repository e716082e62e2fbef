package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

type fakeParser struct {
	claims *casdoorsdk.Claims
	err    error
}

func (f fakeParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	if token != "good" {
		return nil, errors.New("signature mismatch")
	}
	return f.claims, f.err
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f fakeUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, ok := f.users[id]
	return ok && u.Role == role, nil
}

func newAuthRouter(cam *CasdoorAuthMiddleware, roles ...models.UserRole) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{cam.AuthMiddleware()}
	if len(roles) > 0 {
		handlers = append(handlers, cam.RequireRoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := GetUserRoleFromContext(c)
		c.String(http.StatusOK, c.GetString("user_id")+"/"+string(role))
	})
	router.GET("/me", handlers...)
	return router
}

func TestCasdoorAuthMiddleware(t *testing.T) {
	claims := &casdoorsdk.Claims{User: casdoorsdk.User{Id: "u-9", Type: "teacher", Email: "t@example.com"}}

	tests := []struct {
		name       string
		header     string
		users      map[string]*models.User
		roles      []models.UserRole
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{
			name:       "directory user",
			header:     "Bearer good",
			users:      map[string]*models.User{"u-9": {ID: "u-9", Role: models.RoleAdmin}},
			wantStatus: http.StatusOK,
			wantBody:   "u-9/admin",
		},
		{
			name:       "falls back to claims",
			header:     "bearer good",
			wantStatus: http.StatusOK,
			wantBody:   "u-9/teacher",
		},
		{
			name:       "role required",
			header:     "Bearer good",
			users:      map[string]*models.User{"u-9": {ID: "u-9", Role: models.RoleStudent}},
			roles:      []models.UserRole{models.RoleTeacher},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin passes role check",
			header:     "Bearer good",
			users:      map[string]*models.User{"u-9": {ID: "u-9", Role: models.RoleAdmin}},
			roles:      []models.UserRole{models.RoleTeacher},
			wantStatus: http.StatusOK,
			wantBody:   "u-9/admin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := &CasdoorAuthMiddleware{
				parser:   fakeParser{claims: claims},
				userRepo: fakeUserRepo{users: tt.users},
				logger:   testLogger(),
			}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(cam, tt.roles...).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestCasdoorAuthMiddleware_EmptySubject(t *testing.T) {
	cam := &CasdoorAuthMiddleware{
		parser:   fakeParser{claims: &casdoorsdk.Claims{}},
		userRepo: fakeUserRepo{},
		logger:   testLogger(),
	}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	newAuthRouter(cam).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
