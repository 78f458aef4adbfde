package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/models"
	"finanmind/internal/services"
)

func setupProfileRouter(handler *ProfileHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/user", injectUserID(1))
	g.GET("/profile", handler.GetProfile)
	g.PUT("/profile", handler.UpdateProfile)
	g.PUT("/password", handler.ChangePassword)
	g.DELETE("/profile", handler.DeleteProfile)
	return r
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with user profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Name: "Ana", Email: "ana@example.com"}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/user/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["name"] != "Ana" || user["id"] != float64(1) {
			t.Errorf("unexpected user %v", user)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewProfileHandler(&mockUserService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/user/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/user/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 404 when user not found", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(_ uint) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupProfileRouter(NewProfileHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/user/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("updates and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		var gotName, gotEmail string
		userSvc := &mockUserService{
			updateProfileFn: func(userID uint, name, email string) (*models.User, error) {
				gotName, gotEmail = name, email
				return &models.User{Base: models.Base{ID: userID}, Name: name, Email: email}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(userSvc, audit))

		rec := doRequest(r, "PUT", "/user/profile", `{"name":"Bia","email":"bia@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotName != "Bia" || gotEmail != "bia@example.com" {
			t.Errorf("unexpected arguments %q %q", gotName, gotEmail)
		}
		if len(audit.actions) != 1 || audit.actions[0] != services.AuditActionProfileUpdate {
			t.Errorf("expected a profile update audit entry, got %v", audit.actions)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		audit := &mockAuditService{}
		userSvc := &mockUserService{
			updateProfileFn: func(_ uint, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupProfileRouter(NewProfileHandler(userSvc, audit))

		rec := doRequest(r, "PUT", "/user/profile", `{"email":"taken@example.com"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if len(audit.actions) != 0 {
			t.Errorf("failed updates must not be audited, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on invalid email", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/user/profile", `{"email":"nope"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/user/password", `{"current_password":"password123","new_password":"newpass1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 401 on wrong current password", func(t *testing.T) {
		userSvc := &mockUserService{
			changePasswordFn: func(_ uint, _, _ string) error {
				return apperrors.WithMessage(apperrors.ErrInvalidCredentials, "Current password is incorrect")
			},
		}
		r := setupProfileRouter(NewProfileHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/user/password", `{"current_password":"wrong","new_password":"newpass1"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on short new password", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/user/password", `{"current_password":"password123","new_password":"123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProfileHandler_DeleteProfile(t *testing.T) {
	audit := &mockAuditService{}
	var deleted uint
	userSvc := &mockUserService{
		deleteUserFn: func(userID uint) error {
			deleted = userID
			return nil
		},
	}
	r := setupProfileRouter(NewProfileHandler(userSvc, audit))

	rec := doRequest(r, "DELETE", "/user/profile", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != 1 {
		t.Errorf("expected user 1 deleted, got %d", deleted)
	}
	if len(audit.actions) != 1 || audit.actions[0] != services.AuditActionAccountDelete {
		t.Errorf("expected an account delete audit entry, got %v", audit.actions)
	}
}
