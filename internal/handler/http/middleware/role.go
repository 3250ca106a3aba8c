package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/user"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
)

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		if user.Role(roleStr) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSupervisor requires supervisor or admin role
func RequireSupervisor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrSupervisorAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrSupervisorAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleSupervisor && role != user.RoleAdmin {
			response.HandleError(w, user.ErrSupervisorAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
