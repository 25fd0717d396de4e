package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/shared/contextutil"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		// Angka di claims JWT selalu ter-decode sebagai float64
		rawSubjectID, ok := claims["subject_id"].(float64)
		if !ok || rawSubjectID <= 0 {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject ID not found in token", nil)
			c.Abort()
			return
		}
		subjectID := int64(rawSubjectID)

		role, _ := claims["role"].(string)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Role not found in token", nil)
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)

		c.Set("subject_id", subjectID)
		c.Set("role", role)
		c.Set("username", username)

		ctx := contextutil.WithSubjectID(c.Request.Context(), subjectID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
