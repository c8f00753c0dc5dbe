package middleware

import (
	"github.com/gin-gonic/gin"
)

// errorBody renders a failure in the same shape the graph endpoint uses, so
// clients handle transport and resolver errors alike.
func errorBody(message, code string) gin.H {
	return gin.H{
		"errors": []gin.H{{
			"message":    message,
			"extensions": gin.H{"code": code},
		}},
	}
}
