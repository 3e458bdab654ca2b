package utils

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope: a success flag, a
// human-readable message and an optional data payload.

func JSONSuccess(c *gin.Context, code int, message string, data interface{}) {
	if data == nil {
		c.JSON(code, gin.H{"success": true, "message": message})
		return
	}
	c.JSON(code, gin.H{"success": true, "message": message, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}
