package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseQueryInt parses an integer query parameter
func parseQueryInt(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}
