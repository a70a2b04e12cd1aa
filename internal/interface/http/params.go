package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/domain/pagination"
)

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func cursorParams(c *gin.Context) pagination.Cursor {
	return pagination.Cursor{
		Limit:  intQuery(c, "limit"),
		After:  c.Query("after"),
		Before: c.Query("before"),
	}
}

func offsetParams(c *gin.Context) pagination.Offset {
	return pagination.Offset{
		Limit: intQuery(c, "limit"),
		Skip:  intQuery(c, "skip"),
	}
}
