package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	errResp := dto.NewErrorResponse(code, message).WithTraceID(dto.GetTraceID(c))
	c.AbortWithStatusJSON(dto.HTTPStatusFromCode(code), errResp)
}

func noRoute(c *gin.Context) {
	AbortWithErrorCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
}

func noMethod(c *gin.Context) {
	errResp := dto.NewErrorResponse(dto.ErrorCodeBadRequest, "method not allowed").WithTraceID(dto.GetTraceID(c))
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errResp)
}
