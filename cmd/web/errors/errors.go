package errors

import "github.com/gin-gonic/gin"

// HTTPError is the JSON body of every failed API call
type HTTPError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"status bad request"`
}

// NewError aborts the request with status and err rendered as an HTTPError
func NewError(ctx *gin.Context, status int, err error) {
	ctx.AbortWithStatusJSON(status, HTTPError{
		Code:    status,
		Message: err.Error(),
	})
}
