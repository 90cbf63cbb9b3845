// Package response writes the admin JSON envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeInternal     = 500
)

const RequestIDKey = "request_id"

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 根据总数计算总页数
func NewPagination(page, pageSize int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error writes an error envelope. The HTTP status mirrors the envelope code.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(httpStatus(code), Response{
		StatusCode: code,
		Msg:        msg,
		Data:       attachRequestID(c, nil),
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, code int, msg string) {
	Error(c, code, msg)
	c.Abort()
}

func NotFound(c *gin.Context, msg string)     { Error(c, CodeNotFound, msg) }
func BadRequest(c *gin.Context, msg string)   { Error(c, CodeBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string) { Error(c, CodeUnauthorized, msg) }

func httpStatus(code int) int {
	if code >= 400 && code < 600 {
		return code
	}
	return http.StatusOK
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	return data
}
