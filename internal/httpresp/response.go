package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/pagination"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Page is the envelope of every paginated listing.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Paged[T any](c *gin.Context, items []T, total int64, page, size int) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pagination.Pages(total, size),
	})
}
