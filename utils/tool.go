package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid"
)

// 记录编码字符集，去掉易混淆字符
const codeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewRecordCode 生成16位记录编码
func NewRecordCode() (string, error) {
	return gonanoid.Generate(codeAlphabet, 16)
}

// QueryFloat 若查询参数存在且为数字，写入目标
func QueryFloat(c *gin.Context, key string, dst *float64) {
	if s := c.Query(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*dst = v
		}
	}
}

// QueryString 若查询参数存在，写入目标
func QueryString(c *gin.Context, key string, dst *string) {
	if s := c.Query(key); s != "" {
		*dst = s
	}
}
