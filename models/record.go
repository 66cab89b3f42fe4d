package models

import (
	"encoding/json"
	"time"
)

// BufferRecord 一条已保存的配方计算记录
// 输入与结果按 JSON 原样落库，code 为可分享的短编码
type BufferRecord struct {
	ID        int             `json:"id"`
	UserID    int             `json:"userId"`
	Code      string          `json:"code"`
	Label     string          `json:"label"`
	Timestamp time.Time       `json:"timestamp"`
	WaterMass float64         `json:"waterMass"`
	Request   json.RawMessage `json:"request"`
	Recipe    json.RawMessage `json:"recipe"`
	Titration json.RawMessage `json:"titration"`
}

// SaveRecordRequest 保存记录请求
type SaveRecordRequest struct {
	Label     string          `json:"label"`
	WaterMass float64         `json:"waterMass"`
	Request   json.RawMessage `json:"request" binding:"required"`
	Recipe    json.RawMessage `json:"recipe" binding:"required"`
	Titration json.RawMessage `json:"titration"`
}
