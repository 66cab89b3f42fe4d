package controllers

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-buffercalc/models"
	"go-buffercalc/utils"
)

// HistoryController 处理配方计算记录的保存与查询
type HistoryController struct {
	DB *sql.DB
}

// NewHistoryController 创建一个新的HistoryController实例
func NewHistoryController(db *sql.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// SaveRecord 保存一条计算记录
func (c *HistoryController) SaveRecord(ctx *gin.Context) {
	userID := ctx.GetInt("userID")

	var req models.SaveRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	code, err := utils.NewRecordCode()
	if err != nil {
		utils.InternalServerError(ctx, "生成记录编码失败")
		return
	}

	now := time.Now()

	result, err := c.DB.Exec(`
		INSERT INTO calculations (
			code, user_id, label, water_mass,
			request_json, recipe_json, titration_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		code, userID, req.Label, req.WaterMass,
		[]byte(req.Request), []byte(req.Recipe), []byte(req.Titration), now,
	)
	if err != nil {
		utils.InternalServerError(ctx, "保存记录失败")
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		utils.InternalServerError(ctx, "获取记录ID失败")
		return
	}

	utils.Success(ctx, models.BufferRecord{
		ID:        int(id),
		UserID:    userID,
		Code:      code,
		Label:     req.Label,
		Timestamp: now,
		WaterMass: req.WaterMass,
		Request:   req.Request,
		Recipe:    req.Recipe,
		Titration: req.Titration,
	})
}

// GetRecords 获取计算记录列表，支持日期与标签筛选和分页
func (c *HistoryController) GetRecords(ctx *gin.Context) {
	userID := ctx.GetInt("userID")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	startDate := ctx.Query("startDate")
	endDate := ctx.Query("endDate")
	label := ctx.Query("label")

	query := `
		SELECT id, user_id, code, label, created_at, water_mass,
			request_json, recipe_json, titration_json
		FROM calculations
		WHERE user_id = ?
	`
	queryParams := []interface{}{userID}

	// 添加筛选条件
	if startDate != "" && endDate != "" {
		query += " AND created_at BETWEEN ? AND ?"
		queryParams = append(queryParams, startDate, endDate)
	}

	if label != "" {
		query += " AND label LIKE ?"
		queryParams = append(queryParams, "%"+label+"%")
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	queryParams = append(queryParams, pageSize, (page-1)*pageSize)

	rows, err := c.DB.Query(query, queryParams...)
	if err != nil {
		utils.InternalServerError(ctx, "查询记录失败")
		return
	}
	defer rows.Close()

	var records []models.BufferRecord
	for rows.Next() {
		var record models.BufferRecord
		err := rows.Scan(
			&record.ID, &record.UserID, &record.Code, &record.Label,
			&record.Timestamp, &record.WaterMass,
			&record.Request, &record.Recipe, &record.Titration,
		)
		if err != nil {
			utils.InternalServerError(ctx, err.Error())
			return
		}
		records = append(records, record)
	}

	// 获取总记录数
	var totalCount int
	countQuery := "SELECT COUNT(*) FROM calculations WHERE user_id = ?"
	countParams := []interface{}{userID}

	if startDate != "" && endDate != "" {
		countQuery += " AND created_at BETWEEN ? AND ?"
		countParams = append(countParams, startDate, endDate)
	}

	if label != "" {
		countQuery += " AND label LIKE ?"
		countParams = append(countParams, "%"+label+"%")
	}

	if err := c.DB.QueryRow(countQuery, countParams...).Scan(&totalCount); err != nil {
		utils.InternalServerError(ctx, "获取总记录数失败")
		return
	}

	utils.SuccessWithPagination(ctx, records, totalCount, page, pageSize)
}

// GetRecord 按编码获取单条计算记录
func (c *HistoryController) GetRecord(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	code := ctx.Query("code")
	if code == "" {
		utils.BadRequest(ctx, "缺少记录编码")
		return
	}

	var record models.BufferRecord
	err := c.DB.QueryRow(`
		SELECT id, user_id, code, label, created_at, water_mass,
			request_json, recipe_json, titration_json
		FROM calculations
		WHERE code = ? AND user_id = ?`,
		code, userID,
	).Scan(
		&record.ID, &record.UserID, &record.Code, &record.Label,
		&record.Timestamp, &record.WaterMass,
		&record.Request, &record.Recipe, &record.Titration,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			utils.NotFound(ctx, "记录不存在")
		} else {
			utils.InternalServerError(ctx, err.Error())
		}
		return
	}

	utils.Success(ctx, record)
}
