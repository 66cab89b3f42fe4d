package controllers

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-buffercalc/middleware"
	"go-buffercalc/models"
	"go-buffercalc/utils"
)

// AuthController 处理用户认证相关的请求
type AuthController struct {
	DB *sql.DB
}

// NewAuthController 创建一个新的AuthController实例
func NewAuthController(db *sql.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	// 检查用户名是否已存在
	var count int
	err := c.DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", req.Username).Scan(&count)
	if err != nil {
		utils.InternalServerError(ctx, "数据库查询失败")
		return
	}

	if count > 0 {
		utils.BadRequest(ctx, "用户名已存在")
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalServerError(ctx, "密码加密失败")
		return
	}

	// 插入用户记录
	result, err := c.DB.Exec(
		"INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)",
		req.Username, string(hashedPassword), time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		utils.InternalServerError(ctx, "创建用户失败")
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		utils.InternalServerError(ctx, "获取用户ID失败")
		return
	}

	// 生成JWT令牌
	token, err := middleware.GenerateToken(int(userID))
	if err != nil {
		utils.InternalServerError(ctx, "生成令牌失败")
		return
	}

	utils.Success(ctx, gin.H{
		"token":    token,
		"username": req.Username,
		"userId":   userID,
	})
}

// Login 用户登录
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	// 查询用户
	var user models.User
	err := c.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = ?",
		req.Username,
	).Scan(&user.ID, &user.Username, &user.Password)

	if err != nil {
		if err == sql.ErrNoRows {
			utils.BadRequest(ctx, "用户名或密码错误")
		} else {
			utils.InternalServerError(ctx, "数据库查询失败")
		}
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.BadRequest(ctx, "用户名或密码错误")
		return
	}

	// 生成JWT令牌
	token, err := middleware.GenerateToken(user.ID)
	if err != nil {
		utils.InternalServerError(ctx, "生成令牌失败")
		return
	}

	utils.Success(ctx, gin.H{
		"token":    token,
		"username": user.Username,
		"userId":   user.ID,
	})
}
