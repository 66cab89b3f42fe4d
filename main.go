package main

import (
	"log"

	"go-buffercalc/config"
	"go-buffercalc/phreeqc"
	"go-buffercalc/routes"
)

func main() {
	// 初始化数据库连接
	config.InitDB()

	// 设置路由，求解器走本地 phreeqc 可执行文件
	r := routes.SetupRouter(config.DB, phreeqc.NewRunner())

	// 启动服务器
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
