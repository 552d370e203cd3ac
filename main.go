package main

import (
	"flag"
	"log"
	"skillbloom_backend/internal/app"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
