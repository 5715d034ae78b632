package database

import (
	"fmt"

	"ledgerboard/config"
	"ledgerboard/logger"
	"ledgerboard/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接并迁移表结构
func Init(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	level := gormlogger.Info
	if cfg.Server.Mode == "release" {
		level = gormlogger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := Migrate(DB); err != nil {
		return nil, fmt.Errorf("迁移数据库失败: %w", err)
	}

	logger.L().Infof("数据库初始化成功")
	return DB, nil
}

// Migrate 自动迁移账本表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
	)
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
