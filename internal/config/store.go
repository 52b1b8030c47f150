package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-queue/internal/adapters/persistence/blob"
	"clinic-queue/internal/adapters/persistence/recordstore"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStore opens the record store selected by cfg.Store.Driver
func OpenStore(ctx context.Context, cfg *Config) (recordstore.Store, error) {
	switch cfg.Store.Driver {
	case "", "fs":
		fs, err := blob.NewFilesystem(cfg.Store.FSRoot)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Record store ready [fs: %s]", fs.Root())
		return recordstore.NewBlobStore(fs), nil

	case "memory":
		log.Println("⚠️ Record store is in-memory, data is lost on restart")
		return recordstore.NewBlobStore(blob.NewMemory()), nil

	case "s3":
		s3, err := blob.NewS3(ctx, blob.S3Config{
			Bucket:    cfg.Store.S3.Bucket,
			Region:    cfg.Store.S3.Region,
			Endpoint:  cfg.Store.S3.Endpoint,
			PathStyle: cfg.Store.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 store: %w", err)
		}
		log.Printf("✅ Record store ready [s3: %s]", cfg.Store.S3.Bucket)
		return recordstore.NewBlobStore(s3), nil

	case "sqlite":
		s, err := recordstore.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Record store ready [sqlite: %s]", s.Path())
		return s, nil

	case "mysql", "postgres":
		db, err := ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		s := recordstore.NewGormStore(db, cfg.Store.Driver)
		if err := s.Migrate(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to migrate collections table: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// ConnectDatabase establishes the gorm connection for the SQL drivers
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case "postgres":
		dialector = postgres.Open(buildPostgresDSN(cfg.Database))
	default:
		dialector = mysql.Open(buildMySQLDSN(cfg.Database))
	}

	// Configure GORM logger based on mode
	var gormLogger logger.Interface
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connected successfully [%s %s:%s/%s]",
		cfg.Store.Driver,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	return db, nil
}

// buildMySQLDSN returns the MySQL connection string
func buildMySQLDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// buildPostgresDSN returns the PostgreSQL connection string
func buildPostgresDSN(d DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}
