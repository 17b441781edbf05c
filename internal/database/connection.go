// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/threadforge/pod-backend/internal/config"
	"github.com/threadforge/pod-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid() ships with pgcrypto on PostgreSQL < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.ProductType{},
		&models.DesignArea{},
		&models.DesignAreaGroup{},
		&models.ArtworkAsset{},
		&models.Transaction{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product type indexes
		"CREATE INDEX IF NOT EXISTS idx_product_types_status_sort ON product_types(status, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_product_types_category ON product_types(category)",

		// Design area indexes
		"CREATE INDEX IF NOT EXISTS idx_design_areas_product_active ON design_areas(product_type_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_design_areas_product_sort ON design_areas(product_type_id, sort_order, created_at)",

		// Design area group indexes
		"CREATE INDEX IF NOT EXISTS idx_design_area_groups_product_active ON design_area_groups(product_type_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_design_area_groups_product_sort ON design_area_groups(product_type_id, sort_order, created_at)",

		// Artwork indexes
		"CREATE INDEX IF NOT EXISTS idx_artwork_assets_checksum ON artwork_assets(checksum)",
		"CREATE INDEX IF NOT EXISTS idx_artwork_assets_status_created ON artwork_assets(status, created_at DESC)",

		// Transaction indexes
		"CREATE INDEX IF NOT EXISTS idx_transactions_quote_reference ON transactions(quote_reference)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_status ON transactions(transaction_type, status)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var productCount int64
	db.Model(&models.ProductType{}).Count(&productCount)
	if productCount > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	if err := seedClassicTee(db); err != nil {
		return fmt.Errorf("failed to seed classic tee: %w", err)
	}
	if err := seedPulloverHoodie(db); err != nil {
		return fmt.Errorf("failed to seed pullover hoodie: %w", err)
	}

	log.Println("Initial data seeding completed")
	return nil
}

func seedClassicTee(db *gorm.DB) error {
	tee := &models.ProductType{
		Name:        "Classic Tee",
		Slug:        "classic-tee",
		Category:    "apparel",
		Description: "Midweight cotton tee available for screen print and DTG",
		BasePrice:   12.00,
		Currency:    "USD",
		Sizes:       pq.StringArray{"S", "M", "L", "XL", "2XL"},
		Colors:      pq.StringArray{"white", "black", "navy", "heather-grey"},
		Status:      models.ProductTypeStatusActive,
		SortOrder:   1,
	}
	if err := db.Create(tee).Error; err != nil {
		return err
	}

	areas := []*models.DesignArea{
		{
			ProductTypeID: tee.ID,
			AreaType:      models.AreaTypeFront,
			Name:          "Front Center",
			BasePrice:     2.50,
			ColorPrice:    0.75,
			LayerPrice:    1.25,
			SetupFee:      5.00,
			Currency:      "USD",
			MaxColors:     8,
			PrintWidthIn:  12,
			PrintHeightIn: 14,
			PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint), string(models.PrintMethodDTG)},
			IsActive:      true,
			SortOrder:     1,
		},
		{
			ProductTypeID: tee.ID,
			AreaType:      models.AreaTypeBack,
			Name:          "Back Full",
			BasePrice:     3.00,
			ColorPrice:    0.75,
			LayerPrice:    1.25,
			SetupFee:      5.00,
			Currency:      "USD",
			MaxColors:     8,
			PrintWidthIn:  12,
			PrintHeightIn: 14,
			PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint), string(models.PrintMethodDTG)},
			IsActive:      true,
			SortOrder:     2,
		},
		{
			ProductTypeID: tee.ID,
			AreaType:      models.AreaTypeSleeveLeft,
			Name:          "Left Sleeve",
			BasePrice:     1.50,
			ColorPrice:    0.50,
			LayerPrice:    0.75,
			SetupFee:      3.00,
			Currency:      "USD",
			MaxColors:     4,
			PrintWidthIn:  3.5,
			PrintHeightIn: 12,
			PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint)},
			IsActive:      true,
			SortOrder:     3,
		},
		{
			ProductTypeID: tee.ID,
			AreaType:      models.AreaTypeSleeveRight,
			Name:          "Right Sleeve",
			BasePrice:     1.50,
			ColorPrice:    0.50,
			LayerPrice:    0.75,
			SetupFee:      3.00,
			Currency:      "USD",
			MaxColors:     4,
			PrintWidthIn:  3.5,
			PrintHeightIn: 12,
			PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint)},
			IsActive:      true,
			SortOrder:     4,
		},
	}

	areaIDs := make(pq.StringArray, 0, len(areas))
	for _, area := range areas {
		if err := db.Create(area).Error; err != nil {
			return err
		}
		areaIDs = append(areaIDs, area.ID.String())
	}

	group := &models.DesignAreaGroup{
		ProductTypeID: tee.ID,
		Name:          "Full Coverage Bundle",
		Strategy:      models.PricingStrategyTiered,
		Currency:      "USD",
		AreaIDs:       areaIDs,
		MaxDesigns:    len(areaIDs),
		IsActive:      true,
		SortOrder:     1,
	}
	return db.Create(group).Error
}

func seedPulloverHoodie(db *gorm.DB) error {
	hoodie := &models.ProductType{
		Name:        "Pullover Hoodie",
		Slug:        "pullover-hoodie",
		Category:    "apparel",
		Description: "Heavyweight fleece hoodie with front pouch",
		BasePrice:   28.00,
		Currency:    "USD",
		Sizes:       pq.StringArray{"S", "M", "L", "XL", "2XL"},
		Colors:      pq.StringArray{"black", "charcoal", "maroon"},
		Status:      models.ProductTypeStatusActive,
		SortOrder:   2,
	}
	if err := db.Create(hoodie).Error; err != nil {
		return err
	}

	front := &models.DesignArea{
		ProductTypeID: hoodie.ID,
		AreaType:      models.AreaTypeFront,
		Name:          "Front Chest",
		BasePrice:     3.50,
		ColorPrice:    1.00,
		LayerPrice:    1.50,
		SetupFee:      6.00,
		Currency:      "USD",
		MaxColors:     6,
		PrintWidthIn:  12,
		PrintHeightIn: 14,
		PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint), string(models.PrintMethodDTG)},
		IsActive:      true,
		SortOrder:     1,
	}
	back := &models.DesignArea{
		ProductTypeID: hoodie.ID,
		AreaType:      models.AreaTypeBack,
		Name:          "Back Full",
		BasePrice:     4.00,
		ColorPrice:    1.00,
		LayerPrice:    1.50,
		SetupFee:      6.00,
		Currency:      "USD",
		MaxColors:     6,
		PrintWidthIn:  12,
		PrintHeightIn: 14,
		PrintMethods:  pq.StringArray{string(models.PrintMethodScreenPrint), string(models.PrintMethodDTG)},
		IsActive:      true,
		SortOrder:     2,
	}
	for _, area := range []*models.DesignArea{front, back} {
		if err := db.Create(area).Error; err != nil {
			return err
		}
	}

	groupPrice := int64(900)
	combo := &models.DesignAreaGroup{
		ProductTypeID: hoodie.ID,
		Name:          "Front and Back Combo",
		Strategy:      models.PricingStrategySingleCharge,
		GroupPrice:    &groupPrice,
		Currency:      "USD",
		AreaIDs:       pq.StringArray{front.ID.String(), back.ID.String()},
		MaxDesigns:    2,
		IsActive:      true,
		SortOrder:     1,
	}
	return db.Create(combo).Error
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
