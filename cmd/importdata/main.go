// Command importdata bulk-loads ingredient reference data from a CSV file
// (name,measurement_unit per row, header skipped) and optionally tags from a
// second file (name,slug).
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/foodgram-backend/config"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/pkg/database"
	"github.com/d60-Lab/foodgram-backend/pkg/logger"
)

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.csv", "ingredient CSV file")
	tagsPath := flag.String("tags", "", "optional tag CSV file (name,slug)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Server.Mode)
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	n, err := importIngredients(db, *ingredientsPath)
	if err != nil {
		logger.Fatal("ingredient import failed", zap.Error(err))
	}
	logger.Info("ingredients imported", zap.Int("count", n))

	if *tagsPath != "" {
		n, err := importTags(db, *tagsPath)
		if err != nil {
			logger.Fatal("tag import failed", zap.Error(err))
		}
		logger.Info("tags imported", zap.Int("count", n))
	}
}

func importIngredients(db *gorm.DB, path string) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	ingredients := make([]model.Ingredient, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			logger.Warn("skipping malformed row", zap.Strings("row", row))
			continue
		}
		ingredients = append(ingredients, model.Ingredient{Name: row[0], MeasurementUnit: row[1]})
	}
	if len(ingredients) == 0 {
		return 0, nil
	}
	// re-runs should not fail on rows already present
	err = db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&ingredients, 500).Error
	return len(ingredients), err
}

func importTags(db *gorm.DB, path string) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	tags := make([]model.Tag, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			logger.Warn("skipping malformed row", zap.Strings("row", row))
			continue
		}
		tags = append(tags, model.Tag{Name: row[0], Slug: row[1]})
	}
	if len(tags) == 0 {
		return 0, nil
	}
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
	return len(tags), err
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil && err != io.EOF { // header
		return nil, err
	}
	return r.ReadAll()
}
