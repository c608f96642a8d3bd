package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models in dependency order
// (referenced tables first).
func AllModels() []any {
	return []any{
		&Legislator{},
		&Party{},
		&Jurisdiction{},
		&Chamber{},
		&District{},
		&Term{},
	}
}

// TableNames returns table names in dependency order.
func TableNames() []string {
	models := AllModels()
	res := make([]string, 0, len(models))
	for _, m := range models {
		res = append(res, m.(DDLGenerator).TableName())
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
