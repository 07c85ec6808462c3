package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

// tables lists every model the service owns, in creation order.
var tables = []interface{}{
	&models.User{},
	&models.Client{},
	&models.Project{},
}

// Migrate creates or alters the users, clients and projects tables.
func (d Database) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(tables...)
}

// ColumnMismatch lists the columns of one table that no model field maps to.
type ColumnMismatch struct {
	Table   string
	Missing bool // table does not exist yet
	Columns []string
}

// ColumnReport compares the live schema against the models and returns the
// database columns not accounted for.
func (d Database) ColumnReport(ctx context.Context) ([]ColumnMismatch, error) {
	db := d.db.WithContext(ctx)
	report := make([]ColumnMismatch, 0, len(tables))

	for _, model := range tables {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			report = append(report, ColumnMismatch{Table: table, Missing: true})
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}
		report = append(report, ColumnMismatch{
			Table:   table,
			Columns: findColumnMismatches(dbColumns, stmt.Schema.DBNames),
		})
	}
	return report, nil
}

// LogColumnReport runs ColumnReport and writes the result to log.
func (d Database) LogColumnReport(ctx context.Context, log zerolog.Logger) error {
	report, err := d.ColumnReport(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, table := range report {
		switch {
		case table.Missing:
			log.Warn().Str("table", table.Table).Msg("Table does not exist yet (will be created during migration)")
		case len(table.Columns) > 0:
			log.Warn().Str("table", table.Table).Strs("columns", table.Columns).Msg("Columns not accounted for in model")
		default:
			log.Info().Str("table", table.Table).Msg("All columns are accounted for in the model")
		}
		total += len(table.Columns)
	}
	log.Info().Int("total", total).Msg("Column mismatch report complete")
	return nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	mismatches := []string{}
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

// EnsureAdmin makes sure an admin account exists for email. An existing
// account keeps its password and is promoted if needed; a new one is created
// with passwordHash.
func (d Database) EnsureAdmin(ctx context.Context, email, passwordHash string) (*models.User, bool, error) {
	user, err := d.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}

	if user == nil {
		user = &models.User{Email: email, Password: passwordHash, Role: models.RoleAdmin}
		if err := d.userRepo.Add(ctx, user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	if user.Role != models.RoleAdmin {
		user.Role = models.RoleAdmin
		if err := d.userRepo.Update(ctx, user); err != nil {
			return nil, false, err
		}
	}
	return user, false, nil
}
