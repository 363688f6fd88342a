package provision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

// Postgres error codes tolerated by Provision.
const (
	codeDuplicateTable  = "42P07"
	codeUniqueViolation = "23505"
)

// Provisioner creates the backing table of a model.
type Provisioner interface {
	Provision(ctx context.Context, def *definition.Model) error
}

// GormProvisioner runs the CREATE TABLE statement through gorm.
type GormProvisioner struct {
	db *gorm.DB
}

var _ Provisioner = (*GormProvisioner)(nil)

// NewGormProvisioner creates a GormProvisioner.
func NewGormProvisioner(db *gorm.DB) *GormProvisioner {
	return &GormProvisioner{db: db}
}

// Provision creates the model's table if it does not exist. A concurrent
// creation of the same table is treated as success.
func (p *GormProvisioner) Provision(ctx context.Context, def *definition.Model) error {
	stmt, err := CreateTableStatement(def)
	if err != nil {
		return err
	}
	if err := p.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		if alreadyExists(err) {
			return nil
		}
		return fmt.Errorf("failed to provision table %s: %w", def.RouteName(), err)
	}
	return nil
}

func alreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeDuplicateTable || pgErr.Code == codeUniqueViolation
	}
	return false
}

// CreateTableStatement builds the idempotent DDL for a model.
func CreateTableStatement(def *definition.Model) (string, error) {
	table := def.RouteName()
	if !definition.ValidIdentifier(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}

	cols := []string{"id SERIAL PRIMARY KEY"}
	for _, f := range def.Fields {
		col, err := columnDefinition(f)
		if err != nil {
			return "", err
		}
		cols = append(cols, col)
	}

	if def.HasOwner() {
		if _, declared := def.Field(def.OwnerField); !declared {
			if !definition.ValidIdentifier(def.OwnerField) {
				return "", fmt.Errorf("invalid owner field %q", def.OwnerField)
			}
			cols = append(cols, pq.QuoteIdentifier(def.OwnerField)+" TEXT")
		}
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pq.QuoteIdentifier(table), strings.Join(cols, ", ")), nil
}

func columnDefinition(f definition.Field) (string, error) {
	if !definition.ValidIdentifier(f.Name) {
		return "", fmt.Errorf("invalid field name %q", f.Name)
	}
	ft, err := f.FieldType()
	if err != nil {
		return "", fmt.Errorf("field %s: %w", f.Name, err)
	}

	parts := []string{pq.QuoteIdentifier(f.Name), SQLType(ft)}
	if f.Required {
		parts = append(parts, "NOT NULL")
	}
	if f.Unique {
		parts = append(parts, "UNIQUE")
	}
	if f.Default != nil {
		lit, err := defaultLiteral(ft, f.Default)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Name, err)
		}
		parts = append(parts, "DEFAULT "+lit)
	}
	return strings.Join(parts, " "), nil
}

// SQLType maps a field type to its column type.
func SQLType(ft definition.FieldType) string {
	switch ft {
	case definition.TypeNumber:
		return "INTEGER"
	case definition.TypeBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func defaultLiteral(ft definition.FieldType, v interface{}) (string, error) {
	switch ft {
	case definition.TypeNumber:
		n, ok := definition.IntegerValue(v)
		if !ok {
			return "", fmt.Errorf("default %v is not an integer", v)
		}
		return strconv.FormatInt(n, 10), nil
	case definition.TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("default %v is not a boolean", v)
		}
		if b {
			return "TRUE", nil
		}
		return "FALSE", nil
	default:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("default %v is not a string", v)
		}
		return pq.QuoteLiteral(s), nil
	}
}
