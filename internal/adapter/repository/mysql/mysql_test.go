package mysql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestDialect(t *testing.T) {
	d := Dialect()

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
	}{
		{"duplicate entry", &mysql.MySQLError{Number: duplicateEntryErrNumber}, true, false},
		{"wrapped duplicate entry", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: duplicateEntryErrNumber}), true, false},
		{"no referenced row", &mysql.MySQLError{Number: noReferencedRowErrNumber}, false, true},
		{"other mysql error", &mysql.MySQLError{Number: 1146}, false, false},
		{"plain error", errors.New("unknown error"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, d.IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, d.IsForeignKeyViolation(tt.err))
		})
	}

	assert.Equal(t, "mysql", d.Name)
	assert.Contains(t, d.AttachQuery, "ON DUPLICATE KEY UPDATE")
}
