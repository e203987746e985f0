package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// selectQuery builds the catalog query for table. Table names cannot be bound
// as parameters, so they are restricted to plain identifiers.
func selectQuery(table string) (string, error) {
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("catalog: invalid table name %q", table)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(Columns, ", "), table), nil
}
