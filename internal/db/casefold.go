package db

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefold)
}

// casefold is the SQL function casefold(text). It returns the Unicode full
// case fold of its argument so that comparisons ignore case beyond ASCII,
// which the built-in LIKE does not.
func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return cases.Fold().String(fmt.Sprint(v)), nil
	}
}
