// Package all wires in every storage backend. Blank-import it from a main
// package to make all kinds available to storage.New.
package all

import (
	_ "custetl/internal/storage/mssql"
	_ "custetl/internal/storage/mysql"
	_ "custetl/internal/storage/postgres"
	_ "custetl/internal/storage/sqlite"
)
