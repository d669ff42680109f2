package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reviewhub/reviewhub-api/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app", DBPass: "s3cret",
		DBHost: "db.internal", DBPort: "3306", DBName: "reviewhub",
	}
	require.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/reviewhub?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBHost: "localhost", DBPort: "3306", DBName: "reviewhub",
	}
	require.Equal(t,
		"app@tcp(localhost:3306)/reviewhub?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN(cfg))
}
