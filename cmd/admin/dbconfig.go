package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"resumeBuilder/internal/config"
)

type databaseFlags struct {
	host, name, user, password, sslMode *string
	port                                *int
}

func registerDatabaseFlags(fs *flag.FlagSet) *databaseFlags {
	return &databaseFlags{
		host:     fs.String("db-host", "", "数据库 Host（可选，默认读 DATABASE_HOST）"),
		port:     fs.Int("db-port", 0, "数据库 Port（可选，默认读 DATABASE_PORT）"),
		name:     fs.String("db-name", "", "数据库名（可选，默认读 POSTGRES_DB）"),
		user:     fs.String("db-user", "", "数据库用户（可选，默认读 POSTGRES_USER）"),
		password: fs.String("db-password", "", "数据库密码（可选，默认读 POSTGRES_PASSWORD）"),
		sslMode:  fs.String("db-sslmode", "", "数据库 SSLMODE（可选，默认读 DATABASE_SSLMODE）"),
	}
}

// firstNonEmpty 依次返回第一个非空值；以 $ 开头的项按环境变量读取。
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.HasPrefix(v, "$") {
			v = os.Getenv(v[1:])
		}
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (f *databaseFlags) config() (config.DatabaseConfig, error) {
	port := *f.port
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if port <= 0 {
		port = 5432
	}

	cfg := config.DatabaseConfig{
		Host:     firstNonEmpty(*f.host, "$DATABASE_HOST", "localhost"),
		Port:     port,
		Name:     firstNonEmpty(*f.name, "$POSTGRES_DB", "$DB_NAME"),
		User:     firstNonEmpty(*f.user, "$POSTGRES_USER", "$DB_USER"),
		Password: firstNonEmpty(*f.password, "$POSTGRES_PASSWORD", "$DB_PASSWORD"),
		SSLMode:  firstNonEmpty(*f.sslMode, "$DATABASE_SSLMODE", "disable"),
	}

	switch {
	case cfg.Name == "":
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	case cfg.User == "":
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	case cfg.Password == "":
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}
	return cfg, nil
}
