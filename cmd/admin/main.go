package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/resume"
)

const usage = `usage:
  admin create-user -email <email> [-name <name>] [db flags]
  admin import -email <email> -file <resumes.json> [db flags]`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	var err error
	switch os.Args[1] {
	case "create-user":
		err = runCreateUser(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	default:
		err = fmt.Errorf("unknown command %q\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "账号邮箱（必填）")
	name := fs.String("name", "", "显示名称（可选）")
	dbFlags := registerDatabaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	if addr == "" {
		return errors.New("missing required flag: -email")
	}

	db, err := openDatabase(dbFlags)
	if err != nil {
		return err
	}

	var existing database.User
	switch err := db.Where("email = ?", addr).First(&existing).Error; {
	case err == nil:
		return fmt.Errorf("user %q already exists", addr)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return fmt.Errorf("query user: %w", err)
	}

	password, err := auth.GenerateRandomPassword(24)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := database.User{
		Email:              addr,
		Name:               strings.TrimSpace(*name),
		PasswordHash:       hashed,
		MustChangePassword: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("已创建账号（首次登录需强制改密）：\n")
	fmt.Printf("邮箱: %s\n", addr)
	fmt.Printf("初始密码: %s\n", password)
	fmt.Printf("提示：请立即登录并修改密码（该密码仅显示一次）。\n")
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	email := fs.String("email", "", "导入到该账号（必填）")
	file := fs.String("file", "", "浏览器导出的简历 JSON 数组（必填）")
	dbFlags := registerDatabaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*file) == "" {
		return errors.New("missing required flags: -email and -file")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read %s: %w", *file, err)
	}
	resumes, err := resume.DecodeLegacyList(raw)
	if err != nil {
		return err
	}

	db, err := openDatabase(dbFlags)
	if err != nil {
		return err
	}

	var user database.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(*email))).First(&user).Error; err != nil {
		return fmt.Errorf("find user %q: %w", *email, err)
	}

	n, err := resume.NewRepository(db).Import(context.Background(), user.ID, resumes)
	if err != nil {
		return err
	}
	fmt.Printf("导入 %d/%d 份简历到 %s\n", n, len(resumes), user.Email)
	return nil
}

func openDatabase(flags *databaseFlags) (*gorm.DB, error) {
	cfg, err := flags.config()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	db, err := database.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
