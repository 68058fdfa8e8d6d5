// This program provides operational commands against the database: schema
// migration, bootstrap of companies and users, and JSON snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/velostock/velostock/business/domain/companybus"
	"github.com/velostock/velostock/business/domain/companybus/stores/companydb"
	"github.com/velostock/velostock/business/domain/userbus"
	"github.com/velostock/velostock/business/domain/userbus/stores/userdb"
	"github.com/velostock/velostock/business/sdk/backup"
	"github.com/velostock/velostock/business/sdk/migrate"
	"github.com/velostock/velostock/business/sdk/sqldb"
	"github.com/velostock/velostock/business/types/name"
	"github.com/velostock/velostock/business/types/password"
	"github.com/velostock/velostock/business/types/phone"
	"github.com/velostock/velostock/business/types/role"
	"github.com/velostock/velostock/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"velostock"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Backup struct {
		Dir string `envconfig:"BACKUP_DIR" default:"/var/lib/velostock/backups"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, create-company, create-user, backup")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "create-company":
		return runCreateCompany(ctx, log, db, os.Args[2:])
	case "create-user":
		return runCreateUser(ctx, log, db, os.Args[2:])
	case "backup":
		return runBackup(ctx, db, cfg.Backup.Dir, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runCreateCompany(ctx context.Context, log *logger.Logger, db *sqlx.DB, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (required)")
	slugStr := cmd.String("slug", "", "Company slug (required)")
	inboxStr := cmd.String("sales-inbox", "", "Sales inbox email")
	commission := cmd.Float64("commission", 0, "Default commission percent")
	cmd.Parse(args)

	if *nameStr == "" || *slugStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	nc := companybus.NewCompany{
		Name:              n,
		Slug:              *slugStr,
		CommissionPercent: *commission,
	}

	if *inboxStr != "" {
		addr, err := mail.ParseAddress(*inboxStr)
		if err != nil {
			return fmt.Errorf("invalid sales inbox: %w", err)
		}
		nc.SalesInbox = *addr
	}

	companyBus := companybus.NewCore(log, companydb.NewStore(log, db))

	cmp, err := companyBus.Create(ctx, nc)
	if err != nil {
		return fmt.Errorf("create company failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Company created!\nID: %s\nSlug: %s\n", cmp.ID, cmp.Slug)
	return nil
}

func runCreateUser(ctx context.Context, log *logger.Logger, db *sqlx.DB, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (required)")
	passStr := cmd.String("password", "", "User password (required)")
	nameStr := cmd.String("name", "", "User full name (required)")
	roleStr := cmd.String("role", "SELLER", "User role (OWNER, MANAGER, FINANCIAL, SELLER, DRIVER)")
	companyStr := cmd.String("company-id", "", "Company UUID")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	nu := userbus.NewUser{
		Name:     n,
		Email:    *addr,
		Password: p,
		Role:     r,
		Phone:    phone.Null{},
	}

	if *companyStr != "" {
		companyID, err := uuid.Parse(*companyStr)
		if err != nil {
			return fmt.Errorf("invalid company uuid: %w", err)
		}
		nu.CompanyID = companyID
	}

	userBus := userbus.NewCore(userdb.NewStore(log, db))

	usr, err := userBus.Create(ctx, nu)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

func runBackup(ctx context.Context, db *sqlx.DB, dir string, args []string) error {
	cmd := flag.NewFlagSet("backup", flag.ExitOnError)
	reason := cmd.String("reason", "manual", "Reason tag included in the snapshot file name")
	cmd.Parse(args)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	path, err := backup.Snapshot(ctx, db, dir, *reason)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Printf("snapshot written to %s\n", path)
	return nil
}
