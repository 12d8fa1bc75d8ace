package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/config"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/observability"
	"github.com/spec-kit/hrms-service/internal/persistence"
	"github.com/spec-kit/hrms-service/internal/repository"
	"github.com/spec-kit/hrms-service/internal/seed"
	"github.com/spec-kit/hrms-service/internal/service"
)

func main() {
	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateLayout)

	app := &cli.App{
		Name:  "seed",
		Usage: "populate the database with demo employees and attendance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Value: "2026-01-01", Usage: "first attendance day (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "to", Value: yesterday, Usage: "last attendance day (YYYY-MM-DD)"},
			&cli.Float64Flag{Name: "present-ratio", Value: 0.9, Usage: "probability that a generated day is Present"},
			&cli.Uint64Flag{Name: "rand-seed", Usage: "random seed; 0 picks one from the clock"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	from, err := time.Parse(domain.DateLayout, c.String("from"))
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := time.Parse(domain.DateLayout, c.String("to"))
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	ratio := c.Float64("present-ratio")
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("--present-ratio must be between 0 and 1, got %v", ratio)
	}
	randSeed := c.Uint64("rand-seed")
	if randSeed == 0 {
		randSeed = uint64(time.Now().UnixNano())
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		return err
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	employeeRepo := repository.NewEmployeeRepository(pg)
	employees := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		Tx:           pg,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	attendance := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: repository.NewAttendanceRepository(pg),
		Tx:             pg,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	logger.Info("seeding",
		zap.String("from", from.Format(domain.DateLayout)),
		zap.String("to", to.Format(domain.DateLayout)),
		zap.Float64("present_ratio", ratio),
		zap.Uint64("rand_seed", randSeed))

	_, err = seed.Run(ctx, employees, attendance, seed.Plan{
		From:         from,
		To:           to,
		PresentRatio: ratio,
		Rand:         rand.New(rand.NewPCG(randSeed, randSeed)),
	}, logger)
	return err
}
