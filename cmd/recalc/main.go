// backend-go/cmd/recalc/main.go
//
// Batch CLI: rerun the replenishment math, export purchase suggestions to
// CSV, and optionally push the export to object storage.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/cache"
	"github.com/ardiwinata/posbranch/backend-go/internal/config"
	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/export"
	"github.com/ardiwinata/posbranch/backend-go/internal/replenish"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository/postgres"
	"github.com/ardiwinata/posbranch/backend-go/internal/service"
	"github.com/ardiwinata/posbranch/backend-go/internal/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  "supplier-id",
			Usage: "Restrict the run to one supplier",
		},
		&cli.Int64Flag{
			Name:  "product-id",
			Usage: "Restrict the run to one product",
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "recalc",
		Usage: "Run replenishment recalculation and exports",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Recalculate reorder points and print a summary",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
					&cli.BoolFlag{
						Name:  "export",
						Usage: "Write purchase suggestions to a CSV in the export directory",
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the CSV export to object storage (implies --export)",
					},
				}, newFilterFlags()...),
				Action: runRecalculation,
			},
			{
				Name:   "export",
				Usage:  "Export the current low-stock report without recalculating",
				Flags:  append([]cli.Flag{newDBURLFlag(), &cli.BoolFlag{Name: "upload", Usage: "Upload the CSV to object storage"}}, newFilterFlags()...),
				Action: runExport,
			},
			{
				Name:   "exports",
				Usage:  "List CSV exports already uploaded to object storage",
				Action: listExports,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newService(c *cli.Context) (*service.ReplenishService, error) {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cfg := config.Load()
	wrapped := postgres.Wrap(db)

	return service.NewReplenishService(
		postgres.NewSalesRepository(wrapped),
		postgres.NewProductRepository(wrapped),
		postgres.NewPolicyRepository(wrapped),
		cache.NewNoopReplenishCache(),
		replenish.CostConfig{
			OrderingCost:    cfg.Replenish.OrderingCost,
			HoldingRate:     cfg.Replenish.HoldingRate,
			DefaultItemCost: cfg.Replenish.DefaultItemCost,
		},
		cfg.Replenish.Workers,
	), nil
}

func filterFromFlags(c *cli.Context) domain.SalesFilter {
	filter := domain.SalesFilter{}
	if id := c.Int64("supplier-id"); id > 0 {
		filter.SupplierID = &id
	}
	if id := c.Int64("product-id"); id > 0 {
		filter.ProductID = &id
	}
	return filter
}

func runRecalculation(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Recalculate(c.Context, filterFromFlags(c))
	if err != nil {
		return fmt.Errorf("recalculation failed: %w", err)
	}

	fmt.Printf("updated %d products, skipped %d, %d low-stock alerts (%d critical)\n",
		result.ProductsUpdated, len(result.Skipped), result.Report.LowStockCount, result.Report.CriticalAlerts)
	for _, skip := range result.Skipped {
		fmt.Printf("  skipped product %d: %s\n", skip.ProductID, skip.Reason)
	}

	if c.Bool("export") || c.Bool("upload") {
		return exportReport(c, result.Report)
	}
	return nil
}

func runExport(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	report, err := svc.Report(c.Context, filterFromFlags(c))
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	return exportReport(c, report)
}

func exportReport(c *cli.Context, report *domain.ReplenishmentReport) error {
	cfg := config.Load()

	name := fmt.Sprintf("suggestions_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(cfg.Export.Dir, name)
	if err := export.WriteSuggestionsCSV(path, report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("wrote %s (%d suggestion lines)\n", path, report.LowStockCount)

	if !c.Bool("upload") {
		return nil
	}

	client, err := newStorageClient(cfg)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := client.UploadObject(c.Context, name, data); err != nil {
		return err
	}
	fmt.Printf("uploaded %s to bucket %s\n", name, cfg.Export.S3Bucket)
	return nil
}

func listExports(c *cli.Context) error {
	client, err := newStorageClient(config.Load())
	if err != nil {
		return err
	}

	objects, err := client.ListObjects(c.Context, "suggestions_")
	if err != nil {
		return err
	}
	for _, object := range objects {
		fmt.Printf("%s\t%d bytes\n", object.Key, object.Size)
	}
	fmt.Printf("%d exports\n", len(objects))
	return nil
}

func newStorageClient(cfg *config.Config) (storage.ObjectStorage, error) {
	return storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.Export.S3Endpoint,
		AccessKey: cfg.Export.S3AccessKey,
		SecretKey: cfg.Export.S3SecretKey,
		Bucket:    cfg.Export.S3Bucket,
		UseSSL:    cfg.Export.S3UseSSL,
	})
}
