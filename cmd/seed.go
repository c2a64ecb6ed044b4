package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"banking-chatbot/internal/repository"
	"banking-chatbot/internal/service"

	"github.com/spf13/cobra"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data from CSV files into the database",
	Run:   Seed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "mock_data", "directory holding the seed CSV files")
}

// Seed imports customer_profiles.csv, transactions.csv and investments.csv
// from the seed directory. Rows already present are left untouched.
func Seed(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	importService := service.NewImportService(appDep.log, repo.CustomerRepo, repo.TransactionRepo, repo.InvestmentRepo)

	fmt.Println("Loading customers...")
	count, err := seedFile(ctx, importService, filepath.Join(seedDir, "customer_profiles.csv"), importService.ImportCustomers)
	if err != nil {
		log.Fatalf("Failed to load customers: %v", err)
	}
	fmt.Printf("Loaded %d customers\n", count)

	fmt.Println("Loading transactions...")
	count, err = seedFile(ctx, importService, filepath.Join(seedDir, "transactions.csv"), func(ctx context.Context, rows []service.ImportRow) (int, error) {
		return importService.ImportTransactions(ctx, "", rows)
	})
	if err != nil {
		log.Fatalf("Failed to load transactions: %v", err)
	}
	fmt.Printf("Loaded %d transactions\n", count)

	fmt.Println("Loading investments...")
	count, err = seedFile(ctx, importService, filepath.Join(seedDir, "investments.csv"), func(ctx context.Context, rows []service.ImportRow) (int, error) {
		return importService.ImportInvestments(ctx, "", rows)
	})
	if err != nil {
		log.Fatalf("Failed to load investments: %v", err)
	}
	fmt.Printf("Loaded %d investments\n", count)

	fmt.Println("All sample data loaded successfully.")
}

func seedFile(ctx context.Context, svc service.ImportService, path string, importFn func(context.Context, []service.ImportRow) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := svc.ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return importFn(ctx, rows)
}
