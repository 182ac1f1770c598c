package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-management/config"
	"library-management/library"
)

var (
	seedAdminUsername string
	seedAdminPassword string
	seedAdminEmail    string
	seedSampleBooks   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Initialize the database with the super administrator account",
	Long: `Creates the database schema, the single super administrator account,
and optionally a small sample catalog. Fails if an administrator already
exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logger := newLogger()

		db, err := library.NewDatabase(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		svc := library.NewService(db, library.Options{
			Logger:     logger,
			BcryptCost: cfg.Auth.BcryptCost,
		})

		id, err := svc.SeedSuperAdmin(&library.User{
			Username:  seedAdminUsername,
			Firstname: "Super",
			Surname:   "Admin",
			Email:     seedAdminEmail,
		}, seedAdminPassword)
		if err != nil {
			return fmt.Errorf("seed super administrator: %w", err)
		}
		fmt.Printf("Super administrator %q created with ID %d.\n", seedAdminUsername, id)

		if !seedSampleBooks {
			return nil
		}
		for _, b := range sampleBooks() {
			if _, err := svc.AddBook(b); err != nil {
				return fmt.Errorf("seed book %q: %w", b.Title, err)
			}
		}
		fmt.Printf("Seeded %d sample books.\n", len(sampleBooks()))
		return nil
	},
}

func sampleBooks() []*library.Book {
	return []*library.Book{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Genre: "Programming", ISBN: "978-0134190440", TotalCopies: 3},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Genre: "Programming", ISBN: "978-1449373320", TotalCopies: 2},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", ISBN: "978-0141439518", TotalCopies: 4},
		{Title: "The Hobbit", Author: "J. R. R. Tolkien", Genre: "Fantasy", ISBN: "978-0547928227", TotalCopies: 5},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Genre: "Science", ISBN: "978-0553380163", TotalCopies: 2},
	}
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminUsername, "admin-username", "superadmin", "username for the super administrator")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password for the super administrator (required)")
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@library.local", "email for the super administrator")
	seedCmd.Flags().BoolVar(&seedSampleBooks, "books", false, "also seed a small sample catalog")
	_ = seedCmd.MarkFlagRequired("admin-password")

	rootCmd.AddCommand(seedCmd)
}
