package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minimarks/minimarks/internal/config"
	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/database/bookmarks"
	"github.com/minimarks/minimarks/internal/importers"
	"github.com/minimarks/minimarks/internal/netscape"
)

// NetscapeImportCommand handles importing a Netscape bookmark file from the
// command line, without going through the HTTP server.
type NetscapeImportCommand struct {
	FilePath     string
	DatabasePath string
	Username     string
	NoFallback   bool
	Verbose      bool
	DryRun       bool
}

func NewNetscapeImportCommand() *NetscapeImportCommand {
	return &NetscapeImportCommand{}
}

func (cmd *NetscapeImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the Netscape bookmark file to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the bookmark database file")
	fs.StringVar(&cmd.Username, "user", "", "Username owning the imported bookmarks (required)")
	fs.BoolVar(&cmd.NoFallback, "strict-dates", false, "Skip records with unparseable dates instead of stamping them with the current time")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> -user <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import bookmarks from a Netscape bookmark file, the HTML export\n")
		fmt.Fprintf(os.Stderr, "format produced by every mainstream browser.\n\n")
		fmt.Fprintf(os.Stderr, "Records already present are updated only when the file carries a\n")
		fmt.Fprintf(os.Stderr, "newer date; everything else is skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import a Firefox export for a user:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file bookmarks.html -user alice\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file bookmarks.html -user alice -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.Username == "" {
		return fmt.Errorf("required flag -user not provided")
	}

	return nil
}

func (cmd *NetscapeImportCommand) Run() error {
	fmt.Println("Bookmark Import")
	fmt.Println("===============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	if _, err := os.Stat(cmd.FilePath); os.IsNotExist(err) {
		return fmt.Errorf("bookmark file not found: %s", cmd.FilePath)
	}

	fmt.Printf("File: %s\n", cmd.FilePath)

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open bookmark file: %w", err)
	}
	defer file.Close()

	if cmd.DryRun {
		records, err := netscape.Parse(file)
		if err != nil {
			return fmt.Errorf("failed to parse bookmark file: %w", err)
		}

		fmt.Printf("Found %d bookmarks\n", len(records))
		if cmd.Verbose {
			for i, record := range records {
				fmt.Printf("%d. %s (%s)\n", i+1, record.Title, record.Href)
			}
		}

		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	user, err := lookupUser(db, cmd.Username)
	if err != nil {
		return err
	}

	repository := bookmarks.NewRepository(db.DB)
	importer := importers.NewImporter(repository)
	importer.SetFallbackToNow(!cmd.NoFallback)

	fmt.Println("\nImporting bookmarks...")

	tally, err := importer.Import(file, user.ID)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := repository.RecordImportRun(user.ID, tally.Inserted, tally.Updated, tally.Skipped, tally.Conflicted); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record import run: %v\n", err)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Inserted:   %d\n", tally.Inserted)
	fmt.Printf("Updated:    %d\n", tally.Updated)
	fmt.Printf("Skipped:    %d\n", tally.Skipped)
	fmt.Printf("Conflicted: %d\n", tally.Conflicted)

	fmt.Println("\nImport complete!")
	return nil
}
