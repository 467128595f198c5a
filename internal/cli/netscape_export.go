package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minimarks/minimarks/internal/config"
	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/database/bookmarks"
	"github.com/minimarks/minimarks/internal/netscape"
)

// NetscapeExportCommand writes a user's bookmarks to a Netscape bookmark
// file, suitable for importing into a browser.
type NetscapeExportCommand struct {
	OutputPath   string
	DatabasePath string
	Username     string
}

func NewNetscapeExportCommand() *NetscapeExportCommand {
	return &NetscapeExportCommand{}
}

func (cmd *NetscapeExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.OutputPath, "out", "bookmarks.html", "Path of the bookmark file to write")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the bookmark database file")
	fs.StringVar(&cmd.Username, "user", "", "Username whose bookmarks to export (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -user <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export a user's bookmarks to a Netscape bookmark file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -user not provided")
	}

	return nil
}

func (cmd *NetscapeExportCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	user, err := lookupUser(db, cmd.Username)
	if err != nil {
		return err
	}

	repository := bookmarks.NewRepository(db.DB)
	all, err := repository.All(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	marks := make([]netscape.Mark, 0, len(all))
	for _, bookmark := range all {
		marks = append(marks, netscape.Mark{
			Title:   bookmark.Title,
			Href:    bookmark.Href,
			PubDate: bookmark.PubDate,
		})
	}

	out, err := os.Create(cmd.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := netscape.Write(out, marks); err != nil {
		return fmt.Errorf("failed to write bookmark file: %w", err)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(marks), cmd.OutputPath)
	return nil
}
