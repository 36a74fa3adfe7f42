package main

import (
	"fmt"
	"os"
	"strings"

	"lending-tracker/config"
	"lending-tracker/library"
)

// seed recreates the database at LENDING_DATABASE_PATH (or library.db) and
// fills it with a small demo catalogue, members and loans.
func main() {
	cfg := config.NewConfig()
	path := cfg.Database.Path

	fmt.Println("Cleaning up existing database files...")
	for _, file := range []string{path, path + "-shm", path + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	manager, err := library.NewLibraryManager(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	today := library.Today()
	fmt.Printf("Seeding %s as of %s...\n", path, library.FormatDate(today))
	report, err := manager.Seed(today)
	fmt.Printf("Wrote %s\n", report)
	if err != nil {
		// Rows written before the failure stay in place.
		fmt.Fprintf(os.Stderr, "Seeding stopped early: %v\n", err)
		manager.Close()
		os.Exit(1)
	}

	loans, err := manager.Reports.AllLoansWithDetails()
	if err != nil {
		fmt.Printf("Error retrieving loans: %v\n", err)
		return
	}
	fmt.Println("\nSeeded loans:")
	fmt.Printf("%-3s %-30s %-22s %-10s %s\n", "ID", "Book", "Member", "Due", "Status")
	fmt.Println(strings.Repeat("-", 80))
	for _, l := range loans {
		fmt.Printf("%-3d %-30s %-22s %-10s %s\n",
			l.ID, truncateString(l.BookTitle, 30), truncateString(l.MemberName(), 22),
			library.FormatDate(l.DueDate), l.Status(today))
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
