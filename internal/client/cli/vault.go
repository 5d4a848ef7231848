package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/vaultcore/internal/client/importers"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
)

const (
	msgCouldNotRead = "could not read file"
	msgNoEntries    = "no entries found"
)

// Import reads every location, parses them concurrently with the chosen
// importer and stores each successful result.
//
//	import <format> <location>...
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: import <format> <location>...")
		return nil
	}
	format := importers.Format(args[0])
	if _, err := importers.New(format); err != nil {
		a.printf("Unknown format %q, see 'formats'\n", args[0])
		return err
	}

	var (
		jobs      []importers.Job
		locations []string
	)
	for _, loc := range args[1:] {
		data, err := a.source.Read(ctx, loc)
		if err != nil {
			a.log.Warn(ctx, "read export", "location", loc, "error", err)
			a.printf("%s: %s\n", loc, msgCouldNotRead)
			continue
		}
		jobs = append(jobs, importers.Job{Format: format, Data: data})
		locations = append(locations, loc)
	}
	if len(jobs) == 0 {
		return nil
	}

	results, err := importers.Run(ctx, jobs, a.workers)
	if err != nil {
		a.println("Import aborted:", err)
		return err
	}

	for i, res := range results {
		loc := locations[i]
		switch {
		case !res.Success:
			a.printf("%s: %s\n", loc, msgCouldNotRead)
		case res.Empty():
			a.printf("%s: %s\n", loc, msgNoEntries)
		default:
			n, err := a.vault.Import(ctx, res)
			if err != nil {
				a.log.Error(ctx, "store import", "location", loc, "error", err)
				a.printf("%s: import failed: %v\n", loc, err)
				continue
			}
			a.printf("%s: imported %d entries\n", loc, n)
		}
	}
	return nil
}

// Formats prints the supported import formats.
func (a *App) Formats(_ context.Context, _ []string) error {
	for _, f := range importers.Formats() {
		a.println(f)
	}
	return nil
}

// List prints every entry overview.
func (a *App) List(ctx context.Context, _ []string) error {
	items, err := a.vault.List(ctx)
	if err != nil {
		a.println("List failed:", err)
		return err
	}
	a.printOverviews(items)
	return nil
}

// Match lists entries whose URIs belong to the same site as the given URL,
// honouring the user's equivalent domains.
//
//	match <url>
func (a *App) Match(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: match <url>")
		return nil
	}

	equivalent, err := a.settings.GetEquivalentDomains(ctx)
	if err != nil {
		a.log.Warn(ctx, "load equivalent domains", "error", err)
		equivalent = nil
	}

	items, err := a.vault.FindByURL(ctx, args[0], equivalent)
	if err != nil {
		a.println("Match failed:", err)
		return err
	}
	a.printOverviews(items)
	return nil
}

func (a *App) printOverviews(items []models.ViewOverview) {
	if len(items) == 0 {
		a.println(msgNoEntries)
		return
	}
	for _, it := range items {
		a.printf("%s  %-10s  %s  %s\n", it.Id, it.Type, it.Title, strings.Join(it.URIs, " "))
	}
}

// Domains prints the equivalent-domain groups, one per line.
func (a *App) Domains(ctx context.Context, _ []string) error {
	groups, err := a.settings.GetEquivalentDomains(ctx)
	if err != nil {
		a.println("Could not load settings:", err)
		return err
	}
	if len(groups) == 0 {
		a.println("No equivalent domains")
		return nil
	}
	for _, g := range groups {
		a.println(strings.Join(g, ", "))
	}
	return nil
}

// SetDomains replaces the equivalent-domain groups. Each input line is one
// group of comma or space separated domains; an empty first line clears them.
func (a *App) SetDomains(ctx context.Context, _ []string) error {
	lines, err := GetLines(a.reader, "Enter one group of equivalent domains per line", a.out)
	if err != nil {
		return err
	}

	groups := make([][]string, 0, len(lines))
	for _, line := range lines {
		g := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}

	if err := a.settings.SetEquivalentDomains(ctx, groups); err != nil {
		a.println("Could not save settings:", err)
		return err
	}
	a.printf("Saved %d groups\n", len(groups))
	return nil
}

// ClearSettings removes the active user's stored settings.
func (a *App) ClearSettings(ctx context.Context, _ []string) error {
	uid, err := a.users.UserID(ctx)
	if err != nil {
		a.println("No active user:", err)
		return err
	}
	if err := a.settings.Clear(ctx, uid); err != nil {
		a.println("Could not clear settings:", err)
		return err
	}
	a.println("Settings cleared")
	return nil
}
