package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/thoreinstein/mcpsync/internal/client"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

// ServerStatus is one registry server and where it is enabled.
type ServerStatus struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Code    bool   `json:"code"`
	Desktop bool   `json:"desktop"`
}

// Listing is the output of List.
type Listing struct {
	Registry string         `json:"registry"`
	Total    int            `json:"total"`
	Servers  []ServerStatus `json:"servers"`
}

// Status reads the registry and client documents and reports, per registry
// server, which clients have it enabled. Nothing is imported or written.
func (a *App) Status(ctx context.Context) *Listing {
	reg := a.registry.Load(ctx)

	docs := make([]*client.Document, 0, len(a.clients))
	for _, c := range a.clients {
		docs = append(docs, c.Load(ctx))
	}
	state := client.Snapshot(docs...)

	listing := &Listing{Registry: a.registry.Path(), Servers: []ServerStatus{}}
	for _, name := range reg.Names() {
		def, _ := reg.Get(name)
		listing.Servers = append(listing.Servers, ServerStatus{
			Name:    name,
			Type:    def.Type(),
			Code:    state.Enabled(client.Code, name),
			Desktop: state.Enabled(client.Desktop, name),
		})
	}
	listing.Total = len(listing.Servers)
	return listing
}

// List prints the status of every registry server as a table, or as JSON
// when asJSON is set.
func (a *App) List(ctx context.Context, asJSON bool) error {
	listing := a.Status(ctx)

	if asJSON {
		data, err := fileutil.MarshalJSON(listing)
		if err != nil {
			return errors.Wrap(err, "encoding server list")
		}
		_, err = a.out.Write(data)
		return err
	}

	fmt.Fprintln(a.out, "🔧 MCP Server Status")
	fmt.Fprintln(a.out)

	if listing.Total == 0 {
		fmt.Fprintln(a.out, "No MCP servers found. Run with no arguments to initialize.")
		return nil
	}

	table := tablewriter.NewTable(a.out)
	table.Header("Name", "Type", "Code", "Desktop")
	for _, s := range listing.Servers {
		if err := table.Append(s.Name, s.Type, mark(s.Code), mark(s.Desktop)); err != nil {
			return errors.Wrap(err, "rendering server list")
		}
	}
	if err := table.Render(); err != nil {
		return errors.Wrap(err, "rendering server list")
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "📊 Total: %d servers │ Registry: %s\n", listing.Total, listing.Registry)
	return nil
}

func mark(enabled bool) string {
	if enabled {
		return color.GreenString("✅")
	}
	return color.RedString("❌")
}
