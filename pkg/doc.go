// Package pkg holds the libraries behind the cabinetry CLI and web designer.
//
// # Overview
//
// A cabinet is a row of modular columns. Each column has a bottom section
// (door or drawers) above a plinth and an optional top section split by
// shelves, with vertical dividers in individual compartments. Adjacent top
// sections can merge into one wide section. The packages divide into:
//
//  1. [cabinet] - the layout model and every validated edit
//  2. [render] - projection into drawing ops and the output sinks
//  3. [pipeline] - format selection, caching and rendering in one call
//  4. Persistence: [io] (JSON files), [store] (named designs), [session]
//     (web workspaces) and [cache] (rendered artifacts)
//  5. Support: [config], [errors], [fonts], [observability], [buildinfo]
//
// # Data Flow
//
//	design.json ──[io]──▶ cabinet.Cabinet ──[layout.Project]──▶ layout.Layout
//	                                                               │
//	                     PNG / SVG / text / PDF / JSON ◀──[sink]───┘
//
// # Quick Start
//
//	c := cabinet.New()
//	_ = c.AddColumn(60)
//	_ = c.AddColumn(80)
//	_ = c.ConfigureDrawers(0, 2, 20)
//
//	out, err := pipeline.Render(c, pipeline.Options{Formats: []string{"svg", "txt"}})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(string(out["txt"]))
//
// Everything measures in centimetres. Model indices are 0-based; the CLI
// shell numbers columns and shelves from 1.
//
// [cabinet]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/cabinet
// [render]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/store
// [session]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/buildinfo
package pkg
