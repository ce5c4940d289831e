// Package benchbook is the composition root for the benchbook library.
//
// It connects the notebook bookkeeping logic (identifier sequencing,
// template instantiation, tag scanning, aggregation queries) with the
// storage adapters.
//
// Philosophy:
//
// A lab notebook is a folder of markdown notes: daily entries, experiments,
// milestones. Benchbook automates the bookkeeping around them without ever
// owning the notes themselves. Every operation recomputes from current
// store state; the only persistent state is the note files.
//
// Features:
//
//   - **Identifier sequencing**: same-day experiments are issued E<date>A,
//     E<date>B, ... by counting what already exists.
//   - **Template instantiation**: new notes start from a named template,
//     stamped with a uid and creation date.
//   - **Tag scanning**: live substring scans discover which notes carry a
//     tag, so daily entries and experiments find each other.
//   - **Aggregation queries**: filter, sort, and project across the
//     collection into tabular rows.
//   - **Pluggable stores**: filesystem adapter out of the box, in-memory
//     adapter for tests, anything else via core.Store.
//   - **Optional sqlite index**: a rebuildable mirror for long-running
//     hosts, always equivalent to a full rescan.
//
// Usage:
//
//	svc, err := benchbook.Open("./notebook",
//		benchbook.WithMustExist(true),
//		benchbook.WithLogger(logger),
//	)
//
//	// Create today's experiment note
//	ref, err := svc.NewExperiment(ctx, "Experiments", "experiment", benchbook.DateCode(time.Now()))
package benchbook
