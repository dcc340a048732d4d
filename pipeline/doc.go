// Package pipeline orchestrates the end-to-end subtype-discovery run:
// per-modality affinity networks, two fusion strategies, two cluster
// assigners and agreement scoring against a reference partition.
//
// What:
//
//	Run takes one feature matrix per data modality plus a reference label
//	vector and evaluates the full strategy grid:
//
//	    {average, snf} × {pam, spectral}
//
//	Each grid cell yields a Row with the discovered labels and their
//	Rand / adjusted Rand / NMI agreement with the reference.
//
// Stages:
//
//	modalities ──► affinity (concurrent, one goroutine per modality)
//	           ──► fusion.Average ─┐
//	           ──► fusion.Network ─┤──► cluster.PAM / cluster.Spectral
//	                               └──► agreement.Scores ──► Report
//
// Why:
//
//   - One call answers the study question "which fusion × clustering
//     combination recovers the known subtypes best".
//
// Failure policy: every stage error is fatal and immediate; Run never
// returns a partial Report.
//
// Logging: structured zerolog progress events per stage. Pass a logger
// through Config; the default discards everything, keeping library use
// silent.
package pipeline
