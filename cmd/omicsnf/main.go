// Command omicsnf runs the subtype-discovery pipeline over CSV feature
// matrices.
//
// Usage:
//
//	omicsnf -modality mrna=mrna.csv -modality meth=meth.csv \
//	        -labels subtypes.csv -clusters 3 [-neighbors 20] \
//	        [-iterations 20] [-mu 0.5] [-seed 1] [-degree-floor 0] \
//	        [-top 2000] [-zscore]
//
// Matrix CSVs carry a header row (first column is the sample ID, the
// remaining columns are feature names) and one row per sample. The label
// CSV carries a header and sampleID,label rows. Sample IDs must appear in
// the same order in every input file.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/GiuliaCuttone/omicsnf/pipeline"
	"github.com/GiuliaCuttone/omicsnf/standardize"
)

// modalityFlag collects repeated -modality name=path arguments.
type modalityFlag struct {
	names []string
	paths []string
}

func (m *modalityFlag) String() string {
	parts := make([]string, len(m.names))
	for i := range m.names {
		parts[i] = m.names[i] + "=" + m.paths[i]
	}

	return strings.Join(parts, ",")
}

func (m *modalityFlag) Set(v string) error {
	name, path, ok := strings.Cut(v, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected name=path, got %q", v)
	}
	m.names = append(m.names, name)
	m.paths = append(m.paths, path)

	return nil
}

func main() {
	var mods modalityFlag
	flag.Var(&mods, "modality", "data modality as name=path.csv (repeatable)")
	labelsPath := flag.String("labels", "", "reference label CSV (sampleID,label)")
	neighbors := flag.Int("neighbors", 0, "K nearest neighbours (0 = default)")
	iterations := flag.Int("iterations", 0, "fusion iterations (0 = default)")
	clusters := flag.Int("clusters", 0, "target cluster count (required)")
	mu := flag.Float64("mu", 0, "affinity bandwidth scale (0 = default)")
	seed := flag.Int64("seed", 0, "spectral k-means seed (0 = default)")
	degreeFloor := flag.Float64("degree-floor", 0, "minimum degree imputed for weakly connected samples in spectral clustering (0 = isolated samples are fatal)")
	top := flag.Int("top", 0, "keep only the N most variable features (0 = all)")
	zscore := flag.Bool("zscore", false, "z-score each feature column before affinity")
	verbose := flag.Bool("v", false, "verbose progress logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	if err := run(&mods, *labelsPath, *neighbors, *iterations, *clusters, *mu, *seed, *degreeFloor, *top, *zscore, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		fmt.Fprintln(os.Stderr, "omicsnf:", err)
		os.Exit(1)
	}
}

func run(mods *modalityFlag, labelsPath string, neighbors, iterations, clusters int,
	mu float64, seed int64, degreeFloor float64, top int, zscore bool, log zerolog.Logger) error {
	if len(mods.names) == 0 {
		return errors.New("at least one -modality is required")
	}
	if labelsPath == "" {
		return errors.New("-labels is required")
	}
	if clusters < 1 {
		return errors.New("-clusters must be >= 1")
	}

	var (
		inputs    []pipeline.Modality
		sampleIDs []string
	)
	for i, path := range mods.paths {
		ids, x, err := readMatrixCSV(path)
		if err != nil {
			return fmt.Errorf("modality %q: %w", mods.names[i], err)
		}
		if sampleIDs == nil {
			sampleIDs = ids
		} else if err := sameIDs(sampleIDs, ids); err != nil {
			return fmt.Errorf("modality %q: %w", mods.names[i], err)
		}

		if top > 0 {
			if x, err = standardize.TopVariance(x, top); err != nil {
				return fmt.Errorf("modality %q: variance filter: %w", mods.names[i], err)
			}
		}
		if zscore {
			if x, err = standardize.ZScore(x); err != nil {
				return fmt.Errorf("modality %q: z-score: %w", mods.names[i], err)
			}
		} else if err := standardize.CheckComplete(x); err != nil {
			return fmt.Errorf("modality %q: %w", mods.names[i], err)
		}

		rows, cols := x.Dims()
		log.Info().Str("modality", mods.names[i]).Int("samples", rows).Int("features", cols).Msg("modality loaded")
		inputs = append(inputs, pipeline.Modality{Name: mods.names[i], X: x})
	}

	ids, ref, err := readLabelsCSV(labelsPath)
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	if err := sameIDs(sampleIDs, ids); err != nil {
		return fmt.Errorf("labels: %w", err)
	}

	cfg := pipeline.Config{
		Neighbors:   neighbors,
		Iterations:  iterations,
		Clusters:    clusters,
		Mu:          mu,
		Seed:        seed,
		DegreeFloor: degreeFloor,
		Logger:      &log,
	}
	report, err := pipeline.Run(context.Background(), inputs, ref, cfg)
	if err != nil {
		return err
	}

	render(os.Stdout, report)

	return nil
}

// render prints the strategy grid as an aligned table.
func render(out *os.File, report *pipeline.Report) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Fusion", "Clustering", "Rand", "Adj. Rand", "NMI"})
	for _, row := range report.Rows {
		table.Append([]string{
			row.Fusion,
			row.Cluster,
			strconv.FormatFloat(row.Scores.Rand, 'f', 4, 64),
			strconv.FormatFloat(row.Scores.AdjustedRand, 'f', 4, 64),
			strconv.FormatFloat(row.Scores.NMI, 'f', 4, 64),
		})
	}
	table.SetCaption(true, fmt.Sprintf("%d samples, %d modalities",
		report.Samples, len(report.Modalities)))
	table.Render()
}

// readMatrixCSV loads a feature matrix: header row, then one row per
// sample with the sample ID in the first column.
func readMatrixCSV(path string) ([]string, *mat.Dense, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, errors.New("need a header row and at least one sample")
	}
	features := len(records[0]) - 1
	if features < 1 {
		return nil, nil, errors.New("need at least one feature column")
	}

	n := len(records) - 1
	ids := make([]string, n)
	x := mat.NewDense(n, features, nil)
	for i, rec := range records[1:] {
		if len(rec) != features+1 {
			return nil, nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, features+1, len(rec))
		}
		ids[i] = rec[0]
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d, column %d: %w", i+2, j+2, err)
			}
			x.Set(i, j, v)
		}
	}

	return ids, x, nil
}

// readLabelsCSV loads the reference partition: header row, then
// sampleID,label rows with integer labels >= 1.
func readLabelsCSV(path string) ([]string, []int, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, errors.New("need a header row and at least one sample")
	}

	ids := make([]string, 0, len(records)-1)
	labels := make([]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, nil, fmt.Errorf("row %d: expected sampleID,label", i+2)
		}
		l, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ids = append(ids, rec[0])
		labels = append(labels, l)
	}

	return ids, labels, nil
}

// readCSV slurps one CSV file.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	return r.ReadAll()
}

// sameIDs verifies that two sample ID lists agree exactly, order included.
func sameIDs(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("sample %d: expected ID %q, got %q", i+1, want[i], got[i])
		}
	}

	return nil
}
