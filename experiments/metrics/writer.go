package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/name/runID and writes all records below it.
func NewWriter(baseDir, name, runID string) (*Writer, error) {
	dir := filepath.Join(baseDir, name, runID)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	header := []string{"episode", "steps", "reward", "training", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Steps),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			strconv.FormatBool(record.Training),
			record.Duration.String(),
		})
	}
	return w.write("episode_records.csv", header, rows)
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"step", "algorithm", "duration", "expansions", "evaluations", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Step),
			record.Algorithm,
			record.Duration.String(),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.write("search_records.csv", header, rows)
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s header", filename)
	}
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return errors.Wrapf(err, "failed to write %s rows", filename)
	}
	return nil
}
