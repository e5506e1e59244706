package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EpisodeRecord struct {
	Episode int // Global episode index
	EpisodeMetric
}

type GameRecord struct {
	Game     int
	Opponent string // Search depth or "human"
	GameMetric
}

var (
	episodeHeader = []string{"episode", "mode", "result", "reward", "plies", "exploration", "search_depth", "table_size", "start_time", "duration"}
	gameHeader    = []string{"game", "opponent", "starter", "outcome", "winner", "resigned", "plies", "start_time", "end_time", "duration"}
)

// Writer appends records to CSV files in a directory named by run ID.
type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates root/<run ID>. An empty runID gets a fresh one.
func NewWriter(root, runID string) (*Writer, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	baseDir := filepath.Join(root, runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			record.Mode,
			record.Result,
			strconv.FormatFloat(record.Reward, 'f', 4, 64),
			strconv.Itoa(record.Plies),
			strconv.FormatFloat(record.Exploration, 'f', 4, 64),
			strconv.Itoa(record.SearchDepth),
			strconv.Itoa(record.TableSize),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	if err := w.appendRows("episode_records.csv", episodeHeader, rows); err != nil {
		return fmt.Errorf("failed to write episode records: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			record.Opponent,
			record.Starter,
			record.Outcome,
			record.Winner,
			strconv.FormatBool(record.Resigned),
			strconv.Itoa(record.Plies),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	if err := w.appendRows("game_records.csv", gameHeader, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

// appendRows writes the header only when the file is created.
func (w *Writer) appendRows(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	_, err := os.Stat(path)
	fresh := errors.Is(err, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if fresh {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}
