package anogan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// bestRecord is the metadata written next to the best
// checkpoint.
type bestRecord struct {
	Value      float64   `json:"value"`
	Thresholds []float64 `json:"thresholds"`
}

// A Selector tracks the best validation AUC seen so far
// and checkpoints the models whenever it strictly
// improves.
//
// Checkpoint writes run on their own goroutine so the
// training loop is not stalled on file I/O; Wait must be
// called before the process exits, or a pending best
// checkpoint may be lost.
type Selector struct {
	// LogDir is the root log directory.
	// Checkpoints go to <LogDir>/results/best.
	LogDir string

	mu   sync.Mutex
	best float64
	seq  int
	err  error

	fileMu sync.Mutex
	saved  int

	wg sync.WaitGroup
}

// NewSelector creates a Selector with no AUC seen yet.
func NewSelector(logDir string) *Selector {
	return &Selector{LogDir: logDir, best: -1}
}

// Best returns the best AUC seen so far, or -1 if none.
func (s *Selector) Best() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Consider offers a candidate AUC with the models that
// produced it and the threshold bin boundaries of the
// metric.
//
// If the candidate strictly exceeds the best AUC seen so
// far, the models are serialized (without optimizer
// state) before Consider returns, then written under
// <LogDir>/results/best along with the AUC value and
// thresholds in auc.json; only the file writes are
// deferred to a background goroutine, so later parameter
// updates cannot leak into the checkpoint.
func (s *Selector) Consider(auc float64, thresholds []float64,
	gen, disc serializer.Serializer) bool {
	s.mu.Lock()
	if auc <= s.best {
		s.mu.Unlock()
		return false
	}
	s.best = auc
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	// Serialize now: by the time the write lands, the
	// training loop may have resumed mutating the
	// parameter vectors.
	genData, err := serializer.SerializeAny(gen)
	if err != nil {
		s.setErr(err)
		return true
	}
	discData, err := serializer.SerializeAny(disc)
	if err != nil {
		s.setErr(err)
		return true
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.save(seq, auc, thresholds, genData, discData)
	}()
	return true
}

// Wait blocks until all dispatched checkpoint writes
// have completed.
func (s *Selector) Wait() {
	s.wg.Wait()
}

// Err returns the first checkpoint write failure, if
// any.
func (s *Selector) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Selector) save(seq int, auc float64, thresholds []float64,
	genData, discData []byte) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if seq < s.saved {
		// A better candidate has already been written.
		return
	}
	s.saved = seq

	dir := filepath.Join(s.LogDir, "results", "best")
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.setErr(err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "generator"), genData, 0755); err != nil {
		s.setErr(err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "discriminator"), discData, 0755); err != nil {
		s.setErr(err)
		return
	}
	data, err := json.Marshal(&bestRecord{Value: auc, Thresholds: thresholds})
	if err != nil {
		s.setErr(err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "auc.json"), data, 0644); err != nil {
		s.setErr(err)
	}
}

func (s *Selector) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = essentials.AddCtx("save checkpoint", err)
	}
}

// LoadBest loads the best checkpointed model pair from a
// log directory.
func LoadBest(logDir string) (*NetGenerator, *NetDiscriminator, error) {
	dir := filepath.Join(logDir, "results", "best")
	var gen *NetGenerator
	if err := serializer.LoadAny(filepath.Join(dir, "generator"), &gen); err != nil {
		return nil, nil, essentials.AddCtx("load best generator", err)
	}
	var disc *NetDiscriminator
	if err := serializer.LoadAny(filepath.Join(dir, "discriminator"), &disc); err != nil {
		return nil, nil, essentials.AddCtx("load best discriminator", err)
	}
	return gen, disc, nil
}

// ReadBestAUC reads the best checkpoint's metadata from
// a log directory: the AUC value and the metric's
// threshold bin boundaries.
func ReadBestAUC(logDir string) (float64, []float64, error) {
	path := filepath.Join(logDir, "results", "best", "auc.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, essentials.AddCtx("read best AUC", err)
	}
	var record bestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, nil, essentials.AddCtx("read best AUC", err)
	}
	return record.Value, record.Thresholds, nil
}
