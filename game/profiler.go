package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Frame rate below which the profiler captures a CPU profile
const slowTPS = 40

var (
	errProfileCooldown = errors.New("capture on cooldown")
	errProfileBusy     = errors.New("already profiling")
)

// Profiler captures a CPU profile when the tick rate drops
type Profiler struct {
	mu       sync.Mutex
	busy     bool
	last     time.Time
	cooldown time.Duration
	duration time.Duration
	dir      string
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewProfiler creates a profiler that writes into dir
func NewProfiler(dir string, log zerolog.Logger) *Profiler {
	return &Profiler{
		cooldown: 30 * time.Second,
		duration: 5 * time.Second,
		dir:      dir,
		log:      log,
	}
}

// Capture starts a background CPU profile named after reason
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		return errProfileBusy
	}
	if !p.last.IsZero() && time.Since(p.last) < p.cooldown {
		return errProfileCooldown
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("profile dir: %w", err)
	}

	path := filepath.Join(p.dir, fmt.Sprintf("%s-%s.pprof", reason, time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("start profile: %w", err)
	}
	p.busy = true
	p.last = time.Now()
	p.log.Warn().Str("path", path).Str("reason", reason).Msg("capturing cpu profile")

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		time.Sleep(p.duration)
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			p.log.Error().Err(err).Msg("Failed to close profile")
		}
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()
	return nil
}

// Wait blocks until a running capture has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}
