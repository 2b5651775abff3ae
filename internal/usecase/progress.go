package usecase

import "github.com/DRSN-tech/visual-search/internal/domain"

// Контрольные точки прогресса: первые 50% — подготовка и запрос, 50..90 — скан каталога,
// последние 10% — ранжирование.
const (
	progressValidated      = 10
	progressModelReady     = 20
	progressQueryExtracted = 50
	progressScanSpan       = 40
	progressRanking        = 90
	progressDone           = 100
)

// progressTracker передаёт прогресс в reporter, не давая проценту убывать.
// Используется только горутиной поиска.
type progressTracker struct {
	reporter ProgressReporter
	last     float64
	state    domain.SearchState
}

func newProgressTracker(reporter ProgressReporter) *progressTracker {
	return &progressTracker{reporter: reporter, state: domain.StateIdle}
}

func (p *progressTracker) set(state domain.SearchState, percent float64, status string) {
	percent = max(0, min(100, percent))
	if percent < p.last {
		percent = p.last
	}

	p.last = percent
	p.state = state

	if p.reporter != nil {
		p.reporter.Report(domain.SearchProgress{State: state, Percent: percent, Status: status})
	}
}

// fail переводит поиск в Error, процент не меняется.
func (p *progressTracker) fail(status string) {
	p.set(domain.StateError, p.last, status)
}

// scanPercent — прогресс после обработки done из total товаров.
func scanPercent(done, total int) float64 {
	if total <= 0 {
		return progressQueryExtracted + progressScanSpan
	}

	return progressQueryExtracted + float64(done)/float64(total)*progressScanSpan
}
