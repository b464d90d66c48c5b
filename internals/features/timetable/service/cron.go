// file: internals/features/timetable/service/cron.go
package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartRegenerateCron menjadwalkan Generate berkala. Ekspresi kosong = nonaktif
// (nil, nil). Pemanggil wajib Stop() saat shutdown.
func StartRegenerateCron(spec string, p *Planner, timeout time.Duration, log *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() { regenerate(p, timeout, log) })
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info("[TIMETABLE][CRON] ⏰ periodic regeneration scheduled", zap.String("spec", spec))
	return c, nil
}

func regenerate(p *Planner, timeout time.Duration, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := p.Generate(ctx)
	if err != nil {
		log.Warn("[TIMETABLE][CRON] ❌ regeneration failed", zap.Error(err))
		return
	}
	log.Info("[TIMETABLE][CRON] ✅ regeneration finished",
		zap.Uint64("token", out.Token),
		zap.Bool("applied", out.Applied),
		zap.Bool("simulated", out.Simulated))
}
