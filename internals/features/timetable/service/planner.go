// file: internals/features/timetable/service/planner.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/engine"
	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/gateway"
	"timetable_backend/internals/features/timetable/importer"
	"timetable_backend/internals/features/timetable/model"
	"timetable_backend/internals/features/timetable/palette"
)

const (
	DefaultMinSubjects       = 5
	DefaultGenerationTimeout = 90 * time.Second
)

type Options struct {
	Calendar          *calendar.Calendar
	Generator         gateway.Generator
	Repository        Repository
	Logger            *zap.Logger
	MinSubjects       int // 0 = tanpa batas minimum
	GenerationTimeout time.Duration
}

// Outcome hasil satu request generate. Applied=false berarti response sudah
// basi (ada request/edit yang lebih baru) dan dibuang.
type Outcome struct {
	Token     uint64     `json:"token"`
	Applied   bool       `json:"applied"`
	Simulated bool       `json:"simulated"`
	Reason    string     `json:"reason,omitempty"`
	Grid      model.Grid `json:"grid,omitempty"`
}

// View: grid yang sudah dirender untuk tampilan.
type View struct {
	Days      []engine.DayRow          `json:"days"`
	Colors    map[string]palette.Color `json:"colors"`
	Simulated bool                     `json:"simulated"`
	Empty     bool                     `json:"empty"`
}

// Planner pemilik tunggal state timetable: katalog, grid, flag simulated,
// dan token request terakhir. Semua transisi lewat mutex; panggilan ke
// generation service dilakukan di luar lock.
type Planner struct {
	mu        sync.Mutex
	cal       *calendar.Calendar
	store     *engine.Store
	editor    *engine.Editor
	subjects  []model.Subject
	simulated bool
	latest    uint64

	gen     gateway.Generator
	repo    Repository
	log     *zap.Logger
	min     int
	timeout time.Duration
}

func NewPlanner(opts Options) *Planner {
	cal := opts.Calendar
	if cal == nil {
		cal = calendar.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.GenerationTimeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	minimum := opts.MinSubjects
	if minimum < 0 {
		minimum = 0
	}
	store := engine.NewStore(cal)
	return &Planner{
		cal:      cal,
		store:    store,
		editor:   engine.NewEditor(store),
		subjects: []model.Subject{},
		gen:      opts.Generator,
		repo:     opts.Repository,
		log:      log,
		min:      minimum,
		timeout:  timeout,
	}
}

func (p *Planner) Calendar() *calendar.Calendar { return p.cal }

// Load membaca state tersimpan. Grid yang bentuknya tidak cocok dengan
// kalender aktif diabaikan (mulai dari grid kosong).
func (p *Planner) Load(ctx context.Context) error {
	if p.repo == nil {
		return nil
	}
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if st.Subjects != nil {
		p.subjects = model.CloneSubjects(st.Subjects)
	}
	if st.Grid != nil {
		if err := p.store.Replace(st.Grid); err != nil {
			p.log.Warn("[TIMETABLE][LOAD] ⚠️ stored grid does not fit calendar, starting empty", zap.Error(err))
		} else {
			p.simulated = st.Simulated
		}
	}
	p.log.Info("[TIMETABLE][LOAD] ✅ state loaded",
		zap.Int("subjects", len(p.subjects)),
		zap.Bool("grid_empty", p.store.IsEmpty()),
		zap.Bool("simulated", p.simulated))
	return nil
}

/* =========================================================
   Katalog
========================================================= */

func (p *Planner) Subjects() []model.Subject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.CloneSubjects(p.subjects)
}

func (p *Planner) Subject(id uuid.UUID) (model.Subject, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return model.Subject{}, false
	}
	return model.CloneSubjects(p.subjects[i : i+1])[0], true
}

func (p *Planner) indexOf(id uuid.UUID) int {
	for i, s := range p.subjects {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) hasKey(key string, except uuid.UUID) bool {
	for _, s := range p.subjects {
		if s.ID != except && s.Key() == key {
			return true
		}
	}
	return false
}

func (p *Planner) AddSubject(ctx context.Context, s model.Subject) (model.Subject, error) {
	s.Normalize()
	if err := validateSubject(s); err != nil {
		return model.Subject{}, err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexOf(s.ID) >= 0 {
		return model.Subject{}, errs.NewFieldError("id", "subject id already exists")
	}
	if p.hasKey(s.Key(), uuid.Nil) {
		return model.Subject{}, duplicateError()
	}

	next := append(model.CloneSubjects(p.subjects), s)
	if err := p.saveSubjects(ctx, next); err != nil {
		return model.Subject{}, err
	}
	p.subjects = next
	p.log.Info("[TIMETABLE][SUBJECT][CREATE] ✅ subject added",
		zap.String("id", s.ID.String()), zap.String("name", s.Name))
	return s, nil
}

// UpdateSubject mengganti data katalog saja; assignment yang sudah
// ditempatkan tetap memakai snapshot lama.
func (p *Planner) UpdateSubject(ctx context.Context, id uuid.UUID, s model.Subject) (model.Subject, error) {
	s.ID = id
	s.Normalize()
	if err := validateSubject(s); err != nil {
		return model.Subject{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return model.Subject{}, fmt.Errorf("%w: subject %s not found", errs.ErrValidation, id)
	}
	if p.hasKey(s.Key(), id) {
		return model.Subject{}, duplicateError()
	}

	next := model.CloneSubjects(p.subjects)
	next[i] = s
	if err := p.saveSubjects(ctx, next); err != nil {
		return model.Subject{}, err
	}
	p.subjects = next
	p.log.Info("[TIMETABLE][SUBJECT][UPDATE] ✅ subject updated", zap.String("id", id.String()))
	return s, nil
}

func (p *Planner) RemoveSubject(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: subject %s not found", errs.ErrValidation, id)
	}
	next := model.CloneSubjects(p.subjects[:i])
	next = append(next, model.CloneSubjects(p.subjects[i+1:])...)
	if err := p.saveSubjects(ctx, next); err != nil {
		return err
	}
	p.subjects = next
	p.log.Info("[TIMETABLE][SUBJECT][DELETE] 🗑️ subject removed", zap.String("id", id.String()))
	return nil
}

// ImportSubjects menambahkan baris valid dari report. Duplikat (terhadap
// katalog maupun baris sebelumnya di batch yang sama) ditandai invalid.
func (p *Planner) ImportSubjects(ctx context.Context, rep importer.Report) (importer.Report, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[string]bool, len(p.subjects))
	for _, s := range p.subjects {
		seen[s.Key()] = true
	}

	out := importer.Report{Rows: make([]importer.Row, len(rep.Rows))}
	next := model.CloneSubjects(p.subjects)
	added := 0
	for i, row := range rep.Rows {
		out.Rows[i] = row
		if !row.Valid || row.Subject == nil {
			continue
		}
		s := *row.Subject
		s.Normalize()
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if err := validateSubject(s); err != nil {
			out.Rows[i].Valid = false
			out.Rows[i].Error = "invalid subject fields"
			continue
		}
		if seen[s.Key()] {
			out.Rows[i].Valid = false
			out.Rows[i].Error = "duplicate subject"
			continue
		}
		seen[s.Key()] = true
		out.Rows[i].Subject = &s
		next = append(next, s)
		added++
	}

	if added == 0 {
		return out, nil
	}
	if err := p.saveSubjects(ctx, next); err != nil {
		return importer.Report{}, err
	}
	p.subjects = next
	p.log.Info("[TIMETABLE][SUBJECT][IMPORT] 📥 bulk import applied",
		zap.Int("added", added), zap.Int("rejected", out.InvalidCount()))
	return out, nil
}

/* =========================================================
   Generate
========================================================= */

// Generate meminta grid baru ke generation service. ServiceUnavailable
// dipulihkan dengan fallback (simulated); error lain diteruskan. Response
// yang tokennya sudah bukan yang terbaru dibuang tanpa error.
func (p *Planner) Generate(ctx context.Context) (Outcome, error) {
	p.mu.Lock()
	if p.min > 0 && len(p.subjects) < p.min {
		n := len(p.subjects)
		p.mu.Unlock()
		return Outcome{}, errs.NewFieldError("subjects",
			fmt.Sprintf("at least %d subjects are required to generate, have %d", p.min, n))
	}
	p.latest++
	token := p.latest
	catalog := model.CloneSubjects(p.subjects)
	p.mu.Unlock()

	p.log.Info("[TIMETABLE][GENERATE] ▶️ request started",
		zap.Uint64("token", token), zap.Int("subjects", len(catalog)))

	grid, genErr := p.call(ctx, catalog)

	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.latest {
		p.log.Info("[TIMETABLE][GENERATE] ⏭️ stale response discarded",
			zap.Uint64("token", token), zap.Uint64("latest", p.latest))
		return Outcome{Token: token}, nil
	}

	out := Outcome{Token: token}
	if genErr != nil {
		if errs.KindOf(genErr) != errs.KindServiceUnavailable {
			p.log.Error("[TIMETABLE][GENERATE] ❌ generation failed",
				zap.Uint64("token", token), zap.Error(genErr))
			return out, genErr
		}
		p.log.Warn("[TIMETABLE][GENERATE] ⚠️ service unavailable, using fallback",
			zap.Uint64("token", token), zap.Error(genErr))
		grid = engine.Fallback(catalog, p.cal)
		out.Simulated = true
		out.Reason = genErr.Error()
	}

	prev, prevSim := p.store.Snapshot(), p.simulated
	if err := p.store.Replace(grid); err != nil {
		return out, fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}
	p.simulated = out.Simulated
	if err := p.saveGrid(ctx); err != nil {
		_ = p.store.Replace(prev)
		p.simulated = prevSim
		return out, err
	}

	out.Applied = true
	out.Grid = p.store.Snapshot()
	p.log.Info("[TIMETABLE][GENERATE] ✅ grid replaced",
		zap.Uint64("token", token), zap.Bool("simulated", out.Simulated))
	return out, nil
}

func (p *Planner) call(ctx context.Context, catalog []model.Subject) (model.Grid, error) {
	if p.gen == nil {
		return nil, fmt.Errorf("%w: no generator configured", errs.ErrServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.gen.Generate(ctx, catalog)
}

/* =========================================================
   Edit manual
========================================================= */

func (p *Planner) InsertPeriod(ctx context.Context, day string, periodIndex int, subjectID uuid.UUID) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(subjectID)
	if i < 0 {
		return nil, errs.NewFieldError("subject_id", "subject not found in catalog")
	}

	prev := p.store.Snapshot()
	written, err := p.editor.InsertPeriod(day, periodIndex, p.subjects[i])
	if err != nil {
		return nil, err
	}
	if err := p.commitEdit(ctx, prev); err != nil {
		return nil, err
	}
	p.log.Info("[TIMETABLE][GRID][INSERT] ✅ period written",
		zap.String("day", day), zap.Ints("periods", written),
		zap.String("subject", p.subjects[i].Name))
	return written, nil
}

func (p *Planner) RemovePeriod(ctx context.Context, day string, periodIndex int) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.store.Snapshot()
	cleared, err := p.editor.RemovePeriod(day, periodIndex)
	if err != nil {
		return nil, err
	}
	if len(cleared) == 0 {
		return cleared, nil
	}
	if err := p.commitEdit(ctx, prev); err != nil {
		return nil, err
	}
	p.log.Info("[TIMETABLE][GRID][REMOVE] 🗑️ period cleared",
		zap.String("day", day), zap.Ints("periods", cleared))
	return cleared, nil
}

// commitEdit: edit yang diterima menaikkan token (generate yang sedang
// berjalan jadi basi) lalu disimpan; gagal simpan = rollback.
func (p *Planner) commitEdit(ctx context.Context, prev model.Grid) error {
	if err := p.saveGrid(ctx); err != nil {
		_ = p.store.Replace(prev)
		return err
	}
	p.latest++
	return nil
}

// Reset mengosongkan katalog dan grid sekaligus.
func (p *Planner) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.repo != nil {
		if err := p.repo.Reset(ctx); err != nil {
			return err
		}
	}
	p.subjects = []model.Subject{}
	p.store = engine.NewStore(p.cal)
	p.editor = engine.NewEditor(p.store)
	p.simulated = false
	p.latest++
	p.log.Info("[TIMETABLE][RESET] 🧹 subjects and grid cleared")
	return nil
}

/* =========================================================
   Baca grid
========================================================= */

func (p *Planner) Grid() (model.Grid, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Snapshot(), p.simulated
}

// View merender grid dengan filter. Warna dihitung dari grid penuh supaya
// tidak berubah saat filter diganti.
func (p *Planner) View(f engine.Filter) View {
	p.mu.Lock()
	g, sim, empty := p.store.Snapshot(), p.simulated, p.store.IsEmpty()
	p.mu.Unlock()

	return View{
		Days:      engine.RenderGrid(g, p.cal, f.Predicate()),
		Colors:    palette.ForGrid(g, p.cal),
		Simulated: sim,
		Empty:     empty,
	}
}

/* =========================================================
   Persistence
========================================================= */

func (p *Planner) saveSubjects(ctx context.Context, subjects []model.Subject) error {
	if p.repo == nil {
		return nil
	}
	if err := p.repo.SaveSubjects(ctx, subjects); err != nil {
		p.log.Error("[TIMETABLE][PERSIST] ❌ save subjects failed", zap.Error(err))
		return err
	}
	return nil
}

func (p *Planner) saveGrid(ctx context.Context) error {
	if p.repo == nil {
		return nil
	}
	if err := p.repo.SaveGrid(ctx, p.store.Snapshot(), p.simulated); err != nil {
		p.log.Error("[TIMETABLE][PERSIST] ❌ save grid failed", zap.Error(err))
		return err
	}
	return nil
}
