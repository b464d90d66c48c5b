// file: internals/features/timetable/service/repository.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timetable_backend/internals/features/timetable/errs"
	"timetable_backend/internals/features/timetable/model"
)

// Repository adalah Persistence Gateway: load saat startup, save setelah
// setiap transisi yang diterima.
type Repository interface {
	Load(ctx context.Context) (Stored, error)
	SaveSubjects(ctx context.Context, subjects []model.Subject) error
	SaveGrid(ctx context.Context, grid model.Grid, simulated bool) error
	Reset(ctx context.Context) error
}

// Stored: Subjects/Grid nil berarti belum pernah disimpan.
type Stored struct {
	Subjects  []model.Subject
	Grid      model.Grid
	Simulated bool
}

type GormRepository struct {
	DB        *gorm.DB
	Workspace string
}

var _ Repository = (*GormRepository)(nil)

func NewGormRepository(db *gorm.DB, workspace string) *GormRepository {
	if workspace == "" {
		workspace = "default"
	}
	return &GormRepository{DB: db, Workspace: workspace}
}

func (r *GormRepository) Load(ctx context.Context) (Stored, error) {
	var (
		out  Stored
		rows []model.SubjectModel
		grid model.GridModel
		hasG bool
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return r.DB.WithContext(ctx).
			Where("timetable_subject_workspace = ?", r.Workspace).
			Order("timetable_subject_order ASC").
			Find(&rows).Error
	})
	eg.Go(func() error {
		err := r.DB.WithContext(ctx).
			Where("timetable_grid_workspace = ?", r.Workspace).
			Take(&grid).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		hasG = err == nil
		return err
	})
	if err := eg.Wait(); err != nil {
		return Stored{}, fmt.Errorf("%w: load timetable: %v", errs.ErrUnknown, err)
	}

	if len(rows) > 0 {
		out.Subjects = make([]model.Subject, 0, len(rows))
		for _, m := range rows {
			out.Subjects = append(out.Subjects, m.ToSubject())
		}
	}
	if hasG {
		g, err := model.DecodeGrid(grid.TimetableGridData)
		if err != nil {
			return Stored{}, fmt.Errorf("%w: decode stored grid: %v", errs.ErrUnknown, err)
		}
		out.Grid = g
		out.Simulated = grid.TimetableGridSimulated
	}
	return out, nil
}

// SaveSubjects mengganti seluruh katalog workspace dalam satu transaksi,
// urutan disimpan di kolom order.
func (r *GormRepository) SaveSubjects(ctx context.Context, subjects []model.Subject) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("timetable_subject_workspace = ?", r.Workspace).
			Delete(&model.SubjectModel{}).Error; err != nil {
			return err
		}
		if len(subjects) == 0 {
			return nil
		}
		rows := make([]model.SubjectModel, 0, len(subjects))
		for i, s := range subjects {
			rows = append(rows, model.SubjectModelFrom(r.Workspace, i, s))
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
	return mapDBError("save subjects", err)
}

func (r *GormRepository) SaveGrid(ctx context.Context, grid model.Grid, simulated bool) error {
	data, err := model.EncodeGrid(grid)
	if err != nil {
		return fmt.Errorf("%w: encode grid: %v", errs.ErrUnknown, err)
	}
	row := model.GridModel{
		TimetableGridWorkspace: r.Workspace,
		TimetableGridData:      data,
		TimetableGridSimulated: simulated,
	}
	err = r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "timetable_grid_workspace"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"timetable_grid_data",
			"timetable_grid_simulated",
			"timetable_grid_updated_at",
		}),
	}).Create(&row).Error
	return mapDBError("save grid", err)
}

func (r *GormRepository) Reset(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("timetable_subject_workspace = ?", r.Workspace).
			Delete(&model.SubjectModel{}).Error; err != nil {
			return err
		}
		return tx.Where("timetable_grid_workspace = ?", r.Workspace).
			Delete(&model.GridModel{}).Error
	})
	return mapDBError("reset", err)
}

// mapDBError: unique violation (23505) -> ValidationError, sisanya Unknown.
func mapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s: duplicate entry (%s)", errs.ErrValidation, op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %s: %v", errs.ErrUnknown, op, err)
}
