package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/model"
)

// Skema versi sqlite dari tabel timetable (tipe postgres uuid/jsonb/timestamptz
// diganti text/datetime supaya driver bisa scan balik).
var sqliteSchema = []string{
	`CREATE TABLE timetable_subjects (
		timetable_subject_id text PRIMARY KEY,
		timetable_subject_workspace varchar(80) NOT NULL,
		timetable_subject_order integer NOT NULL DEFAULT 0,
		timetable_subject_name varchar(160) NOT NULL,
		timetable_subject_teacher varchar(160) NOT NULL,
		timetable_subject_department varchar(120) NOT NULL,
		timetable_subject_semester varchar(120) NOT NULL,
		timetable_subject_is_lab boolean NOT NULL DEFAULT false,
		timetable_subject_periods_per_week integer NOT NULL,
		timetable_subject_capacity integer,
		timetable_subject_created_at datetime NOT NULL,
		timetable_subject_updated_at datetime NOT NULL
	)`,
	`CREATE TABLE timetable_grids (
		timetable_grid_workspace varchar(80) PRIMARY KEY,
		timetable_grid_data text NOT NULL,
		timetable_grid_simulated boolean NOT NULL DEFAULT false,
		timetable_grid_created_at datetime NOT NULL,
		timetable_grid_updated_at datetime NOT NULL
	)`,
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "timetable.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func withID(s model.Subject) model.Subject {
	s.ID = uuid.New()
	return s
}

func TestGormRepositoryEmptyLoad(t *testing.T) {
	repo := NewGormRepository(newSQLiteDB(t), "")
	assert.Equal(t, "default", repo.Workspace)

	st, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.Subjects)
	assert.Nil(t, st.Grid)
	assert.False(t, st.Simulated)
}

func TestGormRepositorySubjectsKeepOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewGormRepository(newSQLiteDB(t), "fall")

	capacity := 24
	zoology := withID(subject("Zoology", "Biology"))
	optics := withID(labSubject("Optics Lab", 3))
	optics.Capacity = &capacity
	algebra := withID(subject("Algebra", "Mathematics"))

	want := []model.Subject{zoology, optics, algebra}
	require.NoError(t, repo.SaveSubjects(ctx, want))

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, st.Subjects); diff != "" {
		t.Fatalf("subjects changed after save/load (-want +got):\n%s", diff)
	}

	// save berikutnya mengganti katalog, bukan menambah
	require.NoError(t, repo.SaveSubjects(ctx, []model.Subject{algebra}))
	st, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Subjects, 1)
	assert.Equal(t, algebra.ID, st.Subjects[0].ID)
}

func TestGormRepositoryGridUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewGormRepository(newSQLiteDB(t), "fall")
	cal := calendar.Default()

	first := model.NewGrid(cal)
	first["Monday"][0] = model.SnapshotOf(subject("Algebra", "Mathematics"))
	require.NoError(t, repo.SaveGrid(ctx, first, true))

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Simulated)
	if diff := cmp.Diff(first, st.Grid); diff != "" {
		t.Fatalf("grid changed after save/load (-want +got):\n%s", diff)
	}

	second := model.NewGrid(cal)
	lab := model.SnapshotOf(labSubject("Optics Lab", 3))
	for _, i := range []int{2, 3, 4} {
		second["Tuesday"][i] = lab.Clone()
	}
	require.NoError(t, repo.SaveGrid(ctx, second, false))

	st, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, st.Simulated)
	if diff := cmp.Diff(second, st.Grid); diff != "" {
		t.Fatalf("upsert did not replace grid (-want +got):\n%s", diff)
	}

	var rows int64
	require.NoError(t, repo.DB.Model(&model.GridModel{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestGormRepositoryWorkspacesAndReset(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	fall := NewGormRepository(db, "fall")
	spring := NewGormRepository(db, "spring")
	cal := calendar.Default()

	require.NoError(t, fall.SaveSubjects(ctx, []model.Subject{withID(subject("Algebra", "Mathematics"))}))
	require.NoError(t, fall.SaveGrid(ctx, model.NewGrid(cal), false))
	require.NoError(t, spring.SaveSubjects(ctx, []model.Subject{withID(subject("Botany", "Biology"))}))

	st, err := spring.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Subjects, 1)
	assert.Equal(t, "Botany", st.Subjects[0].Name)
	assert.Nil(t, st.Grid)

	require.NoError(t, fall.Reset(ctx))
	st, err = fall.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Subjects)
	assert.Nil(t, st.Grid)

	st, err = spring.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Subjects, 1)
}
