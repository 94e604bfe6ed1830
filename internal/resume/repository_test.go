package resume

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/database"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRepository(t *testing.T, opts ...Option) (*Repository, *stepClock) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	clock := &stepClock{t: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	return NewRepository(db, opts...), clock
}

func sampleData() Data {
	return Data{
		Personal: Personal{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Experience: []Experience{
			{Company: "Analytical Engines", Position: "Engineer"},
		},
	}
}

func TestRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	rec, err := repo.Create(ctx, 1, sampleData(), "  My CV ")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprint(clock.t.UnixMilli()), rec.ID)
	assert.Equal(t, "My CV", rec.Title)
	assert.True(t, rec.CreatedAt.Equal(clock.t))
	assert.True(t, rec.UpdatedAt.Equal(clock.t))
	assert.NotNil(t, rec.Data.Education, "nil lists are normalized")
}

func TestRepository_CreateTitleFallbacks(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	named, err := repo.Create(ctx, 1, sampleData(), "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace's Resume", named.Title)

	anonymous, err := repo.Create(ctx, 1, Data{}, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Resume - 2024-03-09", anonymous.Title)
	assert.NotEqual(t, named.ID, anonymous.ID)
}

func TestRepository_UpdateReplacesDataAndTouchesOnlyUpdatedAt(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, 1, sampleData(), "Original")
	require.NoError(t, err)

	clock.advance(time.Hour)
	replacement := Data{Personal: Personal{FullName: "Grace Hopper"}}
	updated, err := repo.Update(ctx, 1, created.ID, replacement, "")
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title, "empty title keeps the old one")
	assert.Equal(t, "Grace Hopper", updated.Data.Personal.FullName)
	assert.Empty(t, updated.Data.Experience, "data is replaced, not merged")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.Equal(clock.t))

	renamed, err := repo.Update(ctx, 1, created.ID, replacement, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)
}

func TestRepository_UpdateUnknownID(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Update(context.Background(), 1, "404", Data{}, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ScopesByUser(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	rec, err := repo.Create(ctx, 1, sampleData(), "")
	require.NoError(t, err)

	_, err = repo.Get(ctx, 2, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, 2, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	others, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestRepository_DeleteIsNotRepeatable(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	rec, err := repo.Create(ctx, 1, sampleData(), "")
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, removed.ID)

	_, err = repo.Delete(ctx, 1, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_ListKeepsCreationOrder(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		rec, err := repo.Create(ctx, 1, Data{}, fmt.Sprintf("r%d", i))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		clock.advance(time.Minute)
	}

	all, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, rec := range all {
		assert.Equal(t, ids[i], rec.ID)
	}
}

func TestRepository_Quota(t *testing.T) {
	repo, _ := newTestRepository(t, WithMaxResumes(1))
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, Data{}, "first")
	require.NoError(t, err)

	_, err = repo.Create(ctx, 1, Data{}, "second")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, err = repo.Create(ctx, 2, Data{}, "other user")
	assert.NoError(t, err)
}

func TestRepository_CreateRetriesWhenIDTaken(t *testing.T) {
	repo, clock := newTestRepository(t)
	// 另一个实例共用数据库与时钟，会在同一毫秒生成相同 ID。
	other := NewRepository(repo.db, WithClock(clock.now))
	ctx := context.Background()

	first, err := repo.Create(ctx, 1, sampleData(), "first")
	require.NoError(t, err)
	second, err := other.Create(ctx, 2, sampleData(), "second")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprint(clock.t.UnixMilli()), first.ID)
	assert.Equal(t, fmt.Sprint(clock.t.UnixMilli()+1), second.ID)

	got, err := repo.Get(ctx, 1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title, "existing row is left untouched")
}

func TestRepository_Duplicate(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	src, err := repo.Create(ctx, 1, sampleData(), "Base")
	require.NoError(t, err)

	dup, err := repo.Duplicate(ctx, 1, src.ID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Base (Copy)", dup.Title)
	assert.Equal(t, src.Data, dup.Data)
}

func TestRepository_ImportSkipsExistingIDs(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	legacy := []Resume{
		{ID: "1700000000000", Title: "Legacy", CreatedAt: created, UpdatedAt: created, Data: sampleData()},
		{ID: "1700000000001", Data: Data{}},
	}

	n, err := repo.Import(ctx, 1, legacy)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.Import(ctx, 1, legacy[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := repo.Get(ctx, 1, "1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "Legacy", got.Title)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestRepository_SetExportStatus(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	rec, err := repo.Create(ctx, 1, Data{}, "")
	require.NoError(t, err)

	clock.advance(time.Hour)
	require.NoError(t, repo.SetExportStatus(ctx, rec.ID, database.ExportStatusCompleted, "exports/1/a.pdf"))

	got, err := repo.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ExportStatusCompleted, got.ExportStatus)
	assert.Equal(t, "exports/1/a.pdf", got.PdfObjectKey)
	assert.True(t, got.UpdatedAt.Equal(rec.UpdatedAt))

	assert.ErrorIs(t, repo.SetExportStatus(ctx, "missing", database.ExportStatusFailed, ""), ErrNotFound)
}
