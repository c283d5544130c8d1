package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	saved   *Dataset
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryStore) Load(ctx context.Context) (*Dataset, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved.Clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, ds *Dataset) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = ds.Clone()
	m.saves++
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryStore) {
	t.Helper()
	store := &memoryStore{saved: sampleDataset(t)}
	svc := NewService(store, discardLogger())
	require.NoError(t, svc.Reload(context.Background()))
	return svc, store
}

func TestServiceReload(t *testing.T) {
	t.Run("exposes the stored graph", func(t *testing.T) {
		svc, _ := newTestService(t)

		err := svc.View(func(ds *Dataset) error {
			assert.Len(t, ds.Missions, 3)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("keeps the previous graph on failure", func(t *testing.T) {
		svc, store := newTestService(t)
		store.loadErr = errors.New("disk gone")

		assert.Error(t, svc.Reload(context.Background()))
		assert.Len(t, svc.Snapshot().Missions, 3)
	})
}

func TestServiceEdits(t *testing.T) {
	ctx := context.Background()

	t.Run("successful edits are persisted", func(t *testing.T) {
		svc, store := newTestService(t)

		typeID, err := svc.AddMissionType(ctx, "Salvage")
		require.NoError(t, err)
		sysID, err := svc.AddSystem(ctx, "Nyx")
		require.NoError(t, err)
		planetID, err := svc.PutPlanet(ctx, "", Planet{ParentID: sysID, Name: "Delamar"})
		require.NoError(t, err)
		missionID, err := svc.PutMission(ctx, "", Mission{ParentID: typeID, Name: "Strip Hull", Time: 25})
		require.NoError(t, err)
		added, err := svc.AddLink(ctx, missionID, planetID)
		require.NoError(t, err)
		assert.True(t, added)
		disabled, err := svc.ToggleMission(ctx, missionID)
		require.NoError(t, err)
		assert.True(t, disabled)

		assert.Equal(t, 6, store.saves)
		assert.Equal(t, svc.Snapshot(), store.saved)
	})

	t.Run("rejected edits change nothing", func(t *testing.T) {
		svc, store := newTestService(t)

		_, err := svc.PutMission(ctx, "", Mission{ParentID: "type-missing", Name: "Lost", Time: 5})
		assert.ErrorIs(t, err, ErrNotFound)

		err = svc.RemoveLink(ctx, "sub-scan", "pla-c")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.Equal(t, 0, store.saves)
		assert.Len(t, svc.Snapshot().Missions, 3)
	})

	t.Run("persistence failure leaves the graph untouched", func(t *testing.T) {
		svc, store := newTestService(t)
		store.saveErr = errors.New("read-only filesystem")

		err := svc.Delete(ctx, KindMissions, "sub-scan")
		assert.Error(t, err)
		assert.Contains(t, svc.Snapshot().Missions, "sub-scan")
	})

	t.Run("delete and remove link", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.RemoveLink(ctx, "sub-smuggle", "pla-b"))
		require.NoError(t, svc.Delete(ctx, KindPlanets, "pla-a"))

		assert.Empty(t, svc.Snapshot().Links)
	})

	t.Run("import replaces the graph", func(t *testing.T) {
		svc, store := newTestService(t)

		replacement := New()
		replacement.Systems["sys-only"] = System{Name: "Solo"}
		require.NoError(t, svc.Import(ctx, replacement))

		snapshot := svc.Snapshot()
		assert.Empty(t, snapshot.Missions)
		assert.Contains(t, snapshot.Systems, "sys-only")
		assert.Equal(t, snapshot, store.saved)
	})
}
