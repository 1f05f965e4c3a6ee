package ledger

import (
	"testing"
	"time"

	"github.com/gallerynet/settlement-engine/internal/access"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/gallerynet/settlement-engine/pkg/settle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) Ledger {
	t.Helper()

	accessCtrl := access.NewController("admin")
	require.NoError(t, accessCtrl.GrantRole("admin", access.RoleTransferAuthority, "engine"))

	return NewLedger(accessCtrl)
}

func TestRecordTransfer(t *testing.T) {
	l := newLedger(t)
	ts := time.Now()

	require.NoError(t, l.RecordTransfer("engine", "asset-1", "alice", ts))

	owner, ok := l.GetCurrentOwner("asset-1")
	require.True(t, ok)
	assert.Equal(t, "alice", owner)

	history := l.GetHistory("asset-1")
	require.Len(t, history, 1)
	assert.Equal(t, entity.OwnershipRecord{AssetId: "asset-1", Owner: "alice", Seq: 0, Timestamp: ts}, history[0])
}

func TestRecordTransferRequiresAuthority(t *testing.T) {
	l := newLedger(t)

	err := l.RecordTransfer("mallory", "asset-1", "mallory", time.Now())
	assert.ErrorIs(t, err, settle.ErrUnauthorized)
	assert.Empty(t, l.GetHistory("asset-1"))
}

func TestRecordTransferRejectsEmptyOwner(t *testing.T) {
	l := newLedger(t)

	assert.ErrorIs(t, l.RecordTransfer("engine", "asset-1", "", time.Now()), settle.ErrInvalidParameter)
}

func TestHistoryIsAppendOnly(t *testing.T) {
	l := newLedger(t)
	ts := time.Now()

	require.NoError(t, l.RecordTransfer("engine", "asset-1", "alice", ts))
	require.NoError(t, l.RecordTransfer("engine", "asset-1", "bob", ts.Add(time.Minute)))
	require.NoError(t, l.RecordTransfer("engine", "asset-1", "carol", ts.Add(2*time.Minute)))

	history := l.GetHistory("asset-1")
	require.Len(t, history, 3)
	assert.Equal(t, "alice", history[0].Owner)
	assert.Equal(t, "bob", history[1].Owner)
	assert.Equal(t, "carol", history[2].Owner)
	assert.Equal(t, []int{0, 1, 2}, []int{history[0].Seq, history[1].Seq, history[2].Seq})

	owner, _ := l.GetCurrentOwner("asset-1")
	assert.Equal(t, "carol", owner)
}

func TestGetHistoryReturnsCopy(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.RecordTransfer("engine", "asset-1", "alice", time.Now()))

	history := l.GetHistory("asset-1")
	history[0].Owner = "mallory"

	fresh := l.GetHistory("asset-1")
	assert.Equal(t, "alice", fresh[0].Owner)
}

func TestGetCurrentOwnerUnassigned(t *testing.T) {
	l := newLedger(t)

	_, ok := l.GetCurrentOwner("never-traded")
	assert.False(t, ok)
}
