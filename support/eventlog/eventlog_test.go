package eventlog_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	"github.com/vestforge/vesting-actors/actors/builtin/vesting"
	"github.com/vestforge/vesting-actors/support/eventlog"
	tutil "github.com/vestforge/vesting-actors/support/testing"
)

func TestAppendAndReplay(t *testing.T) {
	log, err := eventlog.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer log.Close() // nolint:errcheck

	alice := tutil.NewIDAddr(t, 105)
	now := abi.Timestamp(1700000000)

	require.NoError(t, log.Append(now, &vesting.VestingCreatedEvent{
		Beneficiary: alice, NetAmount: abi.NewTokenAmount(975), StartTime: now,
	}))
	require.NoError(t, log.Append(now+100, &vesting.TokensClaimedEvent{
		Beneficiary: alice, Amount: abi.NewTokenAmount(100), Time: now + 100,
	}))
	require.NoError(t, log.Append(now+200, &vesting.TokensClaimedEvent{
		Beneficiary: alice, Amount: abi.NewTokenAmount(32), Time: now + 200,
	}))

	count, err := log.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	claimed, err := log.CountByType(vesting.EventTypeTokensClaimed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claimed)

	var types []string
	var lastSeq int64
	err = log.Replay(func(rec eventlog.Record) error {
		assert.Greater(t, rec.Seq, lastSeq)
		lastSeq = rec.Seq
		types = append(types, rec.Type)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		vesting.EventTypeVestingCreated,
		vesting.EventTypeTokensClaimed,
		vesting.EventTypeTokensClaimed,
	}, types)
}

func TestPayloadRoundTrip(t *testing.T) {
	log, err := eventlog.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer log.Close() // nolint:errcheck

	alice := tutil.NewIDAddr(t, 105)
	emitted := &vesting.TokensClaimedEvent{
		Beneficiary: alice,
		Amount:      abi.NewTokenAmount(868),
		Time:        abi.Timestamp(1731560000),
	}
	require.NoError(t, log.Append(emitted.Time, emitted))

	err = log.Replay(func(rec eventlog.Record) error {
		require.Equal(t, vesting.EventTypeTokensClaimed, rec.Type)
		require.Equal(t, emitted.Time, rec.Time)

		var decoded vesting.TokensClaimedEvent
		require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(rec.Payload)))
		assert.Equal(t, emitted, &decoded)
		return nil
	})
	require.NoError(t, err)
}
