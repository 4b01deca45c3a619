package vesting

import (
	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	builtin "github.com/vestforge/vesting-actors/actors/builtin"
	adt "github.com/vestforge/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	ScheduleCount uint64
	RevokedCount  uint64
	TotalVested   abi.TokenAmount
	TotalReleased abi.TokenAmount
}

// Checks internal invariants of vesting state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	acc.Require(st.CliffEnd >= st.StartTime, "cliff end %v precedes start %v", st.CliffEnd, st.StartTime)
	acc.Require(st.VestingEnd >= st.CliffEnd, "vesting end %v precedes cliff end %v", st.VestingEnd, st.CliffEnd)
	acc.Require(st.FeeBasisPoints <= MaxFeeBasisPoints, "fee %d exceeds maximum %d basis points", st.FeeBasisPoints, MaxFeeBasisPoints)
	acc.Require(st.BeneficiaryCount <= MaxBeneficiaries, "beneficiary count %d exceeds capacity %d", st.BeneficiaryCount, MaxBeneficiaries)

	totalVested := big.Zero()
	totalReleased := big.Zero()
	var scheduleCount, revokedCount uint64

	schedules := adt.AsMap(store, st.Schedules)
	var schedule VestingSchedule
	err := schedules.ForEach(&schedule, func(key string) error {
		scheduleCount++
		acc.Require(schedule.TotalAmount.GreaterThan(big.Zero()), "schedule %x has non-positive total %v", key, schedule.TotalAmount)
		acc.Require(schedule.ReleasedAmount.GreaterThanEqual(big.Zero()), "schedule %x has negative released %v", key, schedule.ReleasedAmount)
		acc.Require(schedule.ReleasedAmount.LessThanEqual(schedule.TotalAmount), "schedule %x released %v exceeds total %v", key, schedule.ReleasedAmount, schedule.TotalAmount)
		acc.Require(schedule.StartTime == st.StartTime, "schedule %x start %v differs from ledger start %v", key, schedule.StartTime, st.StartTime)
		totalVested = big.Add(totalVested, schedule.TotalAmount)
		totalReleased = big.Add(totalReleased, schedule.ReleasedAmount)
		if schedule.Revoked {
			revokedCount++
		}
		return nil
	})
	acc.RequireNoError(err, "error iterating schedules")

	acc.Require(scheduleCount == st.BeneficiaryCount, "schedule count %d does not match beneficiary count %d", scheduleCount, st.BeneficiaryCount)
	acc.Require(totalVested.Equals(st.TotalVested), "sum of schedule totals %v does not match TotalVested %v", totalVested, st.TotalVested)

	list := adt.AsArray(store, st.Beneficiaries)
	listLen, err := list.Length()
	acc.RequireNoError(err, "error measuring beneficiary list")
	acc.Require(listLen == st.BeneficiaryCount, "beneficiary list length %d does not match count %d", listLen, st.BeneficiaryCount)

	var beneficiary addr.Address
	err = list.ForEach(&beneficiary, func(i int64) error {
		_, found, err := st.GetSchedule(store, beneficiary)
		if err != nil {
			return err
		}
		acc.Require(found, "beneficiary %v at index %d has no schedule", beneficiary, i)
		return nil
	})
	acc.RequireNoError(err, "error iterating beneficiary list")

	return &StateSummary{
		ScheduleCount: scheduleCount,
		RevokedCount:  revokedCount,
		TotalVested:   totalVested,
		TotalReleased: totalReleased,
	}, acc
}
