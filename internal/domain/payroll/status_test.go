package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from Status
		op   Operation
		to   Status
		ok   bool
	}{
		{StatusDraft, OpProcess, StatusProcessed, true},
		{StatusProcessed, OpProcess, StatusProcessed, false},
		{StatusPaid, OpProcess, StatusPaid, false},
		{StatusCancelled, OpProcess, StatusCancelled, false},

		{StatusProcessed, OpMarkPaid, StatusPaid, true},
		{StatusDraft, OpMarkPaid, StatusDraft, false},
		{StatusPaid, OpMarkPaid, StatusPaid, false},

		{StatusDraft, OpRecalculate, StatusDraft, true},
		{StatusProcessed, OpRecalculate, StatusProcessed, true},
		{StatusCancelled, OpRecalculate, StatusCancelled, true},
		{StatusPaid, OpRecalculate, StatusPaid, false},

		{StatusDraft, OpCancel, StatusCancelled, true},
		{StatusProcessed, OpCancel, StatusCancelled, true},
		{StatusPaid, OpCancel, StatusPaid, false},
		{StatusCancelled, OpCancel, StatusCancelled, false},

		{StatusPaid, OpUpdate, StatusPaid, false},
		{StatusCancelled, OpUpdate, StatusCancelled, false},
		{StatusPaid, OpDelete, StatusPaid, false},
		{StatusDraft, OpPayslip, StatusDraft, false},
		{StatusPaid, OpPayslip, StatusPaid, true},
	}

	for _, c := range cases {
		t.Run(string(c.from)+"_"+string(c.op), func(t *testing.T) {
			to, err := c.from.Next(c.op)
			assert.Equal(t, c.to, to)
			assert.Equal(t, c.ok, c.from.Allows(c.op))
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestStatus_TerminalStatesHaveNoExit(t *testing.T) {
	for _, st := range []Status{StatusPaid, StatusCancelled} {
		assert.True(t, st.IsTerminal())
		for _, op := range []Operation{OpProcess, OpMarkPaid, OpCancel} {
			assert.False(t, st.Allows(op), "%s should not allow %s", st, op)
		}
	}
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusProcessed.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("PROCESSED")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, st)

	_, err = ParseStatus("processed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInvalidTransitionError_Message(t *testing.T) {
	_, err := StatusPaid.Next(OpRecalculate)
	assert.EqualError(t, err, "paid payrolls cannot be recalculated (current status: PAID)")

	_, err = StatusDraft.Next(OpMarkPaid)
	assert.EqualError(t, err, "only processed payrolls can be marked as paid (current status: DRAFT)")
}
