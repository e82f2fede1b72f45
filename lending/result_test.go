/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package lending_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/lending"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome lending.Outcome
		reason  lending.Reason
		msgs    []string
	}{
		{"Nil", nil, lending.OutcomeOK, 0, nil},
		{"Validation", bookerrors.NewValidationError("Title is required"), lending.OutcomeRejected, lending.ReasonValidation, []string{"Title is required"}},
		{"ConditionFailed", bookerrors.NewConditionFailedError("checkout", "1"), lending.OutcomeRejected, lending.ReasonUnavailable, []string{"gone"}},
		{"StoreFailure", bookerrors.NewStoreError("Scan", errors.New("timeout")), lending.OutcomeFailed, 0, nil},
		{"Other", errors.New("boom"), lending.OutcomeFailed, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lending.Project[lending.Unit](tt.err, "gone")
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.msgs, res.Messages())
			if tt.outcome == lending.OutcomeRejected {
				assert.Equal(t, tt.reason, res.Rejection.Reason)
			}
			if tt.err == nil {
				assert.NoError(t, res.Err())
			} else {
				assert.ErrorIs(t, res.Err(), tt.err)
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	t.Run("RejectedWithoutCause", func(t *testing.T) {
		err := lending.Rejected[lending.Unit](lending.ReasonValidation, "a", "b").Err()
		assert.True(t, bookerrors.IsValidationError(err))
		assert.Equal(t, []string{"a", "b"}, bookerrors.ValidationMessages(err))

		err = lending.Rejected[lending.Unit](lending.ReasonUnavailable, "gone").Err()
		assert.True(t, bookerrors.IsConditionFailed(err))
	})

	t.Run("FailedWithoutCause", func(t *testing.T) {
		res := lending.Failed[lending.Unit](nil)
		assert.True(t, bookerrors.IsStoreFailure(res.Err()))
	})

	t.Run("Strings", func(t *testing.T) {
		assert.Equal(t, "ok", lending.OutcomeOK.String())
		assert.Equal(t, "rejected", lending.OutcomeRejected.String())
		assert.Equal(t, "failed", lending.OutcomeFailed.String())
		assert.Equal(t, "validation", lending.ReasonValidation.String())
		assert.Equal(t, "unavailable", lending.ReasonUnavailable.String())
	})
}
