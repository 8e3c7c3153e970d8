package parcel_test

import (
	"testing"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "REGISTERED", parcel.Registered.String())
	assert.Equal(t, "DELIVERED", parcel.Delivered.String())
	assert.Equal(t, "PROBLEM", parcel.Problem.String())
	assert.Equal(t, "UNKNOWN", parcel.Unknown.String())
	assert.Equal(t, "UNKNOWN", parcel.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []parcel.Status{parcel.Registered, parcel.Delivered, parcel.Problem} {
			parsed, err := parcel.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("is case insensitive", func(t *testing.T) {
		parsed, err := parcel.ParseStatus("delivered")
		require.NoError(t, err)
		assert.Equal(t, parcel.Delivered, parsed)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "LOST"} {
			_, err := parcel.ParseStatus(s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, parcel.Registered.Validate())
	require.Error(t, parcel.Unknown.Validate())
	require.Error(t, parcel.Status(99).Validate())
}

func TestStatus_TransitionTo(t *testing.T) {
	testCases := []struct {
		from, to parcel.Status
		allowed  bool
	}{
		{parcel.Registered, parcel.Delivered, true},
		{parcel.Registered, parcel.Problem, true},
		{parcel.Problem, parcel.Delivered, true},
		{parcel.Problem, parcel.Problem, true},
		{parcel.Delivered, parcel.Problem, true},
		{parcel.Delivered, parcel.Delivered, false},
		{parcel.Registered, parcel.Registered, false},
		{parcel.Delivered, parcel.Registered, false},
		{parcel.Problem, parcel.Registered, false},
		{parcel.Registered, parcel.Unknown, false},
		{parcel.Unknown, parcel.Delivered, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			got, err := tc.from.TransitionTo(tc.to)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, got)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidOperation)
			assert.Equal(t, tc.from, got)
		})
	}
}
