package guard_test

import (
	"errors"
	"sync"
	"testing"

	"parcels/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("parcel must be created via NewParcel")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type pickupWindow struct {
		fromHour int
		toHour   int
		guard    guard.ConstructorGuard
	}
	errNotConstructed := errors.New("pickupWindow must be created via newPickupWindow")

	newPickupWindow := func(from, to int) (pickupWindow, error) {
		if from >= to {
			return pickupWindow{}, errors.New("window is empty")
		}
		return pickupWindow{fromHour: from, toHour: to, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		w, err := newPickupWindow(9, 18)
		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errNotConstructed))
	})

	t.Run("literal_value_fails", func(t *testing.T) {
		w := pickupWindow{fromHour: 9, toHour: 18}
		assert.Equal(t, errNotConstructed, w.guard.Validate(errNotConstructed))
	})

	t.Run("copy_keeps_constructed_flag", func(t *testing.T) {
		w, err := newPickupWindow(8, 12)
		require.NoError(t, err)
		copied := w
		require.NoError(t, copied.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationErr := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				assert.NoError(t, g.Validate(validationErr))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
