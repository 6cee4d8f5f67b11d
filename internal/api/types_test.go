package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

func TestOverrideRequestPatch(t *testing.T) {
	tests := []struct {
		name        string
		weekday     string
		wantDay     *time.Weekday
		wantCleared bool
		wantErr     bool
	}{
		{name: "absent"},
		{name: "null", weekday: "null", wantCleared: true},
		{name: "number", weekday: "5", wantDay: weekday(time.Friday)},
		{name: "name", weekday: `"sunday"`, wantDay: weekday(time.Sunday)},
		{name: "digit string", weekday: `"3"`, wantDay: weekday(time.Wednesday)},
		{name: "out of range", weekday: "7", wantErr: true},
		{name: "fraction", weekday: "2.5", wantErr: true},
		{name: "bool", weekday: "true", wantErr: true},
		{name: "unknown name", weekday: `"someday"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := OverrideRequest{Weekday: []byte(tt.weekday)}.Patch()
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCleared, patch.ClearWeekday)
			assert.Equal(t, tt.wantDay, patch.Weekday)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrUnauthenticated, 401},
		{apperrors.ErrNotFound, 404},
		{apperrors.ErrDisabled, 409},
		{apperrors.ErrNotScheduledToday, 409},
		{apperrors.Invalidf("bad"), 400},
		{errors.New("disk full"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func weekday(wd time.Weekday) *time.Weekday { return &wd }
