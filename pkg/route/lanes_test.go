package route

import (
	"errors"
	"reflect"
	"testing"
)

func TestSpiralLanes(t *testing.T) {
	tests := []struct {
		capacity int
		want     []Lane
	}{
		{-1, nil},
		{0, nil},
		{1, []Lane{0}},
		{2, []Lane{0, 1}},
		{3, []Lane{0, 1, -1}},
		{5, []Lane{0, 1, -1, 2, -2}},
	}
	for _, tt := range tests {
		got := SpiralLanes(tt.capacity)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SpiralLanes(%d) = %v, want %v", tt.capacity, got, tt.want)
		}
		for i, l := range got {
			if spiralIndex(l) != i {
				t.Errorf("spiralIndex(%d) = %d, want %d", l, spiralIndex(l), i)
			}
		}
	}
}

func TestOccupancyClaim(t *testing.T) {
	occ := NewOccupancy()
	seg := NewSegmentID(Coord{2, 2}, Coord{3, 2})

	if err := occ.Claim(seg, 0, 7); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := occ.Claim(seg, 0, 8); !errors.Is(err, ErrLaneTaken) {
		t.Errorf("second Claim error = %v, want ErrLaneTaken", err)
	}
	if owner, ok := occ.Owner(seg, 0); !ok || owner != 7 {
		t.Errorf("Owner = %d, %v, want 7, true", owner, ok)
	}
	if got, want := occ.Available(seg, 3), []Lane{1, -1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Available = %v, want %v", got, want)
	}
	if got := occ.Available(seg, 1); len(got) != 0 {
		t.Errorf("Available with capacity 1 = %v, want none", got)
	}
	if occ.Claimed(seg) != 1 {
		t.Errorf("Claimed = %d, want 1", occ.Claimed(seg))
	}
}

func TestOccupancyClaimRouteAllOrNothing(t *testing.T) {
	occ := NewOccupancy()
	r, err := Parse("(1,1)-L0-(1.5,1)-L0-(2,1)")
	if err != nil {
		t.Fatal(err)
	}
	second := NewSegmentID(Coord{3, 2}, Coord{4, 2})
	if err := occ.Claim(second, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := occ.ClaimRoute(r, 2); !errors.Is(err, ErrLaneTaken) {
		t.Fatalf("ClaimRoute error = %v, want ErrLaneTaken", err)
	}
	if !occ.Free(NewSegmentID(Coord{2, 2}, Coord{3, 2}), 0) {
		t.Error("failed ClaimRoute should not claim any lane")
	}
}
