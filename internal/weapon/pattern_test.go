package weapon

import (
	"math"
	"testing"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestPatternBlasterIsSingleUnrotatedShot(t *testing.T) {
	base := models.Vector2D{X: 0, Y: 20}
	shots := Pattern(base, models.WeaponBlaster)
	if len(shots) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(shots))
	}
	if shots[0].Rotation != 0 || shots[0].Velocity != base {
		t.Fatalf("expected unrotated base velocity, got %+v", shots[0])
	}
}

func TestPatternSpreadRotatesBaseByFixedOffsets(t *testing.T) {
	bases := []models.Vector2D{
		{X: 0, Y: 50},
		{X: 0, Y: -50},
		{X: 3, Y: 4},
		{X: -120, Y: 7.5},
	}

	for _, base := range bases {
		shots := Pattern(base, models.WeaponSpread)
		if len(shots) != 9 {
			t.Fatalf("base %+v: expected 9 shots, got %d", base, len(shots))
		}

		for i, shot := range shots {
			if shot.Rotation != SpreadOffsets[i] {
				t.Fatalf("shot %d: expected rotation %v, got %v", i, SpreadOffsets[i], shot.Rotation)
			}
			if !almostEqual(shot.Velocity.Length(), base.Length()) {
				t.Fatalf("shot %d: rotation changed magnitude %v -> %v", i, base.Length(), shot.Velocity.Length())
			}

			// 夹角与偏移一致
			cross := base.X*shot.Velocity.Y - base.Y*shot.Velocity.X
			dot := base.X*shot.Velocity.X + base.Y*shot.Velocity.Y
			angle := -math.Atan2(cross, dot) * 180 / math.Pi
			if math.Abs(angle-SpreadOffsets[i]) > 1e-6 {
				t.Fatalf("shot %d: expected %v degrees from base, got %v", i, SpreadOffsets[i], angle)
			}
		}
	}
}

func TestRotateBackPositiveAngleTurnsUpTowardPositiveX(t *testing.T) {
	v := RotateBack(models.Vector2D{X: 0, Y: 1}, 90)
	if !almostEqual(v.X, 1) || !almostEqual(v.Y, 0) {
		t.Fatalf("expected (1, 0), got %+v", v)
	}

	v = RotateBack(models.Vector2D{X: 0, Y: 1}, -25)
	if v.X >= 0 {
		t.Fatalf("expected negative offset to turn left, got %+v", v)
	}
}

func TestPatternLaserAndUnimplementedTypesAreEmpty(t *testing.T) {
	for _, wt := range []models.WeaponType{models.WeaponLaser, models.WeaponNone, models.WeaponPhaser, models.WeaponMissile, models.WeaponShield} {
		if shots := Pattern(models.Vector2D{Y: 1}, wt); shots != nil {
			t.Fatalf("%s: expected no shots, got %d", wt, len(shots))
		}
	}
}

func TestBaseVelocityFollowsMountFacing(t *testing.T) {
	if v := BaseVelocity(20, models.Vector2D{X: 0, Y: 1}); v.Y != 20 || v.X != 0 {
		t.Fatalf("expected (0, 20), got %+v", v)
	}
	if v := BaseVelocity(20, models.Vector2D{X: 0.3, Y: -0.9}); v.Y != -20 {
		t.Fatalf("expected downward velocity for flipped mount, got %+v", v)
	}
}
