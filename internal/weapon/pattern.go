// pattern.go

package weapon

import (
	"math"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

// SpreadOffsets 散射的角度偏移(度)：中间，右侧递增，左侧递增
var SpreadOffsets = []float64{0, 10, 15, 20, 25, -10, -15, -20, -25}

// Shot 一发投射物的旋转与速度
type Shot struct {
	Rotation float64         // 绕后向轴的角度(度)
	Velocity models.Vector2D // 初速度
}

// Pattern 计算一次射击要生成的全部投射物。纯函数，不创建任何实体。
// 激光与未实现的类型返回 nil。
func Pattern(base models.Vector2D, t models.WeaponType) []Shot {
	switch t {
	case models.WeaponBlaster:
		return []Shot{{Rotation: 0, Velocity: base}}
	case models.WeaponSpread:
		shots := make([]Shot, 0, len(SpreadOffsets))
		for _, offset := range SpreadOffsets {
			shots = append(shots, Shot{
				Rotation: offset,
				Velocity: RotateBack(base, offset),
			})
		}
		return shots
	}
	return nil
}

// RotateBack 绕后向轴(0,0,-1)旋转向量，正角度使向上的向量偏向 +X
func RotateBack(v models.Vector2D, degrees float64) models.Vector2D {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return models.Vector2D{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
	}
}

// BaseVelocity 沿世界上方向的基础速度；挂点朝下时 Y 取反
func BaseVelocity(speed float64, up models.Vector2D) models.Vector2D {
	vel := models.Vector2D{X: 0, Y: speed}
	if up.Y < 0 {
		vel.Y = -vel.Y
	}
	return vel
}
