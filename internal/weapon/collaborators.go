// collaborators.go

package weapon

import (
	"image/color"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

// Clock 游戏时钟，返回游戏时间(秒)
type Clock interface {
	Now() float64
}

// Visual 视觉协作者，负责给实体着色
type Visual interface {
	SetColor(entityID string, c color.RGBA)
}

// Motion 运动协作者，设置速度后由外部负责积分
type Motion interface {
	SetVelocity(entityID string, v models.Vector2D)
}

// Spatial 实体生成与销毁
type Spatial interface {
	// Instantiate 根据模板创建投射物并挂到 anchor 下
	Instantiate(template string, anchor Anchor) *models.ProjectileEntity
	// Destroy 销毁实体，对不存在的实体必须是空操作
	Destroy(entityID string)
	// Alive 实体是否仍然存在
	Alive(entityID string) bool
}

// Damage 伤害协作者
type Damage interface {
	ApplyDamage(targetID string, amount float64)
}

// Boundary 场地边界查询
type Boundary interface {
	// OffUp 实体是否已越过场地上边界
	OffUp(e models.Entity) bool
}

// World 武器核心依赖的全部协作者
type World interface {
	Clock
	Visual
	Motion
	Spatial
	Damage
	Boundary
}

// Anchor 所有投射物共享的挂载节点，在世界初始化时创建一次
type Anchor struct {
	ID string
}

// Mount 武器挂点
type Mount interface {
	// CollarID 炮口实体ID，装备武器时用于着色
	CollarID() string
	// CollarPose 炮口的世界坐标与旋转角度(度)
	CollarPose() (models.Vector2D, float64)
	// Up 挂点自身的上方向(世界坐标)
	Up() models.Vector2D
	// Faction 挂点所属实体的阵营
	Faction() models.Faction
	// Enabled 挂点是否被外部启用
	Enabled() bool
}

// Contact 碰撞对象
type Contact struct {
	TargetID string
	Kind     models.EntityType
	Faction  models.Faction
}

// hostileTo 碰撞对象对该阵营的投射物而言是否是敌方舰船
func (c Contact) hostileTo(f models.Faction) bool {
	return c.Kind == models.EntityShip && c.Faction.Opposes(f)
}
