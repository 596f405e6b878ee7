// stats.go

package models

// ArenaStats 场地战斗统计
type ArenaStats struct {
	Frames           int64   `json:"frames"`
	ShotsFired       int     `json:"shots_fired"`   // 生成的独立投射物数
	BeamsCreated     int     `json:"beams_created"` // 创建过的光束数
	ProjectilesAlive int     `json:"projectiles_alive"`
	BeamsAlive       int     `json:"beams_alive"`
	Hits             int     `json:"hits"` // 接触开始事件数
	DamageDealt      float64 `json:"damage_dealt"`
	OutOfBounds      int     `json:"out_of_bounds"` // 越界自毁数
	Expired          int     `json:"expired"`       // 超时回收数
	ShipsDestroyed   int     `json:"ships_destroyed"`

	ShotsByWeapon map[WeaponType]int `json:"shots_by_weapon"`
}

// RecordShot 记录一次投射物生成
func (s *ArenaStats) RecordShot(t WeaponType, beam bool) {
	if beam {
		s.BeamsCreated++
	} else {
		s.ShotsFired++
	}
	if s.ShotsByWeapon == nil {
		s.ShotsByWeapon = make(map[WeaponType]int)
	}
	s.ShotsByWeapon[t]++
}

// Clone 深拷贝
func (s ArenaStats) Clone() ArenaStats {
	out := s
	if s.ShotsByWeapon != nil {
		out.ShotsByWeapon = make(map[WeaponType]int, len(s.ShotsByWeapon))
		for k, v := range s.ShotsByWeapon {
			out.ShotsByWeapon[k] = v
		}
	}
	return out
}
