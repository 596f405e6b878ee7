package protocol

import (
	"errors"
	"fmt"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedRecord 消息缺少必要字段
var ErrMalformedRecord = errors.New("武器定义消息格式错误")

// ConvertWeaponRecordToProto 将武器定义记录转换为协议消息
func ConvertWeaponRecordToProto(rec models.WeaponRecord) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"type":                rec.Type,
		"letter":              rec.Letter,
		"color":               rec.Color,
		"projectile_template": rec.ProjectileTemplate,
		"projectile_color":    rec.ProjectileColor,
		"damage_on_hit":       rec.DamageOnHit,
		"continuous_damage":   rec.ContinuousDamage,
		"delay_between_shots": rec.DelayBetweenShots,
		"velocity":            rec.Velocity,
	})
}

// ConvertProtoToWeaponRecord 将协议消息转换为武器定义记录
func ConvertProtoToWeaponRecord(s *structpb.Struct) (models.WeaponRecord, error) {
	fields := s.GetFields()
	if fields["type"].GetStringValue() == "" {
		return models.WeaponRecord{}, fmt.Errorf("%w: 缺少 type", ErrMalformedRecord)
	}

	return models.WeaponRecord{
		Type:               fields["type"].GetStringValue(),
		Letter:             fields["letter"].GetStringValue(),
		Color:              fields["color"].GetStringValue(),
		ProjectileTemplate: fields["projectile_template"].GetStringValue(),
		ProjectileColor:    fields["projectile_color"].GetStringValue(),
		DamageOnHit:        fields["damage_on_hit"].GetNumberValue(),
		ContinuousDamage:   fields["continuous_damage"].GetNumberValue(),
		DelayBetweenShots:  fields["delay_between_shots"].GetNumberValue(),
		Velocity:           fields["velocity"].GetNumberValue(),
	}, nil
}

// EncodeWeaponRecords 将整张定义表编码为二进制，供缓存使用
func EncodeWeaponRecords(recs []models.WeaponRecord) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(recs))}
	for _, rec := range recs {
		s, err := ConvertWeaponRecordToProto(rec)
		if err != nil {
			return nil, fmt.Errorf("编码武器 %s 失败: %w", rec.Type, err)
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return proto.Marshal(list)
}

// DecodeWeaponRecords 解码 EncodeWeaponRecords 的输出
func DecodeWeaponRecords(data []byte) ([]models.WeaponRecord, error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("解码武器定义失败: %w", err)
	}

	recs := make([]models.WeaponRecord, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("%w: 第 %d 项不是对象", ErrMalformedRecord, i)
		}
		rec, err := ConvertProtoToWeaponRecord(s)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ConvertSnapshotToProto 将场地快照转换为协议消息
func ConvertSnapshotToProto(snap *models.Snapshot) (*structpb.Struct, error) {
	ships := make([]interface{}, 0, len(snap.Ships))
	for _, s := range snap.Ships {
		ships = append(ships, map[string]interface{}{
			"id":           s.ID,
			"name":         s.Name,
			"faction":      string(s.Faction),
			"position":     vectorToMap(s.Position),
			"health":       s.Health,
			"max_health":   s.MaxHealth,
			"is_alive":     s.IsAlive,
			"damage_taken": s.DamageTaken,
		})
	}

	mounts := make([]interface{}, 0, len(snap.Mounts))
	for _, m := range snap.Mounts {
		mounts = append(mounts, map[string]interface{}{
			"ship_id":        m.ShipID,
			"slot":           m.Slot,
			"collar_id":      m.CollarID,
			"weapon":         string(m.Weapon),
			"active":         m.Active,
			"enabled":        m.Enabled,
			"last_shot_time": m.LastShotTime,
			"beam_id":        m.BeamID,
		})
	}

	projectiles := make([]interface{}, 0, len(snap.Projectiles))
	for _, p := range snap.Projectiles {
		projectiles = append(projectiles, map[string]interface{}{
			"id":          p.ID,
			"weapon_type": string(p.WeaponType),
			"faction":     string(p.Faction),
			"position":    vectorToMap(p.Position),
			"rotation":    p.Rotation,
			"velocity":    vectorToMap(p.Velocity),
			"color":       models.FormatHexColor(p.Color),
			"beam":        p.Beam,
		})
	}

	shotsByWeapon := make(map[string]interface{}, len(snap.Stats.ShotsByWeapon))
	for t, n := range snap.Stats.ShotsByWeapon {
		shotsByWeapon[string(t)] = n
	}

	return structpb.NewStruct(map[string]interface{}{
		"arena_id":    snap.ArenaID,
		"status":      string(snap.Status),
		"frame_id":    snap.FrameID,
		"game_time":   snap.GameTime,
		"taken_at":    snap.TakenAt.UnixMilli(),
		"ships":       ships,
		"mounts":      mounts,
		"projectiles": projectiles,
		"stats": map[string]interface{}{
			"frames":            snap.Stats.Frames,
			"shots_fired":       snap.Stats.ShotsFired,
			"beams_created":     snap.Stats.BeamsCreated,
			"projectiles_alive": snap.Stats.ProjectilesAlive,
			"beams_alive":       snap.Stats.BeamsAlive,
			"hits":              snap.Stats.Hits,
			"damage_dealt":      snap.Stats.DamageDealt,
			"out_of_bounds":     snap.Stats.OutOfBounds,
			"expired":           snap.Stats.Expired,
			"ships_destroyed":   snap.Stats.ShipsDestroyed,
			"shots_by_weapon":   shotsByWeapon,
		},
	})
}

// MarshalSnapshotJSON 将场地快照输出为缩进的 JSON
func MarshalSnapshotJSON(snap *models.Snapshot) ([]byte, error) {
	msg, err := ConvertSnapshotToProto(snap)
	if err != nil {
		return nil, fmt.Errorf("转换快照失败: %w", err)
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
}

func vectorToMap(v models.Vector2D) map[string]interface{} {
	return map[string]interface{}{"x": v.X, "y": v.Y}
}
